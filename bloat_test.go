package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeFindsDependencyBloat(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"node_modules/x.js": strings.Repeat("a", 500), // 125 tokens
		"src/index.js":      strings.Repeat("b", 40),  // 10 tokens
	})

	result, inventory, err := analyze(root, loadRuleSet(root), defaultBloatRules, HeuristicTokenizer{})
	require.NoError(t, err)

	require.Len(t, inventory, 2)
	assert.Equal(t, 135, result.GrandTokenTotal)
	assert.Equal(t, 125, result.BloatTokenTotal)
	assert.Equal(t, 10, result.CleanTokenTotal)
	assert.Equal(t, 93, result.ReductionPercent)

	require.NotEmpty(t, result.Suggestions)
	top := result.Suggestions[0]
	assert.Equal(t, "dependencies", top.Category)
	assert.Equal(t, PriorityCritical, top.Priority)
	assert.Equal(t, "node_modules/", top.DisplayPattern)
	assert.Equal(t, 125, top.TokenSavings)
	assert.Equal(t, 1, top.FileCount)
}

func TestAnalyzeAggregatesPerRule(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"dist/a.js": strings.Repeat("a", 100), // 25 tokens
		"dist/b.js": strings.Repeat("b", 60),  // 15 tokens
	})

	result, _, err := analyze(root, loadRuleSet(root), defaultBloatRules, HeuristicTokenizer{})
	require.NoError(t, err)

	require.Len(t, result.Suggestions, 1)
	s := result.Suggestions[0]
	assert.Equal(t, "build-output", s.Category)
	assert.Equal(t, 2, s.FileCount)
	assert.Equal(t, 40, s.TokenSavings)
	assert.Equal(t, "dist/", s.DisplayPattern)
}

func TestAnalyzeCollectsLargeFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"report.txt": strings.Repeat("a", 41000),
		"small.txt":  "tiny",
	})

	result, _, err := analyze(root, loadRuleSet(root), defaultBloatRules, HeuristicTokenizer{})
	require.NoError(t, err)

	assert.Empty(t, result.Suggestions)
	require.Len(t, result.LargeFiles, 1)
	assert.Equal(t, "report.txt", result.LargeFiles[0].RelativePath)
	assert.Equal(t, 10250, result.LargeFiles[0].TokenCount)
}

func TestAnalyzeIdempotent(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"node_modules/a.js": strings.Repeat("a", 200),
		"dist/b.js":         strings.Repeat("b", 200),
		"app.log":           strings.Repeat("c", 80),
		"src/main.go":       strings.Repeat("d", 120),
	})

	first, firstInv, err := analyze(root, loadRuleSet(root), defaultBloatRules, HeuristicTokenizer{})
	require.NoError(t, err)
	second, secondInv, err := analyze(root, loadRuleSet(root), defaultBloatRules, HeuristicTokenizer{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstInv, secondInv)
}

func TestClassifyFirstMatchWins(t *testing.T) {
	inventory := []FileRecord{
		{RelativePath: "node_modules/pkg/x.min.js", TokenCount: 10},
	}

	bloatFiles, suggestions, _ := classify(inventory, defaultBloatRules)

	require.Len(t, bloatFiles, 1)
	assert.Equal(t, "dependencies", bloatFiles[0].Category)
	require.Len(t, suggestions, 1, "one file never feeds two suggestions")
	assert.Equal(t, "dependencies", suggestions[0].Category)
}

func TestClassifySuggestionOrdering(t *testing.T) {
	inventory := []FileRecord{
		{RelativePath: "node_modules/a.js", TokenCount: 10},
		{RelativePath: "dist/big.js", TokenCount: 500},
		{RelativePath: "yarn.lock", TokenCount: 100},
		{RelativePath: "app.log", TokenCount: 50},
		{RelativePath: ".idea/workspace.xml", TokenCount: 5},
	}

	_, suggestions, _ := classify(inventory, defaultBloatRules)
	require.Len(t, suggestions, 5)

	// highest tier first; within a tier, bigger savings first
	assert.Equal(t, "dist/", suggestions[0].DisplayPattern)
	assert.Equal(t, "node_modules/", suggestions[1].DisplayPattern)

	for i := 1; i < len(suggestions); i++ {
		prev, cur := suggestions[i-1], suggestions[i]
		assert.LessOrEqual(t, prev.Priority, cur.Priority)
		if prev.Priority == cur.Priority {
			assert.GreaterOrEqual(t, prev.TokenSavings, cur.TokenSavings)
		}
	}
}

func TestClassifyFileCountsMatchBloatFiles(t *testing.T) {
	inventory := []FileRecord{
		{RelativePath: "node_modules/a.js", TokenCount: 1},
		{RelativePath: "node_modules/b.js", TokenCount: 2},
		{RelativePath: "dist/c.js", TokenCount: 3},
		{RelativePath: "src/keep.go", TokenCount: 4},
	}

	bloatFiles, suggestions, _ := classify(inventory, defaultBloatRules)

	total := 0
	for _, s := range suggestions {
		total += s.FileCount
	}
	assert.Equal(t, len(bloatFiles), total)
	assert.Len(t, bloatFiles, 3)
}

func TestClassifyLargeFileRules(t *testing.T) {
	inventory := []FileRecord{
		{RelativePath: "huge.txt", SizeBytes: 20000, TokenCount: 5000},
		{RelativePath: "boundary.txt", SizeBytes: 10240, TokenCount: 2560}, // at the threshold, not over
		{RelativePath: "huge.png", SizeBytes: 50000, TokenCount: 0, IsBinary: true},
		{RelativePath: "dist/huge.js", SizeBytes: 90000, TokenCount: 22500}, // classified, not "large"
	}

	_, _, largeFiles := classify(inventory, defaultBloatRules)

	require.Len(t, largeFiles, 1)
	assert.Equal(t, "huge.txt", largeFiles[0].RelativePath)
}

func TestClassifyLargeFileCap(t *testing.T) {
	var inventory []FileRecord
	for i := 0; i < 30; i++ {
		inventory = append(inventory, FileRecord{
			RelativePath: strings.Repeat("f", i+1) + ".txt",
			SizeBytes:    20000,
			TokenCount:   5000 + i,
		})
	}

	_, _, largeFiles := classify(inventory, defaultBloatRules)

	require.Len(t, largeFiles, largeFileLimit)
	// kept the biggest ones
	assert.Equal(t, 5029, largeFiles[0].TokenCount)
	assert.Equal(t, 5010, largeFiles[largeFileLimit-1].TokenCount)
}

func TestDisplayPattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		want    string
	}{
		{"plain extension", `\.log$`, "server/app.log", "*.log"},
		{"compound extension", `\.min\.js$`, "static/app.min.js", "*.min.js"},
		{"directory rule", `(^|/)node_modules(/|$)`, "node_modules/x.js", "node_modules/"},
		{"root level file", `(^|/)package-lock\.json$`, "package-lock.json", "package-lock.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := displayPattern(tt.pattern, FileRecord{RelativePath: tt.path})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAssembleTotals(t *testing.T) {
	inventory := []FileRecord{
		{RelativePath: "a", TokenCount: 1},
		{RelativePath: "b", TokenCount: 2},
	}
	bloatFiles := []BloatFile{
		{FileRecord: FileRecord{RelativePath: "a", TokenCount: 1}, Category: "logs"},
	}

	result := assemble("root", inventory, 4, 2, bloatFiles, nil, nil)

	assert.Equal(t, 3, result.GrandTokenTotal)
	assert.Equal(t, 1, result.BloatTokenTotal)
	assert.Equal(t, 2, result.CleanTokenTotal)
	assert.Equal(t, result.GrandTokenTotal, result.CleanTokenTotal+result.BloatTokenTotal)
	assert.Equal(t, 33, result.ReductionPercent) // round(1/3 * 100)
	assert.Equal(t, 4, result.IgnoredCount)
	assert.Equal(t, 2, result.BinaryCount)
	assert.Equal(t, 2, result.TotalFiles)
}

func TestAssembleEmptyTree(t *testing.T) {
	result := assemble("root", nil, 0, 0, nil, nil, nil)

	assert.Equal(t, 0, result.GrandTokenTotal)
	assert.Equal(t, 0, result.ReductionPercent, "no division by zero on empty trees")
}
