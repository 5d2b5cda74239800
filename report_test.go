package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportFixture() AnalysisResult {
	return AnalysisResult{
		Root:             "myproj",
		TotalFiles:       12,
		IgnoredCount:     3,
		BinaryCount:      1,
		GrandTokenTotal:  1500,
		BloatTokenTotal:  900,
		CleanTokenTotal:  600,
		ReductionPercent: 60,
		BloatFiles:       make([]BloatFile, 5),
		Suggestions: []Suggestion{
			{DisplayPattern: "node_modules/", Category: "dependencies", Priority: PriorityCritical, Reason: "Dependency sources are reinstallable", TokenSavings: 800, FileCount: 4},
			{DisplayPattern: "*.log", Category: "logs", Priority: PriorityMedium, Reason: "Logs describe past runs", TokenSavings: 100, FileCount: 1},
		},
		LargeFiles: []FileRecord{
			{RelativePath: "data/dump.txt", SizeBytes: 40000, TokenCount: 10000},
		},
		Stack: []StackEntry{
			{Language: "Go", FileCount: 5, TokenCount: 500},
		},
	}
}

func TestPlainReport(t *testing.T) {
	out := plainReport(reportFixture())

	assert.Contains(t, out, "ctxsweep report for myproj")
	assert.Contains(t, out, "Files scanned:  12 (3 ignored, 1 binary)")
	assert.Contains(t, out, "Bloat:          900 tokens across 5 files (60% of context)")
	assert.Contains(t, out, "Recommended exclusions:")
	assert.Contains(t, out, "[critical]")
	assert.Contains(t, out, "node_modules/")
	assert.Contains(t, out, "Dependency sources are reinstallable")
	assert.Contains(t, out, "Large files worth reviewing:")
	assert.Contains(t, out, "data/dump.txt")
	assert.Contains(t, out, "Detected stack: Go (5 files)")
	assert.NotContains(t, out, "\x1b", "plain output carries no escape codes")
}

func TestPlainReportColumnsAlign(t *testing.T) {
	out := plainReport(reportFixture())

	var critCol, medCol int
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "node_modules/") {
			critCol = strings.Index(line, "node_modules/")
		}
		if strings.Contains(line, "*.log") {
			medCol = strings.Index(line, "*.log")
		}
	}
	require.NotZero(t, critCol)
	require.NotZero(t, medCol)
	assert.Equal(t, critCol, medCol, "priority labels of different widths keep the pattern column aligned")
}

func TestPlainReportCleanTree(t *testing.T) {
	out := plainReport(AnalysisResult{Root: "tidy", TotalFiles: 2, GrandTokenTotal: 20, CleanTokenTotal: 20})

	assert.Contains(t, out, "No obvious bloat found.")
	assert.NotContains(t, out, "Bloat:")
	assert.NotContains(t, out, "Recommended exclusions:")
}
