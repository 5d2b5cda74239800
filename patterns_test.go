package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchesRule(t *testing.T) {
	tests := []struct {
		name string
		rule string
		path string
		want bool
	}{
		{"bare segment at root", "node_modules", "node_modules", true},
		{"bare segment at depth", "node_modules", "a/node_modules/x.js", true},
		{"bare segment miss", "node_modules", "src/app.js", false},
		{"bare segment no substring match", "node_modules", "my_node_modules/x.js", false},
		{"wildcard within segment", "*.log", "logs/app.log", true},
		{"wildcard miss", "*.log", "src/app.go", false},
		{"malformed wildcard never matches", "[a", "src/ab", false},

		{"doublestar at root", "**/dist", "dist", true},
		{"doublestar at depth", "**/dist", "pkg/dist", true},
		{"doublestar multi segment rest", "**/build/cache", "x/build/cache", true},
		{"doublestar miss", "**/dist", "distx", false},

		{"direct child", "src/*", "src/a.js", true},
		{"direct child excludes deeper", "src/*", "src/sub/a.js", false},
		{"direct child excludes the dir itself", "src/*", "src", false},

		{"subtree includes the dir itself", "src/**", "src", true},
		{"subtree deep", "src/**", "src/a/b.js", true},
		{"subtree miss", "src/**", "srcx/a.js", false},

		{"exact path", "docs/readme.md", "docs/readme.md", true},
		{"directory prefix", "a/b", "a/b/c.txt", true},
		{"prefix respects segment boundary", "a/b", "a/bc/d.txt", false},

		{"trailing slash folds to directory form", "src/", "src/index.js", true},
		{"trailing slash on nested rule", "a/b/", "a/b/x", true},

		// documented limitations, not bugs
		{"negation is not supported", "!keep.txt", "keep.txt", false},
		{"leading slash is not anchored", "/dist", "dist", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesRule(tt.path, tt.rule))
		})
	}
}

func TestIsIgnored(t *testing.T) {
	rules := []string{"node_modules", "*.log", "dist/"}

	assert.True(t, isIgnored("node_modules/react/index.js", rules))
	assert.True(t, isIgnored("server/output.log", rules))
	assert.True(t, isIgnored("dist", rules))
	assert.False(t, isIgnored("src/main.go", rules))
	assert.False(t, isIgnored("src/main.go", nil))
}

func TestReadIgnoreFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".gitignore")
	content := "  node_modules  \n\n# a comment\n*.log\n   # indented comment\ndist/\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rules := readIgnoreFile(path)
	assert.Equal(t, []string{"node_modules", "*.log", "dist/"}, rules)
}

func TestReadIgnoreFileMissing(t *testing.T) {
	rules := readIgnoreFile(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Nil(t, rules)
}

func TestLoadRuleSet(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("dist\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, defaultIgnoreFileName), []byte("fixtures/\n"), 0644))

	rules := loadRuleSet(dir)

	// built-ins first, then .gitignore, then the project file
	want := append(append([]string{}, builtinIgnores...), "dist", "fixtures/")
	assert.Equal(t, want, rules)
}

func TestLoadRuleSetNoIgnore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("dist\n"), 0644))

	prev := noIgnore
	noIgnore = true
	defer func() { noIgnore = prev }()

	rules := loadRuleSet(dir)
	assert.NotContains(t, rules, "dist")
}
