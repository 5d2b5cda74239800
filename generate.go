package main

import (
	"fmt"
	"os"
	"strings"
)

// renderIgnoreFile builds the generated ignore file: suggestions
// grouped by category, each entry preceded by what excluding it
// saves. No timestamps, so regenerating an unchanged tree produces
// an identical file.
func renderIgnoreFile(suggestions []Suggestion) string {
	var b strings.Builder
	b.WriteString("# Exclusions suggested by ctxsweep.\n")
	b.WriteString("# Patterns use the same gitignore-like subset the scanner understands.\n")

	seen := map[string]bool{}
	for _, s := range suggestions {
		if seen[s.Category] {
			continue
		}
		seen[s.Category] = true

		b.WriteString("\n# " + s.Category + "\n")
		for _, t := range suggestions {
			if t.Category != s.Category {
				continue
			}
			b.WriteString(fmt.Sprintf("# %s frees %d tokens (%d files)\n", t.DisplayPattern, t.TokenSavings, t.FileCount))
			b.WriteString(t.DisplayPattern + "\n")
		}
	}
	return b.String()
}

// renderProjectNotes builds the notes document that sits next to the
// ignore file: totals, detected stack, the suggestion table and the
// large-file list.
func renderProjectNotes(result AnalysisResult) string {
	var b strings.Builder

	b.WriteString("# Project context notes\n\n")
	b.WriteString(fmt.Sprintf("Scan of `%s` by ctxsweep.\n\n", result.Root))

	b.WriteString("## Context usage\n\n")
	b.WriteString(fmt.Sprintf("- %d files scanned (%d ignored, %d binary)\n", result.TotalFiles, result.IgnoredCount, result.BinaryCount))
	b.WriteString(fmt.Sprintf("- %d tokens if the whole tree went into an assistant's context\n", result.GrandTokenTotal))
	if result.BloatTokenTotal > 0 {
		b.WriteString(fmt.Sprintf("- %d tokens (%d%%) look like bloat across %d files\n", result.BloatTokenTotal, result.ReductionPercent, len(result.BloatFiles)))
		b.WriteString(fmt.Sprintf("- excluding the suggestions below leaves %d tokens\n", result.CleanTokenTotal))
	}
	b.WriteString("\n")

	if len(result.Stack) > 0 {
		b.WriteString("## Detected stack\n\n")
		for _, s := range result.Stack {
			b.WriteString(fmt.Sprintf("- %s: %d files, %d tokens\n", s.Language, s.FileCount, s.TokenCount))
		}
		b.WriteString("\n")
	}

	if len(result.Suggestions) > 0 {
		b.WriteString("## Suggested exclusions\n\n")
		b.WriteString("| Priority | Pattern | Category | Tokens | Files |\n")
		b.WriteString("|----------|---------|----------|--------|-------|\n")
		for _, s := range result.Suggestions {
			b.WriteString(fmt.Sprintf("| %s | `%s` | %s | %d | %d |\n", s.Priority, s.DisplayPattern, s.Category, s.TokenSavings, s.FileCount))
		}
		b.WriteString("\n")
	}

	if len(result.LargeFiles) > 0 {
		b.WriteString("## Large files\n\n")
		for _, f := range result.LargeFiles {
			b.WriteString(fmt.Sprintf("- `%s` (%d bytes, %d tokens)\n", f.RelativePath, f.SizeBytes, f.TokenCount))
		}
		b.WriteString("\n")
	}

	b.WriteString("Regenerate with `ctxsweep --write` after the tree changes.\n")
	return b.String()
}

// writeGeneratedFile persists one artifact, refusing to clobber an
// existing file unless forced.
func writeGeneratedFile(path, content string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Skipping %s: already exists (use --force to overwrite)\n", path)
			return nil
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
