package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

func priorityColor(p Priority) func(a ...interface{}) string {
	switch p {
	case PriorityCritical:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case PriorityHigh:
		return color.New(color.FgYellow).SprintFunc()
	case PriorityMedium:
		return color.New(color.FgCyan).SprintFunc()
	}
	return color.New(color.FgWhite).SprintFunc()
}

// renderReport builds the terminal report. Colors honor the global
// color.NoColor switch, so the same function serves --no-color runs.
func renderReport(result AnalysisResult) string {
	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	var b strings.Builder

	b.WriteString(bold(fmt.Sprintf("ctxsweep report for %s", result.Root)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  Files scanned:  %d (%d ignored, %d binary)\n", result.TotalFiles, result.IgnoredCount, result.BinaryCount))
	b.WriteString(fmt.Sprintf("  Context size:   %s tokens\n", bold(fmt.Sprintf("%d", result.GrandTokenTotal))))
	if result.BloatTokenTotal > 0 {
		b.WriteString(fmt.Sprintf("  Bloat:          %d tokens across %d files (%d%% of context)\n", result.BloatTokenTotal, len(result.BloatFiles), result.ReductionPercent))
		b.WriteString(fmt.Sprintf("  After cleanup:  %s tokens\n", green(fmt.Sprintf("%d", result.CleanTokenTotal))))
	}

	if len(result.Suggestions) == 0 {
		b.WriteString("\n")
		b.WriteString(green("No obvious bloat found."))
		b.WriteString("\n")
	} else {
		b.WriteString("\n")
		b.WriteString(bold("Recommended exclusions:"))
		b.WriteString("\n\n")
		for _, s := range result.Suggestions {
			// pad before coloring, escape codes would break the column
			label := priorityColor(s.Priority)(fmt.Sprintf("%-10s", "["+s.Priority.String()+"]"))
			b.WriteString(fmt.Sprintf("  %s %-24s %8d tokens  %4d file(s)  %s\n", label, s.DisplayPattern, s.TokenSavings, s.FileCount, dim(s.Category)))
			b.WriteString(fmt.Sprintf("             %s\n", dim(s.Reason)))
		}
	}

	if len(result.LargeFiles) > 0 {
		b.WriteString("\n")
		b.WriteString(bold("Large files worth reviewing:"))
		b.WriteString("\n\n")
		for _, f := range result.LargeFiles {
			b.WriteString(fmt.Sprintf("  %8d tokens  %8d bytes  %s\n", f.TokenCount, f.SizeBytes, f.RelativePath))
		}
	}

	if len(result.Stack) > 0 {
		b.WriteString("\n")
		b.WriteString(bold("Detected stack: "))
		parts := make([]string, 0, len(result.Stack))
		for _, s := range result.Stack {
			parts = append(parts, fmt.Sprintf("%s (%d files)", s.Language, s.FileCount))
		}
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString("\n")
	}

	return b.String()
}

// plainReport renders without ANSI sequences for clipboard and PDF use.
func plainReport(result AnalysisResult) string {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()
	return renderReport(result)
}
