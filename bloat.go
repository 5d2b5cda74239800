package main

import (
	"math"
	"regexp"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Files above this size that match no bloat rule are worth a look.
const largeFileThreshold = 10 * 1024
const largeFileLimit = 20

// defaultBloatRules is the built-in classification table. Order is
// meaningful twice over: rules are declared from critical to low, and
// the first rule to match a file claims it.
var defaultBloatRules = []BloatRule{
	{`(^|/)node_modules(/|$)`, "dependencies", "Installed packages can be restored from the lockfile and bury your own code", PriorityCritical},
	{`(^|/)vendor(/|$)`, "dependencies", "Vendored dependencies duplicate upstream source", PriorityCritical},
	{`(^|/)(\.venv|venv|virtualenv)(/|$)`, "dependencies", "Virtualenvs ship a full interpreter environment", PriorityCritical},
	{`(^|/)dist(/|$)`, "build-output", "Build output is derived from the sources the assistant already sees", PriorityCritical},
	{`(^|/)build(/|$)`, "build-output", "Compiled artifacts are regenerated on every build", PriorityCritical},
	{`(^|/)target(/|$)`, "build-output", "Cargo and JVM build trees are fully reproducible", PriorityCritical},
	{`(^|/)(\.next|\.nuxt|\.output)(/|$)`, "build-output", "Framework build caches change on every run", PriorityCritical},
	{`(^|/)out(/|$)`, "build-output", "Generated output adds volume without new information", PriorityHigh},
	{`\.min\.js$`, "generated", "Minified bundles are unreadable and huge", PriorityHigh},
	{`\.min\.css$`, "generated", "Minified styles are unreadable and huge", PriorityHigh},
	{`\.map$`, "generated", "Source maps restate what the sources already say", PriorityHigh},
	{`\.pb\.go$`, "generated", "Protobuf codegen is derived from the .proto files", PriorityHigh},
	{`(^|/)package-lock\.json$`, "lockfiles", "Lockfiles pin exact versions across thousands of lines", PriorityHigh},
	{`(^|/)yarn\.lock$`, "lockfiles", "Lockfiles pin exact versions across thousands of lines", PriorityHigh},
	{`(^|/)pnpm-lock\.yaml$`, "lockfiles", "Lockfiles pin exact versions across thousands of lines", PriorityHigh},
	{`(^|/)Cargo\.lock$`, "lockfiles", "Lockfiles pin exact versions across thousands of lines", PriorityHigh},
	{`(^|/)poetry\.lock$`, "lockfiles", "Lockfiles pin exact versions across thousands of lines", PriorityHigh},
	{`(^|/)go\.sum$`, "lockfiles", "Module checksums are machine-verified, never read", PriorityHigh},
	{`(^|/)coverage(/|$)`, "reports", "Coverage reports describe tests, not behavior", PriorityHigh},
	{`(^|/)(\.nyc_output|htmlcov)(/|$)`, "reports", "Coverage tooling output is regenerated per run", PriorityHigh},
	{`(^|/)__pycache__(/|$)`, "caches", "Bytecode caches are derived from the .py sources", PriorityMedium},
	{`\.pyc$`, "caches", "Compiled bytecode duplicates its source file", PriorityMedium},
	{`(^|/)(\.cache|\.pytest_cache|\.mypy_cache|\.ruff_cache)(/|$)`, "caches", "Tool caches are scratch space", PriorityMedium},
	{`(^|/)\.gradle(/|$)`, "caches", "Gradle caches are scratch space", PriorityMedium},
	{`\.log$`, "logs", "Runtime logs tell the assistant nothing about the code", PriorityMedium},
	{`(^|/)logs(/|$)`, "logs", "Log directories grow without bound", PriorityMedium},
	{`\.csv$`, "data", "Bulk data files rarely help with code questions", PriorityLow},
	{`(^|/)(\.idea|\.vscode)(/|$)`, "editor", "Editor settings are personal machine state", PriorityLow},
}

type compiledRule struct {
	BloatRule
	re *regexp.Regexp
}

// compileBloatRules drops rules whose pattern does not compile. The
// built-in table always compiles; this guards user-supplied rules.
func compileBloatRules(rules []BloatRule) []compiledRule {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			log.Warnf("skipping bloat rule %q: %v", r.Pattern, err)
			continue
		}
		compiled = append(compiled, compiledRule{BloatRule: r, re: re})
	}
	return compiled
}

// classify tags each file with the first matching bloat rule and
// aggregates one Suggestion per rule that matched anything. Unmatched
// text files above the size threshold become large-file candidates.
func classify(inventory []FileRecord, rules []BloatRule) ([]BloatFile, []Suggestion, []FileRecord) {
	compiled := compileBloatRules(rules)
	log.WithFields(log.Fields{"files": len(inventory), "rules": len(compiled)}).Debug("classifying inventory")
	agg := make([]*Suggestion, len(compiled))

	var bloatFiles []BloatFile
	var largeFiles []FileRecord

	for _, f := range inventory {
		matched := -1
		for i := range compiled {
			if compiled[i].re.MatchString(f.RelativePath) {
				matched = i
				break
			}
		}

		if matched >= 0 {
			rule := compiled[matched]
			bloatFiles = append(bloatFiles, BloatFile{FileRecord: f, Category: rule.Category})
			if agg[matched] == nil {
				agg[matched] = &Suggestion{
					DisplayPattern: displayPattern(rule.Pattern, f),
					Category:       rule.Category,
					Priority:       rule.Priority,
					Reason:         rule.Reason,
				}
			}
			agg[matched].TokenSavings += f.TokenCount
			agg[matched].FileCount++
			continue
		}

		if !f.IsBinary && f.SizeBytes > largeFileThreshold {
			largeFiles = append(largeFiles, f)
		}
	}

	suggestions := make([]Suggestion, 0, len(compiled))
	for _, s := range agg {
		if s != nil {
			suggestions = append(suggestions, *s)
		}
	}
	// Tier first, impact second. The stable sort keeps table order as
	// the final tiebreak so repeated runs never shuffle equal entries.
	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Priority != suggestions[j].Priority {
			return suggestions[i].Priority < suggestions[j].Priority
		}
		return suggestions[i].TokenSavings > suggestions[j].TokenSavings
	})

	sort.Slice(largeFiles, func(i, j int) bool {
		if largeFiles[i].TokenCount != largeFiles[j].TokenCount {
			return largeFiles[i].TokenCount > largeFiles[j].TokenCount
		}
		return largeFiles[i].RelativePath < largeFiles[j].RelativePath
	})
	if len(largeFiles) > largeFileLimit {
		largeFiles = largeFiles[:largeFileLimit]
	}

	return bloatFiles, suggestions, largeFiles
}

// displayPattern renders a rule for ignore files and the report.
// Extension-shaped rules like `\.log$` become "*.log"; everything
// else shows the matched file's top-level path segment, with a
// trailing slash when that segment is a directory.
func displayPattern(pattern string, f FileRecord) string {
	if ext, ok := extensionDisplay(pattern); ok {
		return ext
	}
	if i := strings.Index(f.RelativePath, "/"); i >= 0 {
		return f.RelativePath[:i] + "/"
	}
	return f.RelativePath
}

func extensionDisplay(pattern string) (string, bool) {
	if !strings.HasPrefix(pattern, `\.`) || !strings.HasSuffix(pattern, "$") {
		return "", false
	}
	body := strings.TrimSuffix(strings.TrimPrefix(pattern, `\.`), "$")
	body = strings.ReplaceAll(body, `\.`, ".")
	if body == "" {
		return "", false
	}
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '.' || c == '_':
		default:
			return "", false
		}
	}
	return "*." + body, true
}

// assemble packages one scan into the final immutable snapshot.
func assemble(root string, inventory []FileRecord, ignoredCount, binaryCount int, bloatFiles []BloatFile, suggestions []Suggestion, largeFiles []FileRecord) AnalysisResult {
	grand := 0
	for _, f := range inventory {
		grand += f.TokenCount
	}
	bloat := 0
	for _, f := range bloatFiles {
		bloat += f.TokenCount
	}

	pct := 0
	if grand > 0 {
		pct = int(math.Round(float64(bloat) / float64(grand) * 100))
	}

	return AnalysisResult{
		Root:             root,
		Suggestions:      suggestions,
		BloatFiles:       bloatFiles,
		LargeFiles:       largeFiles,
		Stack:            detectStack(inventory, bloatFiles),
		TotalFiles:       len(inventory),
		IgnoredCount:     ignoredCount,
		BinaryCount:      binaryCount,
		GrandTokenTotal:  grand,
		BloatTokenTotal:  bloat,
		CleanTokenTotal:  grand - bloat,
		ReductionPercent: pct,
	}
}

// analyze runs one full pass over root: walk, classify, assemble.
// The returned inventory keeps the walker's descending token order.
func analyze(root string, rules []string, bloatRules []BloatRule, tok Tokenizer) (AnalysisResult, []FileRecord, error) {
	inventory, ignored, binaries, err := walk(root, rules, tok)
	if err != nil {
		return AnalysisResult{}, nil, err
	}
	bloatFiles, suggestions, largeFiles := classify(inventory, bloatRules)
	return assemble(root, inventory, ignored, binaries, bloatFiles, suggestions, largeFiles), inventory, nil
}
