package main

import (
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// builtinIgnores are pruned on every scan regardless of any ignore
// file. Deliberately tiny: everything else is the scan's job to find.
var builtinIgnores = []string{
	".git",
	".hg",
	".svn",
	".DS_Store",
}

// isIgnored reports whether relPath is excluded by any rule in the set.
// Rules are an unordered set, first hit wins.
func isIgnored(relPath string, rules []string) bool {
	for _, rule := range rules {
		if matchesRule(relPath, rule) {
			return true
		}
	}
	return false
}

// matchesRule applies one ignore rule to a slash-separated relative
// path. The grammar is a practical subset of gitignore: no negation,
// no leading-slash anchoring, and no escaping beyond '*'.
func matchesRule(relPath, rule string) bool {
	rule = strings.TrimSuffix(rule, "/")
	if rule == "" {
		return false
	}

	// A rule without a separator matches any single path segment,
	// with '*' expanding within that segment only.
	if !strings.Contains(rule, "/") {
		for _, segment := range strings.Split(relPath, "/") {
			if segment == rule {
				return true
			}
			if ok, err := filepath.Match(rule, segment); err == nil && ok {
				return true
			}
		}
		return false
	}

	// "**/rest" matches rest at any depth.
	if strings.HasPrefix(rule, "**/") {
		rest := strings.TrimPrefix(rule, "**/")
		return strings.HasSuffix(relPath, rest) || strings.Contains(relPath, "/"+rest)
	}

	// "prefix/**" matches the prefix directory and its whole subtree.
	if strings.HasSuffix(rule, "/**") {
		prefix := strings.TrimSuffix(rule, "/**")
		return relPath == prefix || strings.HasPrefix(relPath, prefix+"/")
	}

	// "prefix/*" matches direct children of the prefix directory only.
	if strings.HasSuffix(rule, "/*") {
		prefix := strings.TrimSuffix(rule, "/*")
		if !strings.HasPrefix(relPath, prefix+"/") {
			return false
		}
		return !strings.Contains(relPath[len(prefix)+1:], "/")
	}

	// Anything else is an exact path or a directory prefix.
	return relPath == rule || strings.HasPrefix(relPath, rule+"/")
}

// readIgnoreFile loads one rule per line, skipping blanks and '#'
// comments. A missing or unreadable file contributes zero rules.
func readIgnoreFile(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Debugf("no ignore file at %s: %v", path, err)
		return nil
	}

	var rules []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rules = append(rules, line)
	}
	return rules
}

// loadRuleSet assembles the combined rule set for a scan root:
// built-ins, then the version-control ignore file, then the project
// ignore file.
func loadRuleSet(root string) []string {
	rules := make([]string, 0, len(builtinIgnores))
	rules = append(rules, builtinIgnores...)

	if !noIgnore {
		rules = append(rules, readIgnoreFile(filepath.Join(root, ".gitignore"))...)
	}
	rules = append(rules, readIgnoreFile(filepath.Join(root, ignoreFileName))...)

	log.Debugf("loaded %d ignore rules for %s", len(rules), root)
	return rules
}
