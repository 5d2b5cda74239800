package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
)

// walk traverses root depth-first and returns the inventory of files
// the rule set did not exclude, sorted by descending token count.
// A rule hit on a directory prunes the whole subtree before descent.
// Per-entry I/O failures are logged and skipped; an unusable root is
// the only fatal error.
func walk(root string, rules []string, tok Tokenizer) ([]FileRecord, int, int, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("cannot scan root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, 0, 0, fmt.Errorf("cannot scan root %s: not a directory", root)
	}

	log.WithFields(log.Fields{"root": root, "rules": len(rules)}).Debug("starting walk")

	var (
		inventory    []FileRecord
		ignoredCount int
		binaryCount  int
	)

	// Explicit work stack rather than recursion, so directory depth
	// cannot overflow the call stack.
	stack := []string{""}
	for len(stack) > 0 {
		relDir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(relDir)))
		if err != nil {
			log.Warnf("skipping unreadable directory %q: %v", relDir, err)
			continue
		}

		for _, entry := range entries {
			rel := entry.Name()
			if relDir != "" {
				rel = relDir + "/" + entry.Name()
			}

			if isIgnored(rel, rules) {
				ignoredCount++
				log.Debugf("ignored %s", rel)
				continue
			}

			if entry.IsDir() {
				stack = append(stack, rel)
				continue
			}

			fi, err := entry.Info()
			if err != nil {
				log.Debugf("skipping %s: %v", rel, err)
				continue
			}

			record := FileRecord{
				Path:         filepath.Join(root, filepath.FromSlash(rel)),
				RelativePath: rel,
				Name:         entry.Name(),
				Extension:    strings.ToLower(filepath.Ext(entry.Name())),
				SizeBytes:    fi.Size(),
			}

			if isBinaryExtension(record.Extension) {
				record.IsBinary = true
				binaryCount++
			} else {
				content, err := os.ReadFile(record.Path)
				if err != nil {
					log.Debugf("skipping unreadable file %s: %v", rel, err)
					continue
				}
				record.TokenCount = tok.CountTokens(string(content))
			}

			inventory = append(inventory, record)
		}
	}

	// Path tiebreak keeps repeated scans bit-identical.
	sort.Slice(inventory, func(i, j int) bool {
		if inventory[i].TokenCount != inventory[j].TokenCount {
			return inventory[i].TokenCount > inventory[j].TokenCount
		}
		return inventory[i].RelativePath < inventory[j].RelativePath
	})

	return inventory, ignoredCount, binaryCount, nil
}
