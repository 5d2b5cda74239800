package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// customRuleFile is the shape of an optional rules file in the scanned
// project, e.g.:
//
//	rules:
//	  - pattern: '(^|/)fixtures(/|$)'
//	    category: testdata
//	    reason: Recorded fixtures are replayed by tests, not read
//	    priority: medium
type customRuleFile struct {
	Rules []customRule `yaml:"rules"`
}

type customRule struct {
	Pattern  string `yaml:"pattern"`
	Category string `yaml:"category"`
	Reason   string `yaml:"reason"`
	Priority string `yaml:"priority"`
}

func parsePriority(s string) (Priority, error) {
	switch s {
	case "critical":
		return PriorityCritical, nil
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low", "":
		return PriorityLow, nil
	}
	return PriorityLow, fmt.Errorf("unknown priority %q", s)
}

// loadBloatRules returns the built-in table plus any rules from the
// project's rules file. Custom rules are appended after the built-ins,
// so the built-ins keep first-match precedence, and the built-in table
// itself is never modified. A missing or broken rules file contributes
// zero rules.
func loadBloatRules(path string) []BloatRule {
	rules := make([]BloatRule, 0, len(defaultBloatRules))
	rules = append(rules, defaultBloatRules...)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Debugf("no custom rules file at %s: %v", path, err)
		return rules
	}

	var parsed customRuleFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		log.Warnf("could not parse rules file %s: %v", path, err)
		return rules
	}

	for _, c := range parsed.Rules {
		if c.Pattern == "" {
			log.Warnf("skipping custom rule with empty pattern in %s", path)
			continue
		}
		prio, err := parsePriority(c.Priority)
		if err != nil {
			log.Warnf("skipping custom rule %q: %v", c.Pattern, err)
			continue
		}
		category := c.Category
		if category == "" {
			category = "custom"
		}
		rules = append(rules, BloatRule{
			Pattern:  c.Pattern,
			Category: category,
			Reason:   c.Reason,
			Priority: prio,
		})
	}

	log.Debugf("loaded %d bloat rules (%d custom) from %s", len(rules), len(rules)-len(defaultBloatRules), path)
	return rules
}
