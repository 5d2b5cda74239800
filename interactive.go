package main

import (
	"fmt"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
)

// pickSuggestions lets the user choose which suggestions make it into
// the generated ignore file. A nil, nil return means the selection was
// aborted and nothing should be written.
func pickSuggestions(suggestions []Suggestion) ([]Suggestion, error) {
	if len(suggestions) == 0 {
		return nil, fmt.Errorf("no suggestions to select from")
	}

	idx, err := fuzzyfinder.FindMulti(
		suggestions,
		func(i int) string {
			s := suggestions[i]
			return fmt.Sprintf("[%s] %s (%d tokens)", s.Priority, s.DisplayPattern, s.TokenSavings)
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select exclusions to write. Press Tab to multi-select, Enter to confirm."
			}
			s := suggestions[i]
			return fmt.Sprintf("Pattern: %s\nCategory: %s\nPriority: %s\nFiles: %d\nToken savings: %d\n\n%s",
				s.DisplayPattern, s.Category, s.Priority, s.FileCount, s.TokenSavings, s.Reason)
		}),
	)
	if err != nil {
		if err == fuzzyfinder.ErrAbort { // Esc or Ctrl+C
			fmt.Println("Interactive selection aborted.")
			return nil, nil
		}
		return nil, fmt.Errorf("fuzzy finder error: %w", err)
	}

	selected := make([]Suggestion, len(idx))
	for i, index := range idx {
		selected[i] = suggestions[index]
	}
	return selected, nil
}
