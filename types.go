package main

// Priority ranks a suggestion. Lower values sort first in the report.
type Priority int

const (
	PriorityCritical Priority = iota
	PriorityHigh
	PriorityMedium
	PriorityLow
)

func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	}
	return "unknown"
}

// FileRecord holds everything the classifier needs to know about one
// file discovered during a walk. Records are never mutated after the
// walk produces them.
type FileRecord struct {
	Path         string // as discovered, root-joined
	RelativePath string // slash-separated, relative to the scan root
	Name         string
	Extension    string // lowercased, includes the leading dot
	SizeBytes    int64
	TokenCount   int
	IsBinary     bool // binary files always carry TokenCount == 0
}

// BloatRule is one entry of the static classification table. The table
// is declared in priority order and the first matching rule wins.
type BloatRule struct {
	Pattern  string // regexp applied to the slash-separated relative path
	Category string
	Reason   string
	Priority Priority
}

// BloatFile is a FileRecord tagged with the category of the rule that
// claimed it.
type BloatFile struct {
	FileRecord
	Category string
}

// Suggestion aggregates every file a single BloatRule matched.
type Suggestion struct {
	DisplayPattern string
	Category       string
	Priority       Priority
	Reason         string
	TokenSavings   int
	FileCount      int
}

// StackEntry summarizes one detected language across the files that
// survived bloat classification.
type StackEntry struct {
	Language   string
	FileCount  int
	TokenCount int
}

// AnalysisResult is the immutable snapshot one scan produces. Grand,
// clean and bloat totals always satisfy grand == clean + bloat.
type AnalysisResult struct {
	Root             string
	Suggestions      []Suggestion
	BloatFiles       []BloatFile
	LargeFiles       []FileRecord
	Stack            []StackEntry
	TotalFiles       int
	IgnoredCount     int
	BinaryCount      int
	GrandTokenTotal  int
	BloatTokenTotal  int
	CleanTokenTotal  int
	ReductionPercent int
}
