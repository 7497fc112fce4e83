package dto

// ImportSummary reports the outcome of one import batch. Row-level
// problems are collected as warnings rather than raised: the caller must
// be able to tell "partial batch success" apart from total failure.
type ImportSummary struct {
	Imported int      `json:"imported"` // Entries created
	Skipped  int      `json:"skipped"`  // Entry groups skipped as duplicates or invalid
	Warnings []string `json:"warnings,omitempty"`
}
