package services

import (
	"context"
	"io"

	"github.com/bookease/bookease/internal/dto"
)

// ReconcilerService moves journal data across the flat CSV boundary.
type ReconcilerService interface {
	// ImportRecords parses the flat export format, groups rows into
	// entries, resolves account names, deduplicates against existing
	// entries, and creates the survivors. Row-level problems become
	// warnings in the summary; only failure to read the input fails the
	// batch.
	ImportRecords(ctx context.Context, r io.Reader) (*dto.ImportSummary, error)

	// ExportRecords writes every entry as flat rows, one per line,
	// newest entry date first. Returns the number of data rows written.
	ExportRecords(ctx context.Context, w io.Writer) (int, error)
}
