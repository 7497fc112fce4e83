package repositories

import (
	"context"
	"time"

	"github.com/bookease/bookease/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalRepository defines the persistence operations for journal entries
// and their lines. Saving an entry implies saving its lines, applying any
// balance changes, and appending the audit record atomically: every exit
// path leaves the store either fully before or fully after the operation.
type JournalRepository interface {
	// SaveEntry persists a new entry header with its lines. For a Posted
	// entry balanceChanges carries the net delta per account; for a Draft
	// it is empty and no account is touched.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, balanceChanges map[string]decimal.Decimal, audit domain.AuditLog) error

	// MarkEntryPosted transitions an existing Draft entry to Posted and
	// applies its balance changes. The status guard lives in the service.
	MarkEntryPosted(ctx context.Context, entryID string, postedAt time.Time, balanceChanges map[string]decimal.Decimal, audit domain.AuditLog) error

	UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry, audit domain.AuditLog) error
	DeleteEntry(ctx context.Context, entryID string, audit domain.AuditLog) error

	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context) ([]domain.JournalEntry, error)

	// FindEntryIDByNaturalKey looks an entry up by its import identity:
	// date truncated to day (YYYY-MM-DD), description, and reference.
	// Returns "" when no such entry exists.
	FindEntryIDByNaturalKey(ctx context.Context, day string, description string, reference string) (string, error)

	// HasPostedLines reports whether any posted line references the account.
	HasPostedLines(ctx context.Context, accountID string) (bool, error)

	// SumPostedLinesByAccount totals debit and credit across all posted
	// lines referencing the account, for balance recomputation.
	SumPostedLinesByAccount(ctx context.Context, accountID string) (debits, credits decimal.Decimal, err error)
}
