package mapping

import (
	"github.com/bookease/bookease/internal/core/domain"
	"github.com/bookease/bookease/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelJournalEntry converts a domain entry header to its persistence form.
func ToModelJournalEntry(e domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		ID:          e.EntryID,
		Date:        e.Date,
		Description: e.Description,
		Reference:   e.Reference,
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ToDomainJournalEntry converts a persisted entry header. Lines are loaded
// and attached separately by the repository.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.ID,
		Date:        m.Date,
		Description: m.Description,
		Reference:   m.Reference,
		Status:      domain.EntryStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToModelJournalLine converts a domain line to its persistence form.
func ToModelJournalLine(l domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		ID:          l.LineID,
		EntryID:     l.EntryID,
		AccountID:   l.AccountID,
		Debit:       l.Debit.String(),
		Credit:      l.Credit.String(),
		Description: l.Description,
		CreatedAt:   l.CreatedAt,
	}
}

// ToDomainJournalLine converts a persisted line to its domain form.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	debit, err := decimal.NewFromString(m.Debit)
	if err != nil {
		debit = decimal.Zero
	}
	credit, err := decimal.NewFromString(m.Credit)
	if err != nil {
		credit = decimal.Zero
	}
	return domain.JournalLine{
		LineID:      m.ID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Debit:       debit,
		Credit:      credit,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

// ToDomainJournalLineSlice converts a slice of persisted lines.
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	out := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		out[i] = ToDomainJournalLine(m)
	}
	return out
}

// ToModelAuditLog converts a domain audit record to its persistence form.
func ToModelAuditLog(a domain.AuditLog) models.AuditLog {
	return models.AuditLog{
		ID:         a.AuditID,
		TargetID:   a.TargetID,
		TargetType: a.TargetType,
		Action:     string(a.Action),
		Changes:    a.Changes,
		Timestamp:  a.Timestamp,
		Actor:      a.Actor,
	}
}

// ToDomainAuditLog converts a persisted audit record to its domain form.
func ToDomainAuditLog(m models.AuditLog) domain.AuditLog {
	return domain.AuditLog{
		AuditID:    m.ID,
		TargetID:   m.TargetID,
		TargetType: m.TargetType,
		Action:     domain.AuditAction(m.Action),
		Changes:    m.Changes,
		Timestamp:  m.Timestamp,
		Actor:      m.Actor,
	}
}
