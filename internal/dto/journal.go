package dto

import (
	"time"

	"github.com/bookease/bookease/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryLine is one candidate journal line. Exactly one of debit or
// credit must be positive; the service enforces this as a model invariant.
type CreateEntryLine struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateEntryRequest defines the data needed to create a journal entry.
// Status Draft persists without validation or balance effect; status
// Posted runs the full posting path atomically at creation.
type CreateEntryRequest struct {
	Date        time.Time          `json:"date" binding:"required"`
	Description string             `json:"description" binding:"required"`
	Reference   string             `json:"reference"`
	Status      domain.EntryStatus `json:"status" binding:"omitempty,oneof=Draft Posted"`
	Lines       []CreateEntryLine  `json:"lines" binding:"required,min=2,dive"`
}

// UpdateEntryRequest defines the mutable header fields of a Draft entry.
type UpdateEntryRequest struct {
	Date        *time.Time `json:"date"`
	Description *string    `json:"description"`
	Reference   *string    `json:"reference"`
}

// EntryLineResponse mirrors domain.JournalLine.
type EntryLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// EntryResponse mirrors domain.JournalEntry with resolved lines.
type EntryResponse struct {
	EntryID     string              `json:"entryID"`
	Date        time.Time           `json:"date"`
	Description string              `json:"description"`
	Reference   string              `json:"reference,omitempty"`
	Status      domain.EntryStatus  `json:"status"`
	TotalAmount decimal.Decimal     `json:"totalAmount"`
	Lines       []EntryLineResponse `json:"lines"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// ToEntryResponse converts a domain.JournalEntry to its response DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	lines := make([]EntryLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = EntryLineResponse{
			LineID:      l.LineID,
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
			CreatedAt:   l.CreatedAt,
		}
	}
	return EntryResponse{
		EntryID:     e.EntryID,
		Date:        e.Date,
		Description: e.Description,
		Reference:   e.Reference,
		Status:      e.Status,
		TotalAmount: e.TotalAmount(),
		Lines:       lines,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ToEntryResponseSlice converts a slice of domain entries.
func ToEntryResponseSlice(entries []domain.JournalEntry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i := range entries {
		out[i] = ToEntryResponse(&entries[i])
	}
	return out
}
