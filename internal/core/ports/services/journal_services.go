package services

import (
	"context"

	"github.com/bookease/bookease/internal/core/domain"
	"github.com/bookease/bookease/internal/dto"
)

// JournalService is the facade over the journal store and the posting
// engine. CreateEntry with status Posted and PostEntry on an existing
// Draft share one posting path: validation and balance effects are
// identical either way.
type JournalService interface {
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest) (*domain.JournalEntry, error)
	PostEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context) ([]domain.JournalEntry, error)
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest) (*domain.JournalEntry, error)
	DeleteEntry(ctx context.Context, entryID string) error

	// Subscribe registers a handler fired synchronously after each
	// committed journal mutation; returns the unsubscribe function.
	Subscribe(handler func()) func()
}
