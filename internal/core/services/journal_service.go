package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bookease/bookease/internal/apperrors"
	"github.com/bookease/bookease/internal/core/domain"
	"github.com/bookease/bookease/internal/core/events"
	portsrepo "github.com/bookease/bookease/internal/core/ports/repositories"
	portssvc "github.com/bookease/bookease/internal/core/ports/services"
	"github.com/bookease/bookease/internal/dto"
	"github.com/bookease/bookease/internal/middleware"
	"github.com/bookease/bookease/internal/utils/accounting"
)

var (
	ErrEntryUnbalanced    = fmt.Errorf("%w: entry debits and credits do not balance", apperrors.ErrValidation)
	ErrEntryMinLines      = fmt.Errorf("%w: entry must have at least two valid lines", apperrors.ErrValidation)
	ErrDescriptionMissing = fmt.Errorf("%w: entry description is required", apperrors.ErrValidation)
	ErrLineOneSided       = fmt.Errorf("%w: each line must have exactly one of debit or credit positive", apperrors.ErrValidation)
	ErrLineNegative       = fmt.Errorf("%w: line amounts must not be negative", apperrors.ErrValidation)
	ErrAlreadyPosted      = fmt.Errorf("%w: entry is already posted", apperrors.ErrValidation)
	ErrEntryNotDraft      = fmt.Errorf("%w: only draft entries can be modified or deleted", apperrors.ErrValidation)
	ErrAccountNotFound    = fmt.Errorf("%w: account referenced by entry line", apperrors.ErrNotFound)
)

// journalService implements portssvc.JournalService: the journal store and
// the posting engine on top of it.
type journalService struct {
	journalRepo portsrepo.JournalRepository
	accountRepo portsrepo.AccountRepository
	notifier    *events.Notifier
}

// NewJournalService creates the journal store facade.
func NewJournalService(journalRepo portsrepo.JournalRepository, accountRepo portsrepo.AccountRepository) portssvc.JournalService {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		notifier:    events.NewNotifier(),
	}
}

var _ portssvc.JournalService = (*journalService)(nil)

func (s *journalService) Subscribe(handler func()) func() {
	return s.notifier.Subscribe(handler)
}

// CreateEntry persists a new entry. A Draft is saved as-is with no balance
// validation and no balance effect; a Posted entry runs the full posting
// validation and applies its deltas atomically with the insert.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, ErrDescriptionMissing
	}

	status := req.Status
	if status == "" {
		status = domain.Draft
	}
	if status != domain.Draft && status != domain.Posted {
		return nil, fmt.Errorf("%w: unknown entry status %q", apperrors.ErrValidation, req.Status)
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines := make([]domain.JournalLine, 0, len(req.Lines))
	for _, lr := range req.Lines {
		line := domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   strings.TrimSpace(lr.AccountID),
			Debit:       lr.Debit,
			Credit:      lr.Credit,
			Description: lr.Description,
			CreatedAt:   now,
		}
		if err := validateLine(line); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if len(lines) < 2 {
		return nil, ErrEntryMinLines
	}

	entry := domain.JournalEntry{
		EntryID:     entryID,
		Date:        req.Date,
		Description: description,
		Reference:   strings.TrimSpace(req.Reference),
		Status:      status,
		Lines:       lines,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	balanceChanges := map[string]decimal.Decimal{}
	action := domain.AuditCreate
	if status == domain.Posted {
		var err error
		balanceChanges, err = s.balanceChangesFor(ctx, lines)
		if err != nil {
			return nil, err
		}
		action = domain.AuditPost
	}

	audit := newAuditLog(entryID, domain.TargetJournalEntry, action, map[string]any{
		"description": description,
		"status":      status,
		"lineCount":   len(lines),
	}, now)

	if err := s.journalRepo.SaveEntry(ctx, entry, balanceChanges, audit); err != nil {
		logger.Error("Failed to save journal entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	logger.Info("Journal entry created", slog.String("entry_id", entryID), slog.String("status", string(status)))
	s.notifier.Notify()
	return &entry, nil
}

// PostEntry transitions a Draft to Posted, applying balance deltas exactly
// once. Posting an already-Posted entry is rejected so deltas can never be
// double-applied.
func (s *journalService) PostEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.Status == domain.Posted {
		return nil, ErrAlreadyPosted
	}
	if strings.TrimSpace(entry.Description) == "" {
		return nil, ErrDescriptionMissing
	}
	if len(entry.Lines) < 2 {
		return nil, ErrEntryMinLines
	}
	for _, line := range entry.Lines {
		if err := validateLine(line); err != nil {
			return nil, err
		}
	}

	balanceChanges, err := s.balanceChangesFor(ctx, entry.Lines)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	audit := newAuditLog(entryID, domain.TargetJournalEntry, domain.AuditPost, map[string]any{
		"status": domain.Posted,
	}, now)

	if err := s.journalRepo.MarkEntryPosted(ctx, entryID, now, balanceChanges, audit); err != nil {
		logger.Error("Failed to post journal entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to post entry: %w", err)
	}

	entry.Status = domain.Posted
	entry.UpdatedAt = now
	logger.Info("Journal entry posted", slog.String("entry_id", entryID))
	s.notifier.Notify()
	return entry, nil
}

func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	return entry, nil
}

func (s *journalService) ListEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	entries, err := s.journalRepo.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// UpdateEntry applies a header patch to a Draft. Posted entries are
// immutable through this path.
func (s *journalService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.Status != domain.Draft {
		return nil, ErrEntryNotDraft
	}

	changes := make(map[string]any)
	if req.Date != nil && !req.Date.Equal(entry.Date) {
		entry.Date = *req.Date
		changes["date"] = req.Date.Format(time.RFC3339)
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, ErrDescriptionMissing
		}
		if description != entry.Description {
			entry.Description = description
			changes["description"] = description
		}
	}
	if req.Reference != nil && strings.TrimSpace(*req.Reference) != entry.Reference {
		entry.Reference = strings.TrimSpace(*req.Reference)
		changes["reference"] = entry.Reference
	}

	if len(changes) == 0 {
		return entry, nil
	}

	now := time.Now().UTC()
	entry.UpdatedAt = now
	audit := newAuditLog(entryID, domain.TargetJournalEntry, domain.AuditUpdate, changes, now)

	if err := s.journalRepo.UpdateEntryHeader(ctx, *entry, audit); err != nil {
		logger.Error("Failed to update journal entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	logger.Info("Journal entry updated", slog.String("entry_id", entryID))
	s.notifier.Notify()
	return entry, nil
}

// DeleteEntry removes a Draft and its lines. Deleting a Posted entry is
// rejected: a plain delete would strand its balance effect, and there is
// no unpost to reverse it.
func (s *journalService) DeleteEntry(ctx context.Context, entryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.Status != domain.Draft {
		return ErrEntryNotDraft
	}

	now := time.Now().UTC()
	audit := newAuditLog(entryID, domain.TargetJournalEntry, domain.AuditDelete, map[string]any{
		"description": entry.Description,
	}, now)

	if err := s.journalRepo.DeleteEntry(ctx, entryID, audit); err != nil {
		logger.Error("Failed to delete journal entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	logger.Info("Journal entry deleted", slog.String("entry_id", entryID))
	s.notifier.Notify()
	return nil
}

// validateLine enforces the line invariants: non-negative amounts and
// exactly one positive side.
func validateLine(line domain.JournalLine) error {
	if line.AccountID == "" {
		return fmt.Errorf("%w: line is missing an account", apperrors.ErrValidation)
	}
	if line.Debit.IsNegative() || line.Credit.IsNegative() {
		return ErrLineNegative
	}
	if line.Debit.IsPositive() == line.Credit.IsPositive() {
		return ErrLineOneSided
	}
	return nil
}

// balanceChangesFor validates the line set for posting and computes the
// net balance delta per account using the sign convention.
func (s *journalService) balanceChangesFor(ctx context.Context, lines []domain.JournalLine) (map[string]decimal.Decimal, error) {
	check := accounting.CheckBalance(lines)
	if !check.Balanced {
		return nil, fmt.Errorf("%w (debits %s, credits %s)", ErrEntryUnbalanced,
			check.TotalDebits.String(), check.TotalCredits.String())
	}

	accountIDs := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if !seen[line.AccountID] {
			seen[line.AccountID] = true
			accountIDs = append(accountIDs, line.AccountID)
		}
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts for posting: %w", err)
	}

	balanceChanges := make(map[string]decimal.Decimal, len(accountIDs))
	for _, line := range lines {
		account, found := accounts[line.AccountID]
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, line.AccountID)
		}
		delta, err := accounting.LineDelta(line, account.Type)
		if err != nil {
			return nil, err
		}
		balanceChanges[line.AccountID] = balanceChanges[line.AccountID].Add(delta)
	}
	return balanceChanges, nil
}
