package services

import (
	"context"
	"encoding/json"
	"errors"
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

// localActor identifies the single local user in audit records. There is
// no multi-user model; the field exists so the audit schema carries an
// actor from day one.
const localActor = "local"

// accountService implements portssvc.AccountService.
type accountService struct {
	accountRepo portsrepo.AccountRepository
	journalRepo portsrepo.JournalRepository
	notifier    *events.Notifier
}

// NewAccountService creates the account store facade.
func NewAccountService(accountRepo portsrepo.AccountRepository, journalRepo portsrepo.JournalRepository) portssvc.AccountService {
	return &accountService{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		notifier:    events.NewNotifier(),
	}
}

var _ portssvc.AccountService = (*accountService)(nil)

func (s *accountService) Subscribe(handler func()) func() {
	return s.notifier.Subscribe(handler)
}

// CreateAccount validates and persists a new account. New accounts always
// start with a zero balance and active status regardless of the request.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: account code and name are required", apperrors.ErrValidation)
	}
	if !domain.ValidAccountType(req.Type) {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.Type)
	}

	// Codes are unique across the whole chart, inactive accounts included.
	existing, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check account code uniqueness", slog.String("code", code), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: account code %q already exists", apperrors.ErrDuplicate, code)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID: uuid.NewString(),
		Code:      code,
		Name:      name,
		Type:      req.Type,
		Subtype:   strings.TrimSpace(req.Subtype),
		Balance:   decimal.Zero,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	audit := newAuditLog(account.AccountID, domain.TargetAccount, domain.AuditCreate, map[string]any{
		"code": account.Code,
		"name": account.Name,
		"type": account.Type,
	}, now)

	if err := s.accountRepo.SaveAccount(ctx, account, audit); err != nil {
		logger.Error("Failed to save account", slog.String("code", code), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", code))
	s.notifier.Notify()
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) SearchAccounts(ctx context.Context, query string, typeFilter *domain.AccountType) ([]domain.Account, error) {
	if typeFilter != nil && !domain.ValidAccountType(*typeFilter) {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *typeFilter)
	}
	accounts, err := s.accountRepo.SearchAccounts(ctx, strings.TrimSpace(query), typeFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to search accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount applies a partial update to name, type, or subtype. The
// code is immutable, and the type is frozen once any posted line references
// the account: changing it would flip the sign convention retroactively
// for reads without touching the already-applied deltas.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	changes := make(map[string]any)
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
		}
		if name != account.Name {
			account.Name = name
			changes["name"] = name
		}
	}
	if req.Type != nil && *req.Type != account.Type {
		if !domain.ValidAccountType(*req.Type) {
			return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *req.Type)
		}
		hasPosted, err := s.journalRepo.HasPostedLines(ctx, accountID)
		if err != nil {
			return nil, fmt.Errorf("failed to check posted lines for account %s: %w", accountID, err)
		}
		if hasPosted {
			return nil, fmt.Errorf("%w: account type cannot change once posted entries reference the account", apperrors.ErrValidation)
		}
		account.Type = *req.Type
		changes["type"] = *req.Type
	}
	if req.Subtype != nil && *req.Subtype != account.Subtype {
		account.Subtype = strings.TrimSpace(*req.Subtype)
		changes["subtype"] = account.Subtype
	}

	if len(changes) == 0 {
		return account, nil
	}

	now := time.Now().UTC()
	account.UpdatedAt = now
	audit := newAuditLog(accountID, domain.TargetAccount, domain.AuditUpdate, changes, now)

	if err := s.accountRepo.UpdateAccount(ctx, *account, audit); err != nil {
		logger.Error("Failed to update account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	s.notifier.Notify()
	return account, nil
}

// ToggleAccountStatus flips the active flag. Inactive accounts keep their
// balance and history; they are only excluded from new-entry pickers.
func (s *accountService) ToggleAccountStatus(ctx context.Context, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	now := time.Now().UTC()
	account.IsActive = !account.IsActive
	account.UpdatedAt = now

	audit := newAuditLog(accountID, domain.TargetAccount, domain.AuditUpdate, map[string]any{
		"isActive": account.IsActive,
	}, now)

	if err := s.accountRepo.UpdateAccount(ctx, *account, audit); err != nil {
		logger.Error("Failed to toggle account status", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to toggle account status: %w", err)
	}

	logger.Info("Account status toggled", slog.String("account_id", accountID), slog.Bool("is_active", account.IsActive))
	s.notifier.Notify()
	return account, nil
}

// RecomputeBalance derives the balance from all posted lines referencing
// the account. The cached column stays the hot path; this routine exists
// for integrity checks against it.
func (s *accountService) RecomputeBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	debits, credits, err := s.journalRepo.SumPostedLinesByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum posted lines for account %s: %w", accountID, err)
	}

	sign, err := accounting.SignFor(account.Type)
	if err != nil {
		return decimal.Zero, err
	}
	return sign.Mul(debits.Sub(credits)), nil
}

// newAuditLog builds an audit record with a JSON-encoded change set.
func newAuditLog(targetID, targetType string, action domain.AuditAction, changes map[string]any, now time.Time) domain.AuditLog {
	encoded, err := json.Marshal(changes)
	if err != nil {
		encoded = []byte("{}")
	}
	return domain.AuditLog{
		AuditID:    uuid.NewString(),
		TargetID:   targetID,
		TargetType: targetType,
		Action:     action,
		Changes:    string(encoded),
		Timestamp:  now,
		Actor:      localActor,
	}
}
