package services

import (
	"context"

	"github.com/bookease/bookease/internal/core/domain"
	"github.com/bookease/bookease/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountService is the facade over the account store.
type AccountService interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	SearchAccounts(ctx context.Context, query string, typeFilter *domain.AccountType) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
	ToggleAccountStatus(ctx context.Context, accountID string) (*domain.Account, error)

	// RecomputeBalance derives the account balance from posted journal
	// lines, for integrity checks against the cached value.
	RecomputeBalance(ctx context.Context, accountID string) (decimal.Decimal, error)

	// Subscribe registers a handler fired synchronously after each
	// committed account mutation; returns the unsubscribe function.
	Subscribe(handler func()) func()
}
