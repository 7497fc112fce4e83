package repositories

import (
	"context"

	"github.com/bookease/bookease/internal/core/domain"
)

// AccountRepository defines the persistence operations for Accounts.
// Mutating methods write the given audit record in the same transaction as
// the mutation.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account, audit domain.AuditLog) error
	UpdateAccount(ctx context.Context, account domain.Account, audit domain.AuditLog) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	SearchAccounts(ctx context.Context, query string, typeFilter *domain.AccountType) ([]domain.Account, error)
	CountAccounts(ctx context.Context) (int64, error)
}
