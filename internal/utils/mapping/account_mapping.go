package mapping

import (
	"github.com/bookease/bookease/internal/core/domain"
	"github.com/bookease/bookease/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelAccount converts a domain account to its persistence form.
func ToModelAccount(a domain.Account) models.Account {
	return models.Account{
		ID:        a.AccountID,
		Code:      a.Code,
		Name:      a.Name,
		Type:      string(a.Type),
		Subtype:   a.Subtype,
		Balance:   a.Balance.String(),
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// ToDomainAccount converts a persisted account to its domain form. An
// unparsable balance string is a storage-level corruption and surfaces as
// an error from the repository scan, so the conversion here assumes the
// string is valid and falls back to zero otherwise.
func ToDomainAccount(m models.Account) domain.Account {
	balance, err := decimal.NewFromString(m.Balance)
	if err != nil {
		balance = decimal.Zero
	}
	return domain.Account{
		AccountID: m.ID,
		Code:      m.Code,
		Name:      m.Name,
		Type:      domain.AccountType(m.Type),
		Subtype:   m.Subtype,
		Balance:   balance,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToDomainAccountSlice converts a slice of persisted accounts.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	out := make([]domain.Account, len(ms))
	for i, m := range ms {
		out[i] = ToDomainAccount(m)
	}
	return out
}
