package dto

import (
	"time"

	"github.com/bookease/bookease/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// Balance and active status are not accepted: new accounts always start at
// zero and active.
type CreateAccountRequest struct {
	Code    string             `json:"code" binding:"required"`
	Name    string             `json:"name" binding:"required"`
	Type    domain.AccountType `json:"type" binding:"required,accounttype"`
	Subtype string             `json:"subtype"`
}

// UpdateAccountRequest defines the mutable account fields. Code is
// immutable after creation; balance moves only through posting. Pointers
// distinguish "not provided" from zero values.
type UpdateAccountRequest struct {
	Name    *string             `json:"name"`
	Type    *domain.AccountType `json:"type"`
	Subtype *string             `json:"subtype"`
}

// AccountResponse mirrors domain.Account for API consumers.
type AccountResponse struct {
	AccountID string             `json:"accountID"`
	Code      string             `json:"code"`
	Name      string             `json:"name"`
	Type      domain.AccountType `json:"type"`
	Subtype   string             `json:"subtype,omitempty"`
	Balance   decimal.Decimal    `json:"balance"`
	IsActive  bool               `json:"isActive"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: a.AccountID,
		Code:      a.Code,
		Name:      a.Name,
		Type:      a.Type,
		Subtype:   a.Subtype,
		Balance:   a.Balance,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// ToAccountResponseSlice converts a slice of domain accounts.
func ToAccountResponseSlice(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}
