package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "Asset"
	Liability AccountType = "Liability"
	Equity    AccountType = "Equity"
	Income    AccountType = "Income"
	Expense   AccountType = "Expense"
)

// ValidAccountType reports whether t is one of the five chart types.
func ValidAccountType(t AccountType) bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// Account is a single account in the chart of accounts.
//
// Balance is a cached value: the authoritative balance is the sum of all
// posted journal line effects against the account. Only the posting path
// may move it.
type Account struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"` // Short numeric string, unique, immutable after creation
	Name      string          `json:"name"`
	Type      AccountType     `json:"type"`
	Subtype   string          `json:"subtype"` // Optional free-text classification, no behavioral effect
	Balance   decimal.Decimal `json:"balance"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
