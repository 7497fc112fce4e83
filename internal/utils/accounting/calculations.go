package accounting

import (
	"fmt"

	"github.com/bookease/bookease/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Tolerance is the maximum absolute difference between total debits and
// total credits for an entry to count as balanced. Amounts are exact
// two-decimal currency values; the margin guards against rounding noise in
// imported data, it is not a rounding feature.
var Tolerance = decimal.NewFromFloat(0.01)

var (
	one    = decimal.NewFromInt(1)
	negOne = decimal.NewFromInt(-1)
)

// SignFor returns +1 for debit-normal account types (Asset, Expense) and
// -1 for credit-normal types (Liability, Equity, Income). Applying the sign
// uniformly as sign*(debit-credit) keeps type branching out of the posting
// algorithm.
func SignFor(t domain.AccountType) (decimal.Decimal, error) {
	switch t {
	case domain.Asset, domain.Expense:
		return one, nil
	case domain.Liability, domain.Equity, domain.Income:
		return negOne, nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type %q", t)
	}
}

// LineDelta computes the balance effect of a single journal line on an
// account of the given type.
func LineDelta(line domain.JournalLine, t domain.AccountType) (decimal.Decimal, error) {
	sign, err := SignFor(t)
	if err != nil {
		return decimal.Zero, fmt.Errorf("account %s: %w", line.AccountID, err)
	}
	return sign.Mul(line.Debit.Sub(line.Credit)), nil
}

// BalanceCheck is the result of validating an entry's line set.
type BalanceCheck struct {
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
	Balanced     bool
}

// CheckBalance computes debit and credit totals for a candidate line set
// and reports whether the entry may be posted: |debits-credits| within
// Tolerance and total debits strictly positive. Pure; an empty line set is
// never balanced.
func CheckBalance(lines []domain.JournalLine) BalanceCheck {
	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for _, l := range lines {
		totalDebits = totalDebits.Add(l.Debit)
		totalCredits = totalCredits.Add(l.Credit)
	}
	balanced := totalDebits.Sub(totalCredits).Abs().LessThan(Tolerance) && totalDebits.IsPositive()
	return BalanceCheck{
		TotalDebits:  totalDebits,
		TotalCredits: totalCredits,
		Balanced:     balanced,
	}
}
