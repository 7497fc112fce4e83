package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry. The transition
// Draft -> Posted is one-way; there is no unpost.
type EntryStatus string

const (
	Draft  EntryStatus = "Draft"
	Posted EntryStatus = "Posted"
)

// JournalEntry represents a single financial event composed of two or more
// journal lines. Only Posted entries affect account balances.
type JournalEntry struct {
	EntryID     string        `json:"entryID"`
	Date        time.Time     `json:"date"` // Date of the transaction, not necessarily creation time
	Description string        `json:"description"`
	Reference   string        `json:"reference"` // Invoice #, receipt #, etc. Optional.
	Status      EntryStatus   `json:"status"`
	Lines       []JournalLine `json:"lines"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// JournalLine is a single debit or credit within an entry. Lines are owned
// by their entry and have no independent lifecycle.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`  // Non-negative; zero when the line is a credit
	Credit      decimal.Decimal `json:"credit"` // Non-negative; zero when the line is a debit
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Amount returns the economic value of the line, whichever side carries it.
func (l JournalLine) Amount() decimal.Decimal {
	if l.Debit.IsPositive() {
		return l.Debit
	}
	return l.Credit
}

// TotalAmount returns the entry's economic value: the sum of its debits.
func (e JournalEntry) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}
