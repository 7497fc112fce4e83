package models

import "time"

// JournalEntry is the persistence representation of an entry header.
type JournalEntry struct {
	ID          string    `db:"id"`
	Date        time.Time `db:"date"`
	Description string    `db:"description"`
	Reference   string    `db:"reference"` // Nullable
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"createdAt"`
	UpdatedAt   time.Time `db:"updatedAt"`
}

// JournalLine is the persistence representation of one line. Debit and
// credit are decimal strings, exactly one of them positive.
type JournalLine struct {
	ID          string    `db:"id"`
	EntryID     string    `db:"entryId"`
	AccountID   string    `db:"accountId"`
	Debit       string    `db:"debit"`
	Credit      string    `db:"credit"`
	Description string    `db:"description"` // Nullable
	CreatedAt   time.Time `db:"createdAt"`
}
