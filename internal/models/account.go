package models

import "time"

// Account is the persistence representation of a chart-of-accounts entry.
// Balance is stored as a decimal string to keep exact currency values in
// SQLite.
type Account struct {
	ID        string    `db:"id"`
	Code      string    `db:"code"`
	Name      string    `db:"name"`
	Type      string    `db:"type"`
	Subtype   string    `db:"subtype"` // Nullable
	Balance   string    `db:"balance"`
	IsActive  bool      `db:"isActive"`
	CreatedAt time.Time `db:"createdAt"`
	UpdatedAt time.Time `db:"updatedAt"`
}
