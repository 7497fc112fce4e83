package models

import "time"

// AuditLog is the persistence representation of one audit trail record.
type AuditLog struct {
	ID         string    `db:"id"`
	TargetID   string    `db:"targetId"`
	TargetType string    `db:"targetType"`
	Action     string    `db:"action"`
	Changes    string    `db:"changes"` // Nullable JSON
	Timestamp  time.Time `db:"timestamp"`
	Actor      string    `db:"actor"`
}
