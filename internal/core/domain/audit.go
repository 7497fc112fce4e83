package domain

import "time"

// AuditAction enumerates state-changing operations recorded in the audit
// trail. Unpost is reserved; no operation emits it yet.
type AuditAction string

const (
	AuditCreate AuditAction = "create"
	AuditUpdate AuditAction = "update"
	AuditDelete AuditAction = "delete"
	AuditPost   AuditAction = "post"
	AuditUnpost AuditAction = "unpost"
)

// Audit target types.
const (
	TargetAccount      = "Account"
	TargetJournalEntry = "JournalEntry"
)

// AuditLog is one append-only record of a mutation, written in the same
// transaction as the mutation itself.
type AuditLog struct {
	AuditID    string      `json:"auditID"`
	TargetID   string      `json:"targetID"`
	TargetType string      `json:"targetType"`
	Action     AuditAction `json:"action"`
	Changes    string      `json:"changes"` // JSON diff of what changed
	Timestamp  time.Time   `json:"timestamp"`
	Actor      string      `json:"actor"`
}
