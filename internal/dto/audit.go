package dto

import (
	"time"

	"github.com/bookease/bookease/internal/core/domain"
)

// AuditLogResponse mirrors domain.AuditLog for API consumers.
type AuditLogResponse struct {
	AuditID    string             `json:"auditID"`
	TargetID   string             `json:"targetID"`
	TargetType string             `json:"targetType"`
	Action     domain.AuditAction `json:"action"`
	Changes    string             `json:"changes,omitempty"`
	Timestamp  time.Time          `json:"timestamp"`
	Actor      string             `json:"actor"`
}

// ToAuditLogResponseSlice converts a slice of domain audit records.
func ToAuditLogResponseSlice(logs []domain.AuditLog) []AuditLogResponse {
	out := make([]AuditLogResponse, len(logs))
	for i, a := range logs {
		out[i] = AuditLogResponse{
			AuditID:    a.AuditID,
			TargetID:   a.TargetID,
			TargetType: a.TargetType,
			Action:     a.Action,
			Changes:    a.Changes,
			Timestamp:  a.Timestamp,
			Actor:      a.Actor,
		}
	}
	return out
}
