package services

import (
	"context"

	"github.com/bookease/bookease/internal/core/domain"
)

// AuditService reads the append-only audit trail.
type AuditService interface {
	// ListAuditLogs returns all audit records for one target, newest
	// first.
	ListAuditLogs(ctx context.Context, targetID string) ([]domain.AuditLog, error)
}
