package repositories

import (
	"context"

	"github.com/bookease/bookease/internal/core/domain"
)

// AuditRepository reads the append-only audit trail. Writes happen inside
// the account and journal repositories' transactions.
type AuditRepository interface {
	ListAuditLogs(ctx context.Context, targetID string) ([]domain.AuditLog, error)
}
