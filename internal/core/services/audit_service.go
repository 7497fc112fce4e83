package services

import (
	"context"
	"fmt"

	"github.com/bookease/bookease/internal/core/domain"
	portsrepo "github.com/bookease/bookease/internal/core/ports/repositories"
	portssvc "github.com/bookease/bookease/internal/core/ports/services"
)

// auditService implements portssvc.AuditService. The trail is append-only;
// records are written inside the account and journal repositories'
// transactions, so this facade only reads.
type auditService struct {
	auditRepo portsrepo.AuditRepository
}

// NewAuditService creates the audit trail read facade.
func NewAuditService(auditRepo portsrepo.AuditRepository) portssvc.AuditService {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditService = (*auditService)(nil)

// ListAuditLogs returns the audit records for one target, newest first.
func (s *auditService) ListAuditLogs(ctx context.Context, targetID string) ([]domain.AuditLog, error) {
	logs, err := s.auditRepo.ListAuditLogs(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs for %s: %w", targetID, err)
	}
	return logs, nil
}
