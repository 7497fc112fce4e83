package services

import (
	portsrepo "github.com/bookease/bookease/internal/core/ports/repositories"
	portssvc "github.com/bookease/bookease/internal/core/ports/services"
)

// NewServiceContainer wires all service facades over the given
// repositories.
func NewServiceContainer(accountRepo portsrepo.AccountRepository, journalRepo portsrepo.JournalRepository, auditRepo portsrepo.AuditRepository) *portssvc.ServiceContainer {
	accountSvc := NewAccountService(accountRepo, journalRepo)
	journalSvc := NewJournalService(journalRepo, accountRepo)
	reconcilerSvc := NewReconcilerService(journalSvc, journalRepo, accountRepo)
	seedSvc := NewSeedService(accountSvc, accountRepo)
	auditSvc := NewAuditService(auditRepo)

	return &portssvc.ServiceContainer{
		Account:    accountSvc,
		Journal:    journalSvc,
		Reconciler: reconcilerSvc,
		Seed:       seedSvc,
		Audit:      auditSvc,
	}
}
