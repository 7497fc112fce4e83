package services

import "context"

// SeedService populates the default chart of accounts on first run.
type SeedService interface {
	// SeedDefaultAccounts creates the default chart when no accounts
	// exist yet; returns how many were created (0 when skipped).
	SeedDefaultAccounts(ctx context.Context) (int, error)
}

// ServiceContainer bundles the service facades handed to the handlers.
type ServiceContainer struct {
	Account    AccountService
	Journal    JournalService
	Reconciler ReconcilerService
	Seed       SeedService
	Audit      AuditService
}
