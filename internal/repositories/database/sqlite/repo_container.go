package sqlite

import (
	"database/sql"

	portsrepo "github.com/bookease/bookease/internal/core/ports/repositories"
)

// RepositoryProvider bundles all repositories over one store handle.
type RepositoryProvider struct {
	AccountRepo portsrepo.AccountRepository
	JournalRepo portsrepo.JournalRepository
	AuditRepo   portsrepo.AuditRepository
}

// NewRepositoryProvider creates all repositories backed by the given store.
func NewRepositoryProvider(db *sql.DB) *RepositoryProvider {
	return &RepositoryProvider{
		AccountRepo: newSQLiteAccountRepository(db),
		JournalRepo: newSQLiteJournalRepository(db),
		AuditRepo:   newSQLiteAuditRepository(db),
	}
}
