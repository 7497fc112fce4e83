package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/bookease/bookease/internal/apperrors"
	"github.com/bookease/bookease/internal/core/domain"
	portsrepo "github.com/bookease/bookease/internal/core/ports/repositories"
	"github.com/bookease/bookease/internal/models"
	"github.com/bookease/bookease/internal/utils/mapping"
)

const accountColumns = `id, code, name, type, subtype, balance, isActive, createdAt, updatedAt`

// SQLiteAccountRepository persists accounts in the embedded store.
type SQLiteAccountRepository struct {
	BaseRepository
}

// newSQLiteAccountRepository creates a new repository for account data.
func newSQLiteAccountRepository(db *sql.DB) portsrepo.AccountRepository {
	return &SQLiteAccountRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.AccountRepository = (*SQLiteAccountRepository)(nil)

// SaveAccount inserts a new account and its audit record in one
// transaction. A code collision surfaces as ErrDuplicate.
func (r *SQLiteAccountRepository) SaveAccount(ctx context.Context, account domain.Account, audit domain.AuditLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err = tx.ExecContext(ctx, query,
		m.ID, m.Code, m.Name, m.Type, nullString(m.Subtype), m.Balance, m.IsActive,
		utc(m.CreatedAt), utc(m.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert account "+m.ID, err)
	}

	if err := insertAuditLog(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(tx)
}

// UpdateAccount persists mutable fields (name, type, subtype, isActive)
// and the audit record atomically. Code and balance are not written here;
// balance moves only through the journal repository's posting path.
func (r *SQLiteAccountRepository) UpdateAccount(ctx context.Context, account domain.Account, audit domain.AuditLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = ?, type = ?, subtype = ?, isActive = ?, updatedAt = ?
		WHERE id = ?;
	`
	res, err := tx.ExecContext(ctx, query,
		m.Name, m.Type, nullString(m.Subtype), m.IsActive, utc(m.UpdatedAt), m.ID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+m.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewAppError(500, "failed to read update result for account "+m.ID, err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}

	if err := insertAuditLog(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(tx)
}

// FindAccountByID retrieves a single account by its identifier.
func (r *SQLiteAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = ?;`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, accountID), "find account by ID "+accountID)
}

// FindAccountByCode retrieves a single account by its unique code.
func (r *SQLiteAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = ?;`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, code), "find account by code "+code)
}

// FindAccountsByIDs retrieves the given accounts keyed by ID. Callers
// detect missing accounts by absence from the map.
func (r *SQLiteAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	placeholders := strings.Repeat("?,", len(accountIDs))
	placeholders = placeholders[:len(placeholders)-1]
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id IN (` + placeholders + `);`

	args := make([]any, len(accountIDs))
	for i, id := range accountIDs {
		args[i] = id
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, err := scanAccountRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		result[m.ID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return result, nil
}

// ListAccounts returns the full chart ordered by code.
func (r *SQLiteAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY code;`
	return r.queryAccounts(ctx, query)
}

// SearchAccounts filters by case-insensitive substring on name or code,
// intersected with an optional type filter, ordered by code.
func (r *SQLiteAccountRepository) SearchAccounts(ctx context.Context, query string, typeFilter *domain.AccountType) ([]domain.Account, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + accountColumns + ` FROM accounts WHERE 1=1`)
	args := []any{}

	if typeFilter != nil {
		sb.WriteString(` AND type = ?`)
		args = append(args, string(*typeFilter))
	}
	if query != "" {
		sb.WriteString(` AND (name LIKE ? OR code LIKE ?)`)
		pattern := "%" + query + "%"
		args = append(args, pattern, pattern)
	}
	sb.WriteString(` ORDER BY code;`)

	return r.queryAccounts(ctx, sb.String(), args...)
}

// CountAccounts counts all accounts, inactive ones included.
func (r *SQLiteAccountRepository) CountAccounts(ctx context.Context) (int64, error) {
	var count int64
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts;`).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count accounts", err)
	}
	return count, nil
}

func (r *SQLiteAccountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccountRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

func (r *SQLiteAccountRepository) scanOne(row *sql.Row, operation string) (*domain.Account, error) {
	m, err := scanAccountRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to "+operation, err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccountRow(row rowScanner) (models.Account, error) {
	var m models.Account
	var subtype sql.NullString
	err := row.Scan(
		&m.ID, &m.Code, &m.Name, &m.Type, &subtype, &m.Balance, &m.IsActive,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return models.Account{}, err
	}
	m.Subtype = subtype.String
	return m, nil
}

// isUniqueViolation detects a UNIQUE constraint failure from the driver.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
