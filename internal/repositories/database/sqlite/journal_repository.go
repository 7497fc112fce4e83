package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookease/bookease/internal/apperrors"
	"github.com/bookease/bookease/internal/core/domain"
	portsrepo "github.com/bookease/bookease/internal/core/ports/repositories"
	"github.com/bookease/bookease/internal/models"
	"github.com/bookease/bookease/internal/utils/mapping"
)

const (
	entryColumns = `id, date, description, reference, status, createdAt, updatedAt`
	lineColumns  = `id, entryId, accountId, debit, credit, description, createdAt`
)

// SQLiteJournalRepository persists journal entries, their lines, and the
// cached account balances they move. Every mutation runs in a single
// transaction with its audit record.
type SQLiteJournalRepository struct {
	BaseRepository
}

// newSQLiteJournalRepository creates a new repository for journal data.
func newSQLiteJournalRepository(db *sql.DB) portsrepo.JournalRepository {
	return &SQLiteJournalRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.JournalRepository = (*SQLiteJournalRepository)(nil)

// SaveEntry inserts the header and all lines, applies balance changes (empty
// for drafts), and appends the audit record. Any failure rolls everything
// back, including a balance change naming an unknown account.
func (r *SQLiteJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, balanceChanges map[string]decimal.Decimal, audit domain.AuditLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	m := mapping.ToModelJournalEntry(entry)
	headerQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?);
	`
	_, err = tx.ExecContext(ctx, headerQuery,
		m.ID, utc(m.Date), m.Description, nullString(m.Reference), m.Status,
		utc(m.CreatedAt), utc(m.UpdatedAt),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.ID, err)
	}

	if err := insertLines(ctx, tx, entry.Lines); err != nil {
		return err
	}
	if err := applyBalanceChanges(ctx, tx, balanceChanges, entry.UpdatedAt); err != nil {
		return err
	}
	if err := insertAuditLog(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(tx)
}

// MarkEntryPosted flips a Draft header to Posted and applies its balance
// changes in the same transaction.
func (r *SQLiteJournalRepository) MarkEntryPosted(ctx context.Context, entryID string, postedAt time.Time, balanceChanges map[string]decimal.Decimal, audit domain.AuditLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	query := `
		UPDATE journal_entries
		SET status = ?, updatedAt = ?
		WHERE id = ? AND status = ?;
	`
	res, err := tx.ExecContext(ctx, query, string(domain.Posted), utc(postedAt), entryID, string(domain.Draft))
	if err != nil {
		return apperrors.NewAppError(500, "failed to post journal entry "+entryID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewAppError(500, "failed to read post result for entry "+entryID, err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}

	if err := applyBalanceChanges(ctx, tx, balanceChanges, postedAt); err != nil {
		return err
	}
	if err := insertAuditLog(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(tx)
}

// UpdateEntryHeader rewrites the header and replaces all lines. The service
// only routes Draft entries here, so no balances move.
func (r *SQLiteJournalRepository) UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry, audit domain.AuditLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	m := mapping.ToModelJournalEntry(entry)
	query := `
		UPDATE journal_entries
		SET date = ?, description = ?, reference = ?, updatedAt = ?
		WHERE id = ?;
	`
	res, err := tx.ExecContext(ctx, query,
		utc(m.Date), m.Description, nullString(m.Reference), utc(m.UpdatedAt), m.ID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+m.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewAppError(500, "failed to read update result for entry "+m.ID, err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM journal_lines WHERE entryId = ?;`, m.ID); err != nil {
		return apperrors.NewAppError(500, "failed to replace lines for entry "+m.ID, err)
	}
	if err := insertLines(ctx, tx, entry.Lines); err != nil {
		return err
	}
	if err := insertAuditLog(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(tx)
}

// DeleteEntry removes the header and its lines. The cascade would remove the
// lines anyway; deleting them explicitly keeps the operation visible.
func (r *SQLiteJournalRepository) DeleteEntry(ctx context.Context, entryID string, audit domain.AuditLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	if _, err := tx.ExecContext(ctx, `DELETE FROM journal_lines WHERE entryId = ?;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for entry "+entryID, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = ?;`, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journal entry "+entryID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewAppError(500, "failed to read delete result for entry "+entryID, err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}

	if err := insertAuditLog(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(tx)
}

// FindEntryByID retrieves one entry with its lines in insertion order.
func (r *SQLiteJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE id = ?;`
	m, err := scanEntryRow(r.DB.QueryRowContext(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+entryID, err)
	}

	lines, err := r.linesForEntries(ctx, []string{entryID})
	if err != nil {
		return nil, err
	}
	entry := mapping.ToDomainJournalEntry(m)
	entry.Lines = mapping.ToDomainJournalLineSlice(lines[entryID])
	return &entry, nil
}

// ListEntries returns all entries newest date first, lines attached. Lines
// load in one batched query instead of one per entry.
func (r *SQLiteJournalRepository) ListEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries ORDER BY date DESC, createdAt DESC;`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	headers := []models.JournalEntry{}
	ids := []string{}
	for rows.Next() {
		m, err := scanEntryRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		headers = append(headers, m)
		ids = append(ids, m.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	linesByEntry, err := r.linesForEntries(ctx, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.JournalEntry, len(headers))
	for i, m := range headers {
		entry := mapping.ToDomainJournalEntry(m)
		entry.Lines = mapping.ToDomainJournalLineSlice(linesByEntry[m.ID])
		entries[i] = entry
	}
	return entries, nil
}

// FindEntryIDByNaturalKey resolves an entry by day, description, and
// reference. Timestamps are stored in UTC text form, so the day prefix of
// the date column is the calendar day.
func (r *SQLiteJournalRepository) FindEntryIDByNaturalKey(ctx context.Context, day string, description string, reference string) (string, error) {
	query := `
		SELECT id FROM journal_entries
		WHERE substr(date, 1, 10) = ? AND description = ? AND IFNULL(reference, '') = ?
		LIMIT 1;
	`
	var id string
	err := r.DB.QueryRowContext(ctx, query, day, description, reference).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to look up entry by natural key", err)
	}
	return id, nil
}

// HasPostedLines reports whether any posted line references the account.
func (r *SQLiteJournalRepository) HasPostedLines(ctx context.Context, accountID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM journal_lines jl
			JOIN journal_entries je ON je.id = jl.entryId
			WHERE jl.accountId = ? AND je.status = ?
		);
	`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, accountID, string(domain.Posted)).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check posted lines for account "+accountID, err)
	}
	return exists, nil
}

// SumPostedLinesByAccount totals debits and credits across posted lines.
// Amounts are decimal strings, so the summing happens here rather than in
// SQL where they would degrade to floats.
func (r *SQLiteJournalRepository) SumPostedLinesByAccount(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT jl.debit, jl.credit FROM journal_lines jl
		JOIN journal_entries je ON je.id = jl.entryId
		WHERE jl.accountId = ? AND je.status = ?;
	`
	rows, err := r.DB.QueryContext(ctx, query, accountID, string(domain.Posted))
	if err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to query posted lines for account "+accountID, err)
	}
	defer rows.Close()

	debits, credits := decimal.Zero, decimal.Zero
	for rows.Next() {
		var debitStr, creditStr string
		if err := rows.Scan(&debitStr, &creditStr); err != nil {
			return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to scan posted line row", err)
		}
		if d, err := decimal.NewFromString(debitStr); err == nil {
			debits = debits.Add(d)
		}
		if c, err := decimal.NewFromString(creditStr); err == nil {
			credits = credits.Add(c)
		}
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "error iterating posted line rows", err)
	}
	return debits, credits, nil
}

func insertLines(ctx context.Context, tx *sql.Tx, lines []domain.JournalLine) error {
	query := `
		INSERT INTO journal_lines (` + lineColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?);
	`
	for _, line := range lines {
		m := mapping.ToModelJournalLine(line)
		_, err := tx.ExecContext(ctx, query,
			m.ID, m.EntryID, m.AccountID, m.Debit, m.Credit,
			nullString(m.Description), utc(m.CreatedAt),
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert journal line for entry "+m.EntryID, err)
		}
	}
	return nil
}

// applyBalanceChanges folds the per-account deltas into the cached balances.
// All reads and writes happen inside the caller's transaction; an unknown
// account aborts the whole posting.
func applyBalanceChanges(ctx context.Context, tx *sql.Tx, balanceChanges map[string]decimal.Decimal, now time.Time) error {
	for accountID, delta := range balanceChanges {
		if delta.IsZero() {
			continue
		}

		var balanceStr string
		err := tx.QueryRowContext(ctx, `SELECT balance FROM accounts WHERE id = ?;`, accountID).Scan(&balanceStr)
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		if err != nil {
			return apperrors.NewAppError(500, "failed to read balance for account "+accountID, err)
		}

		balance, err := decimal.NewFromString(balanceStr)
		if err != nil {
			return apperrors.NewAppError(500, "corrupt balance for account "+accountID, err)
		}
		updated := balance.Add(delta)

		_, err = tx.ExecContext(ctx,
			`UPDATE accounts SET balance = ?, updatedAt = ? WHERE id = ?;`,
			updated.String(), utc(now), accountID,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update balance for account "+accountID, err)
		}
	}
	return nil
}

func (r *SQLiteJournalRepository) linesForEntries(ctx context.Context, entryIDs []string) (map[string][]models.JournalLine, error) {
	result := make(map[string][]models.JournalLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return result, nil
	}

	placeholders := strings.Repeat("?,", len(entryIDs))
	placeholders = placeholders[:len(placeholders)-1]
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entryId IN (` + placeholders + `) ORDER BY rowid;`

	args := make([]any, len(entryIDs))
	for i, id := range entryIDs {
		args[i] = id
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.JournalLine
		var description sql.NullString
		err := rows.Scan(&m.ID, &m.EntryID, &m.AccountID, &m.Debit, &m.Credit, &description, &m.CreatedAt)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row", err)
		}
		m.Description = description.String
		result[m.EntryID] = append(result[m.EntryID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal line rows", err)
	}
	return result, nil
}

func scanEntryRow(row rowScanner) (models.JournalEntry, error) {
	var m models.JournalEntry
	var reference sql.NullString
	err := row.Scan(
		&m.ID, &m.Date, &m.Description, &reference, &m.Status,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return models.JournalEntry{}, err
	}
	m.Reference = reference.String
	return m, nil
}
