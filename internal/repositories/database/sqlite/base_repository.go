package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/bookease/bookease/internal/apperrors"
	"github.com/bookease/bookease/internal/core/domain"
	"github.com/bookease/bookease/internal/utils/mapping"
)

// BaseRepository provides the shared transaction plumbing for all
// repositories over the embedded store.
type BaseRepository struct {
	DB *sql.DB
}

// Begin starts a new database transaction.
func (r *BaseRepository) Begin(ctx context.Context) (*sql.Tx, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction.
func (r *BaseRepository) Commit(tx *sql.Tx) error {
	if err := tx.Commit(); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction. Safe to defer after a successful
// commit: the resulting ErrTxDone is ignored.
func (r *BaseRepository) Rollback(tx *sql.Tx) {
	_ = txRollback(tx)
}

func txRollback(tx *sql.Tx) error {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// insertAuditLog appends one audit record inside the given transaction so
// the trail commits or rolls back together with the mutation it records.
func insertAuditLog(ctx context.Context, tx *sql.Tx, audit domain.AuditLog) error {
	m := mapping.ToModelAuditLog(audit)
	query := `
		INSERT INTO audit_logs (id, targetId, targetType, action, changes, timestamp, actor)
		VALUES (?, ?, ?, ?, ?, ?, ?);
	`
	_, err := tx.ExecContext(ctx, query,
		m.ID, m.TargetID, m.TargetType, m.Action, nullString(m.Changes), m.Timestamp, m.Actor,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit log for "+m.TargetID, err)
	}
	return nil
}

// nullString maps "" to NULL for optional text columns.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// utc normalizes timestamps before they hit the store so day-level
// comparisons behave across sessions.
func utc(t time.Time) time.Time {
	return t.UTC()
}
