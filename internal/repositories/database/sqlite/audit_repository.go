package sqlite

import (
	"context"
	"database/sql"

	"github.com/bookease/bookease/internal/apperrors"
	"github.com/bookease/bookease/internal/core/domain"
	portsrepo "github.com/bookease/bookease/internal/core/ports/repositories"
	"github.com/bookease/bookease/internal/models"
	"github.com/bookease/bookease/internal/utils/mapping"
)

// SQLiteAuditRepository reads the audit trail. Writes happen inside the
// account and journal repositories' transactions.
type SQLiteAuditRepository struct {
	BaseRepository
}

// newSQLiteAuditRepository creates a new repository for audit data.
func newSQLiteAuditRepository(db *sql.DB) portsrepo.AuditRepository {
	return &SQLiteAuditRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.AuditRepository = (*SQLiteAuditRepository)(nil)

// ListAuditLogs returns the records for one target, newest first.
func (r *SQLiteAuditRepository) ListAuditLogs(ctx context.Context, targetID string) ([]domain.AuditLog, error) {
	query := `
		SELECT id, targetId, targetType, action, changes, timestamp, actor
		FROM audit_logs
		WHERE targetId = ?
		ORDER BY timestamp DESC, rowid DESC;
	`
	rows, err := r.DB.QueryContext(ctx, query, targetID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit logs for "+targetID, err)
	}
	defer rows.Close()

	logs := []domain.AuditLog{}
	for rows.Next() {
		var m models.AuditLog
		var changes sql.NullString
		err := rows.Scan(&m.ID, &m.TargetID, &m.TargetType, &m.Action, &changes, &m.Timestamp, &m.Actor)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit log row", err)
		}
		m.Changes = changes.String
		logs = append(logs, mapping.ToDomainAuditLog(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating audit log rows", err)
	}
	return logs, nil
}
