package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lintangpradipa/catatankita/internal/app/models"
	"github.com/lintangpradipa/catatankita/internal/pkg/logger"
)

// AuditRepository appends the audit trail written inside every mutation
// transaction.
type AuditRepository struct {
	DB *pgxpool.Pool
}

// NewAuditRepository creates a new instance of AuditRepository.
func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{DB: db}
}

// Insert writes one audit entry through the caller's transaction.
func (r *AuditRepository) Insert(ctx context.Context, q Querier, noteID, actorID uuid.UUID, action, detail string) error {
	_, err := q.Exec(ctx, `
		INSERT INTO audit_logs (id, note_id, actor_id, action, detail, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New(), noteID, actorID, action, detail, time.Now())
	if err != nil {
		logger.Error().Err(err).Str("action", action).Msg("Error writing audit entry")
		return err
	}
	return nil
}

// ListByNote returns a note's audit trail newest-first, capped at limit.
func (r *AuditRepository) ListByNote(ctx context.Context, noteID uuid.UUID, limit int) ([]*models.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.DB.Query(ctx, `
		SELECT id, note_id, actor_id, action, detail, occurred_at
		FROM audit_logs WHERE note_id = $1
		ORDER BY occurred_at DESC LIMIT $2`, noteID, limit)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing audit entries")
		return nil, err
	}
	defer rows.Close()

	entries := make([]*models.AuditLog, 0)
	for rows.Next() {
		var e models.AuditLog
		if err := rows.Scan(&e.ID, &e.NoteID, &e.ActorID, &e.Action, &e.Detail, &e.OccurredAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
