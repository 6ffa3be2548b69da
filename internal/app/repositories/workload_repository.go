package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lintangpradipa/catatankita/internal/app/insight"
	"github.com/lintangpradipa/catatankita/internal/pkg/logger"
)

// WorkloadRepository reads task/assignment aggregates for the risk
// heuristic. The task feature writes these rows elsewhere.
type WorkloadRepository struct {
	DB *pgxpool.Pool
}

// NewWorkloadRepository creates a new instance of WorkloadRepository.
func NewWorkloadRepository(db *pgxpool.Pool) *WorkloadRepository {
	return &WorkloadRepository{DB: db}
}

// Snapshot counts the owner's open items due within 24 hours and those
// whose title or description mentions the subject.
func (r *WorkloadRepository) Snapshot(ctx context.Context, owner uuid.UUID, subject string, now time.Time) (insight.WorkloadSnapshot, error) {
	var snap insight.WorkloadSnapshot

	err := r.DB.QueryRow(ctx, `
		SELECT
			count(*) FILTER (WHERE due_at IS NOT NULL AND due_at > $2 AND due_at <= $3),
			count(*) FILTER (WHERE $4 <> '' AND (title ILIKE $5 OR description ILIKE $5))
		FROM workload_items
		WHERE owner_user_id = $1 AND NOT completed`,
		owner, now, now.Add(24*time.Hour), subject, "%"+subject+"%",
	).Scan(&snap.DueSoonCount, &snap.SubjectMatchCount)
	if err != nil {
		logger.Error().Err(err).Str("owner", owner.String()).Msg("Error computing workload snapshot")
		return insight.WorkloadSnapshot{}, err
	}
	return snap, nil
}
