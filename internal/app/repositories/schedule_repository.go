package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lintangpradipa/catatankita/internal/app/models"
	"github.com/lintangpradipa/catatankita/internal/pkg/apperrors"
	"github.com/lintangpradipa/catatankita/internal/pkg/logger"
)

// ScheduleRepository reads the schedule sessions owned by the scheduling
// feature. This service never writes them.
type ScheduleRepository struct {
	DB *pgxpool.Pool
}

// NewScheduleRepository creates a new instance of ScheduleRepository.
func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{DB: db}
}

func selectSessionsQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "owner_user_id", "weekday", "subject", "room", "lecturer", "start_time", "end_time",
	).From("schedule_sessions").PlaceholderFormat(squirrel.Dollar)
}

func scanSession(row pgx.Row) (*models.ScheduleSession, error) {
	var s models.ScheduleSession
	err := row.Scan(&s.ID, &s.OwnerUserID, &s.Weekday, &s.Subject, &s.Room, &s.Lecturer, &s.StartTime, &s.EndTime)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrScheduleNotFound
		}
		logger.Error().Err(err).Msg("Error scanning schedule session")
		return nil, err
	}
	return &s, nil
}

// GetByID retrieves a single schedule session.
func (r *ScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ScheduleSession, error) {
	sqlStr, args, err := selectSessionsQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanSession(r.DB.QueryRow(ctx, sqlStr, args...))
}

// ListByOwnerWeekday returns an owner's sessions on one weekday, ordered by
// start time.
func (r *ScheduleRepository) ListByOwnerWeekday(ctx context.Context, owner uuid.UUID, weekday int) ([]*models.ScheduleSession, error) {
	sqlStr, args, err := selectSessionsQuery().
		Where(squirrel.Eq{"owner_user_id": owner, "weekday": weekday}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing sessions by weekday query")
		return nil, err
	}
	defer rows.Close()

	sessions := make([]*models.ScheduleSession, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
