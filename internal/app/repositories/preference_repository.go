package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lintangpradipa/catatankita/internal/pkg/logger"
	"github.com/lintangpradipa/catatankita/internal/pkg/semester"
)

// PreferenceRepository stores each user's academic-year start month.
type PreferenceRepository struct {
	DB           *pgxpool.Pool
	defaultMonth int
}

// NewPreferenceRepository creates a new instance of PreferenceRepository.
// defaultMonth is returned for users who never set a preference.
func NewPreferenceRepository(db *pgxpool.Pool, defaultMonth int) *PreferenceRepository {
	if defaultMonth < 1 || defaultMonth > 12 {
		defaultMonth = semester.DefaultStartMonth
	}
	return &PreferenceRepository{DB: db, defaultMonth: defaultMonth}
}

// GetStartMonth returns the user's configured academic-year start month,
// falling back to the instance default when no row exists.
func (r *PreferenceRepository) GetStartMonth(ctx context.Context, userID uuid.UUID) (int, error) {
	sqlStr, args, err := squirrel.Select("academic_year_start_month").
		From("semester_preferences").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return r.defaultMonth, err
	}

	var month int
	err = r.DB.QueryRow(ctx, sqlStr, args...).Scan(&month)
	if err != nil {
		if err == pgx.ErrNoRows {
			return r.defaultMonth, nil
		}
		logger.Error().Err(err).Str("userID", userID.String()).Msg("Error fetching semester preference")
		return r.defaultMonth, err
	}
	if month < 1 || month > 12 {
		return r.defaultMonth, nil
	}
	return month, nil
}

// Upsert writes the user's start month preference.
func (r *PreferenceRepository) Upsert(ctx context.Context, userID uuid.UUID, month int) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO semester_preferences (user_id, academic_year_start_month)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET
			academic_year_start_month = EXCLUDED.academic_year_start_month,
			updated_at = now()`, userID, month)
	if err != nil {
		logger.Error().Err(err).Msg("Error upserting semester preference")
		return err
	}
	return nil
}
