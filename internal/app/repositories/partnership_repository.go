package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lintangpradipa/catatankita/internal/pkg/logger"
)

// PartnershipRepository resolves the user_id → partner_id pairing.
type PartnershipRepository struct {
	DB *pgxpool.Pool
}

// NewPartnershipRepository creates a new instance of PartnershipRepository.
func NewPartnershipRepository(db *pgxpool.Pool) *PartnershipRepository {
	return &PartnershipRepository{DB: db}
}

// GetPartnerID returns the configured partner for a user, or nil when the
// user has no pairing.
func (r *PartnershipRepository) GetPartnerID(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error) {
	sqlStr, args, err := squirrel.Select("partner_id").
		From("partnerships").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var partnerID uuid.UUID
	err = r.DB.QueryRow(ctx, sqlStr, args...).Scan(&partnerID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		logger.Error().Err(err).Str("userID", userID.String()).Msg("Error fetching partnership")
		return nil, err
	}
	return &partnerID, nil
}

// Pair records a two-way pairing between two users, replacing any existing
// rows for either of them.
func (r *PartnershipRepository) Pair(ctx context.Context, a, b uuid.UUID) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO partnerships (user_id, partner_id) VALUES ($1, $2), ($2, $1)
		ON CONFLICT (user_id) DO UPDATE SET partner_id = EXCLUDED.partner_id`, a, b)
	if err != nil {
		logger.Error().Err(err).Msg("Error writing partnership pairing")
		return err
	}
	return nil
}
