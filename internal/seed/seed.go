// Package seed writes the configured two-user partnership at startup so the
// visibility resolver is data-driven rather than hardcoded.
package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	appRepos "github.com/lintangpradipa/catatankita/internal/app/repositories"
	"github.com/lintangpradipa/catatankita/internal/config"
	"github.com/rs/zerolog"
)

// CreatePartnership pairs the two configured users, replacing any previous
// pairing. A blank configuration is allowed; the service then serves
// self-only scopes until a pairing is seeded.
func CreatePartnership(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	if cfg.Partnership.UserA == "" || cfg.Partnership.UserB == "" {
		lgr.Warn().Msg("No partnership configured, partner visibility disabled until seeded")
		return nil
	}

	userA, err := uuid.Parse(cfg.Partnership.UserA)
	if err != nil {
		return fmt.Errorf("invalid partnership user A: %w", err)
	}
	userB, err := uuid.Parse(cfg.Partnership.UserB)
	if err != nil {
		return fmt.Errorf("invalid partnership user B: %w", err)
	}
	if userA == userB {
		return fmt.Errorf("partnership requires two distinct users")
	}

	partnershipRepo := appRepos.NewPartnershipRepository(dbPool)
	if err := partnershipRepo.Pair(ctx, userA, userB); err != nil {
		return fmt.Errorf("failed to seed partnership: %w", err)
	}

	lgr.Info().
		Str("userA", userA.String()).
		Str("userB", userB.String()).
		Msg("Partnership pairing seeded")
	return nil
}
