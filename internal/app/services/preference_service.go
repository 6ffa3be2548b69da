package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/lintangpradipa/catatankita/internal/app/models/dto"
	"github.com/lintangpradipa/catatankita/internal/app/repositories"
	"github.com/lintangpradipa/catatankita/internal/pkg/apperrors"
	"github.com/lintangpradipa/catatankita/internal/pkg/logger"
)

// PreferenceService manages the per-user academic calendar preference.
type PreferenceService interface {
	GetSemesterPreference(ctx context.Context, caller uuid.UUID) (*dto.SemesterPreferenceResponse, error)
	UpdateSemesterPreference(ctx context.Context, caller uuid.UUID, req *dto.SemesterPreferenceRequest) (*dto.SemesterPreferenceResponse, error)
}

// preferenceServiceImpl implements PreferenceService
type preferenceServiceImpl struct {
	prefRepo *repositories.PreferenceRepository
}

// NewPreferenceService creates a new PreferenceService
func NewPreferenceService(prefRepo *repositories.PreferenceRepository) PreferenceService {
	return &preferenceServiceImpl{prefRepo: prefRepo}
}

// GetSemesterPreference returns the caller's effective academic-year start
// month, defaulted when never set.
func (s *preferenceServiceImpl) GetSemesterPreference(ctx context.Context, caller uuid.UUID) (*dto.SemesterPreferenceResponse, error) {
	month, err := s.prefRepo.GetStartMonth(ctx, caller)
	if err != nil {
		return nil, err
	}
	return &dto.SemesterPreferenceResponse{YearStartMonth: month}, nil
}

// UpdateSemesterPreference stores a new academic-year start month.
func (s *preferenceServiceImpl) UpdateSemesterPreference(ctx context.Context, caller uuid.UUID, req *dto.SemesterPreferenceRequest) (*dto.SemesterPreferenceResponse, error) {
	if req.YearStartMonth < 1 || req.YearStartMonth > 12 {
		return nil, apperrors.NewValidationError("academic year start month must be within 1..12")
	}

	if err := s.prefRepo.Upsert(ctx, caller, req.YearStartMonth); err != nil {
		return nil, err
	}

	logger.Info().
		Str("userID", caller.String()).
		Int("startMonth", req.YearStartMonth).
		Msg("Semester preference updated")

	return &dto.SemesterPreferenceResponse{YearStartMonth: req.YearStartMonth}, nil
}
