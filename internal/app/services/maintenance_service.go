package services

import (
	"context"
	"time"

	"github.com/lintangpradipa/catatankita/internal/app/models/dto"
	"github.com/lintangpradipa/catatankita/internal/app/repositories"
	"github.com/lintangpradipa/catatankita/internal/pkg/logger"
)

// MaintenanceService runs the externally-triggered background sweeps.
type MaintenanceService interface {
	RunSweeps(ctx context.Context) (*dto.MaintenanceResult, error)
}

// maintenanceServiceImpl implements MaintenanceService
type maintenanceServiceImpl struct {
	noteRepo *repositories.NoteRepository
}

// NewMaintenanceService creates a new MaintenanceService
func NewMaintenanceService(noteRepo *repositories.NoteRepository) MaintenanceService {
	return &maintenanceServiceImpl{noteRepo: noteRepo}
}

// RunSweeps archives finished, minimum-completed notes and purges trashed
// notes past their retention window. Both sweeps are conditional updates,
// so re-running them is a no-op and concurrent runs are safe.
func (s *maintenanceServiceImpl) RunSweeps(ctx context.Context) (*dto.MaintenanceResult, error) {
	now := time.Now()

	archived, err := s.noteRepo.AutoArchiveSweep(ctx, now)
	if err != nil {
		return nil, err
	}

	purged, err := s.noteRepo.PurgeSweep(ctx, now)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("archived", archived).
		Int64("purged", purged).
		Msg("Maintenance sweeps completed")

	return &dto.MaintenanceResult{
		ArchivedCount: archived,
		PurgedCount:   purged,
	}, nil
}
