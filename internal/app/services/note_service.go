package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lintangpradipa/catatankita/internal/app/auth"
	"github.com/lintangpradipa/catatankita/internal/app/insight"
	"github.com/lintangpradipa/catatankita/internal/app/lifecycle"
	"github.com/lintangpradipa/catatankita/internal/app/models"
	"github.com/lintangpradipa/catatankita/internal/app/models/dto"
	"github.com/lintangpradipa/catatankita/internal/app/repositories"
	"github.com/lintangpradipa/catatankita/internal/db"
	"github.com/lintangpradipa/catatankita/internal/pkg/apperrors"
	"github.com/lintangpradipa/catatankita/internal/pkg/helpers"
	"github.com/lintangpradipa/catatankita/internal/pkg/logger"
)

// NoteService defines the interface for class note operations
type NoteService interface {
	SaveNote(ctx context.Context, caller uuid.UUID, req *dto.SaveNoteRequest) (*dto.NoteResponse, error)
	GetNote(ctx context.Context, caller, noteID uuid.UUID) (*dto.NoteResponse, error)
	ListNotes(ctx context.Context, caller uuid.UUID, filter *dto.NoteFilterRequest) (*dto.NoteListResponse, error)
	SessionsForDate(ctx context.Context, caller uuid.UUID, dateStr string) (*dto.TodaySessionsResponse, error)
	GetRevisions(ctx context.Context, caller, noteID uuid.UUID) ([]dto.RevisionResponse, error)
	RestoreRevision(ctx context.Context, caller, noteID uuid.UUID, versionNo int) (*dto.NoteResponse, error)
	GetAuditTrail(ctx context.Context, caller, noteID uuid.UUID) ([]dto.AuditEntryResponse, error)
}

// noteServiceImpl implements NoteService
type noteServiceImpl struct {
	database     *db.PostgresDB
	noteRepo     *repositories.NoteRepository
	revisionRepo *repositories.NoteRevisionRepository
	scheduleRepo *repositories.ScheduleRepository
	workloadRepo *repositories.WorkloadRepository
	auditRepo    *repositories.AuditRepository
	visibility   *auth.VisibilityService
	filters      *filterResolver
	historyLimit int
}

// NewNoteService creates a new NoteService
func NewNoteService(
	database *db.PostgresDB,
	repos *repositories.Repositories,
	visibility *auth.VisibilityService,
	historyLimit int,
) NoteService {
	return &noteServiceImpl{
		database:     database,
		noteRepo:     repos.NoteRepository,
		revisionRepo: repos.RevisionRepository,
		scheduleRepo: repos.ScheduleRepository,
		workloadRepo: repos.WorkloadRepository,
		auditRepo:    repos.AuditRepository,
		visibility:   visibility,
		filters: &filterResolver{
			visibility:     visibility,
			preferenceRepo: repos.PreferenceRepository,
		},
		historyLimit: historyLimit,
	}
}

// SaveNote upserts the caller's note for one (schedule, class date) pair.
// Every successful save lands the note, a revision snapshot tagged "save",
// and an audit entry in one transaction.
func (s *noteServiceImpl) SaveNote(ctx context.Context, caller uuid.UUID, req *dto.SaveNoteRequest) (*dto.NoteResponse, error) {
	scheduleID, err := uuid.Parse(req.ScheduleID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("malformed schedule id")
	}
	classDate, err := time.Parse(helpers.DateLayout, req.ClassDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("malformed class date, expected YYYY-MM-DD")
	}

	session, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if session.OwnerUserID != caller {
		return nil, apperrors.NewForbiddenError("notes can only be written for your own schedule sessions")
	}

	existing, err := s.noteRepo.GetByKey(ctx, caller, scheduleID, classDate)
	if err != nil && err != apperrors.ErrNoteNotFound {
		return nil, err
	}
	if existing != nil && existing.InTrash() {
		return nil, apperrors.NewStateConflictError("note is in the trash, restore it before editing")
	}

	note := &models.ClassNote{
		ID:          uuid.New(),
		OwnerUserID: caller,
		ScheduleID:  scheduleID,
		ClassDate:   classDate,
		Subject:     session.Subject,
		KeyPoints:   req.KeyPoints,
		ActionItems: req.ActionItems,
		Questions:   req.Questions,
		FreeText:    req.FreeText,
		MoodFocus:   req.MoodFocus,
		UpdatedBy:   caller,
	}
	if req.Confidence != nil {
		c := models.Confidence(*req.Confidence)
		if !c.Valid() {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown confidence level %q", *req.Confidence))
		}
		note.Confidence = &c
	}

	workload, err := s.workloadRepo.Snapshot(ctx, caller, session.Subject, time.Now())
	if err != nil {
		return nil, err
	}
	insight.BuildSmartLayer(note, workload)

	var stored *models.ClassNote
	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		stored, err = s.noteRepo.Upsert(ctx, tx, note)
		if err != nil {
			return err
		}
		if _, err := s.revisionRepo.Append(ctx, tx, stored, models.ChangeReasonSave); err != nil {
			return err
		}
		return s.auditRepo.Insert(ctx, tx, stored.ID, caller, models.ChangeReasonSave,
			fmt.Sprintf("saved note for %s on %s", stored.Subject, req.ClassDate))
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("noteID", stored.ID.String()).
		Str("subject", stored.Subject).
		Int("qualityScore", stored.QualityScore).
		Msg("Class note saved")

	resp := dto.NewNoteResponse(stored)
	return &resp, nil
}

// GetNote fetches one note visible to the caller. A partner's trashed note
// is reported as missing rather than forbidden.
func (s *noteServiceImpl) GetNote(ctx context.Context, caller, noteID uuid.UUID) (*dto.NoteResponse, error) {
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if err := s.checkReadable(ctx, caller, note); err != nil {
		return nil, err
	}

	resp := dto.NewNoteResponse(note)
	return &resp, nil
}

// ListNotes returns the day-to-day list: active and archived notes, filtered
// by the explicit parameters merged with whatever the natural-language text
// in q parsed to.
func (s *noteServiceImpl) ListNotes(ctx context.Context, caller uuid.UUID, filter *dto.NoteFilterRequest) (*dto.NoteListResponse, error) {
	params, err := s.filters.resolve(ctx, caller, noteFilterInput{
		Q:                filter.Q,
		Owner:            filter.Owner,
		ScheduleID:       filter.ScheduleID,
		Subject:          filter.Subject,
		Status:           filter.Status,
		From:             filter.From,
		To:               filter.To,
		Semester:         filter.Semester,
		Keyword:          filter.Keyword,
		RequireQuestions: filter.RequireQuestions,
		WithPartner:      filter.WithPartner,
		SortBy:           filter.SortBy,
		SortOrder:        filter.SortOrder,
		Page:             filter.Page,
		Limit:            filter.Limit,
		DefaultStatuses:  []models.ArchiveStatus{models.StatusActive, models.StatusArchived},
		PinnedFirst:      true,
	}, time.Now())
	if err != nil {
		return nil, err
	}

	notes, total, err := s.noteRepo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}

	responses := make([]dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		responses = append(responses, dto.NewNoteResponse(n))
	}

	return &dto.NoteListResponse{
		Notes:          responses,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.Limit),
	}, nil
}

// SessionsForDate lists the caller's schedule sessions on one date, each
// paired with the status of the note for that occurrence. An empty dateStr
// means today.
func (s *noteServiceImpl) SessionsForDate(ctx context.Context, caller uuid.UUID, dateStr string) (*dto.TodaySessionsResponse, error) {
	date := helpers.StartOfDay(time.Now())
	if dateStr != "" {
		parsed, err := time.Parse(helpers.DateLayout, dateStr)
		if err != nil {
			return nil, apperrors.NewBadRequestError("malformed date, expected YYYY-MM-DD")
		}
		date = parsed
	}

	sessions, err := s.scheduleRepo.ListByOwnerWeekday(ctx, caller, int(date.Weekday()))
	if err != nil {
		return nil, err
	}

	out := &dto.TodaySessionsResponse{
		Date:     date.Format(helpers.DateLayout),
		Sessions: make([]dto.SessionWithNote, 0, len(sessions)),
	}
	for _, session := range sessions {
		entry := dto.SessionWithNote{
			SessionID:  session.ID.String(),
			Subject:    session.Subject,
			Room:       session.Room,
			Lecturer:   session.Lecturer,
			StartTime:  session.StartTime,
			EndTime:    session.EndTime,
			Ended:      session.EndedBy(date, time.Now()),
			NoteStatus: "none",
		}

		note, err := s.noteRepo.GetByKey(ctx, caller, session.ID, date)
		if err != nil && err != apperrors.ErrNoteNotFound {
			return nil, err
		}
		if note != nil {
			id := note.ID.String()
			entry.NoteID = &id
			entry.NoteStatus = string(note.ArchiveStatus)
			entry.Completed = note.IsMinimumCompleted
		}
		out.Sessions = append(out.Sessions, entry)
	}
	return out, nil
}

// GetRevisions returns a note's history newest-first, capped at the
// configured limit.
func (s *noteServiceImpl) GetRevisions(ctx context.Context, caller, noteID uuid.UUID) ([]dto.RevisionResponse, error) {
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if err := s.checkReadable(ctx, caller, note); err != nil {
		return nil, err
	}

	revisions, err := s.revisionRepo.ListByNote(ctx, noteID, s.historyLimit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.RevisionResponse, 0, len(revisions))
	for _, rev := range revisions {
		responses = append(responses, dto.NewRevisionResponse(rev))
	}
	return responses, nil
}

// GetAuditTrail returns a note's audit entries newest-first. Only the owner
// can read the trail; partners see the note, not who touched it when.
func (s *noteServiceImpl) GetAuditTrail(ctx context.Context, caller, noteID uuid.UUID) ([]dto.AuditEntryResponse, error) {
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwner(note, caller); err != nil {
		return nil, err
	}

	entries, err := s.auditRepo.ListByNote(ctx, noteID, s.historyLimit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, dto.NewAuditEntryResponse(e))
	}
	return responses, nil
}

// RestoreRevision copies an old revision's content back onto the live note.
// The note returns to the active state, its smart layer is recomputed, and
// the restore itself appends a new revision; history is never rewritten.
func (s *noteServiceImpl) RestoreRevision(ctx context.Context, caller, noteID uuid.UUID, versionNo int) (*dto.NoteResponse, error) {
	if versionNo < 1 {
		return nil, apperrors.NewBadRequestError("version number must be positive")
	}

	// Fetched outside the transaction; the subject cannot change under us.
	current, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwner(current, caller); err != nil {
		return nil, err
	}
	workload, err := s.workloadRepo.Snapshot(ctx, caller, current.Subject, time.Now())
	if err != nil {
		return nil, err
	}

	var restored *models.ClassNote
	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		note, err := s.noteRepo.GetByIDForUpdate(ctx, tx, noteID)
		if err != nil {
			return err
		}
		if err := auth.RequireOwner(note, caller); err != nil {
			return err
		}

		rev, err := s.revisionRepo.GetByVersion(ctx, tx, noteID, versionNo)
		if err != nil {
			if err == apperrors.ErrRevisionNotFound {
				return apperrors.NewNotFoundError(apperrors.ErrRevisionNotFound,
					fmt.Sprintf("revision %d does not exist for this note", versionNo))
			}
			return err
		}

		note.KeyPoints = rev.KeyPoints
		note.ActionItems = rev.ActionItems
		note.Questions = rev.Questions
		note.FreeText = rev.FreeText
		note.MoodFocus = rev.MoodFocus
		note.Confidence = rev.Confidence

		insight.BuildSmartLayer(note, workload)
		lifecycle.ResetToActive(note)
		note.UpdatedBy = caller
		note.UpdatedAt = time.Now()

		if err := s.noteRepo.UpdateLifecycle(ctx, tx, note); err != nil {
			return err
		}
		if _, err := s.revisionRepo.Append(ctx, tx, note, models.ChangeReasonRestore); err != nil {
			return err
		}
		if err := s.auditRepo.Insert(ctx, tx, note.ID, caller, models.ChangeReasonRestore,
			fmt.Sprintf("restored revision %d", versionNo)); err != nil {
			return err
		}

		restored = note
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("noteID", noteID.String()).
		Int("versionNo", versionNo).
		Msg("Note revision restored")

	resp := dto.NewNoteResponse(restored)
	return &resp, nil
}

// checkReadable enforces the read-visibility rules on a single fetched note.
// Invisible notes come back as not-found so their existence is not leaked.
func (s *noteServiceImpl) checkReadable(ctx context.Context, caller uuid.UUID, note *models.ClassNote) error {
	if note.OwnerUserID == caller {
		return nil
	}

	scope, err := s.visibility.ResolveScope(ctx, caller, &note.OwnerUserID, true)
	if err != nil {
		return err
	}
	if scope.Empty() || note.InTrash() {
		return apperrors.ErrNoteNotFound
	}
	return nil
}
