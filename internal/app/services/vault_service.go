package services

import (
	"context"
	"fmt"
	"sort"
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
	"github.com/lintangpradipa/catatankita/internal/pkg/semester"
)

// GroupBySemester selects the all-semesters grouping mode of the vault view.
const GroupBySemester = "semester"

// VaultService defines the interface for the archive and trash view.
type VaultService interface {
	GetVault(ctx context.Context, caller uuid.UUID, filter *dto.VaultFilterRequest) (*dto.VaultViewResponse, error)
	GetInsight(ctx context.Context, caller uuid.UUID, filter *dto.VaultFilterRequest) (*insight.VaultInsight, error)
	GetSemesterBuckets(ctx context.Context, caller uuid.UUID, owner, subject string) ([]dto.SemesterBucket, error)
	ApplyAction(ctx context.Context, caller uuid.UUID, req *dto.VaultActionRequest) (*dto.NoteResponse, error)
}

// vaultServiceImpl implements VaultService
type vaultServiceImpl struct {
	database     *db.PostgresDB
	noteRepo     *repositories.NoteRepository
	revisionRepo *repositories.NoteRevisionRepository
	prefRepo     *repositories.PreferenceRepository
	auditRepo    *repositories.AuditRepository
	visibility   *auth.VisibilityService
	filters      *filterResolver
	retention    time.Duration
	fetchCap     int
}

// NewVaultService creates a new VaultService
func NewVaultService(
	database *db.PostgresDB,
	repos *repositories.Repositories,
	visibility *auth.VisibilityService,
	retention time.Duration,
	fetchCap int,
) VaultService {
	return &vaultServiceImpl{
		database:     database,
		noteRepo:     repos.NoteRepository,
		revisionRepo: repos.RevisionRepository,
		prefRepo:     repos.PreferenceRepository,
		auditRepo:    repos.AuditRepository,
		visibility:   visibility,
		filters: &filterResolver{
			visibility:     visibility,
			preferenceRepo: repos.PreferenceRepository,
		},
		retention: retention,
		fetchCap:  fetchCap,
	}
}

func (s *vaultServiceImpl) vaultParams(ctx context.Context, caller uuid.UUID, filter *dto.VaultFilterRequest) (repositories.NoteListParams, error) {
	return s.filters.resolve(ctx, caller, noteFilterInput{
		Q:                filter.Q,
		Owner:            filter.Owner,
		Subject:          filter.Subject,
		Status:           filter.Status,
		From:             filter.From,
		To:               filter.To,
		Semester:         filter.Semester,
		Keyword:          filter.Keyword,
		RequireQuestions: filter.RequireQuestions,
		WithPartner:      filter.WithPartner,
		Page:             filter.Page,
		Limit:            filter.Limit,
		DefaultStatuses:  []models.ArchiveStatus{models.StatusArchived, models.StatusTrashed},
		PinnedFirst:      true,
	}, time.Now())
}

// GetVault returns the paginated vault page grouped either by subject and
// ISO week (the default) or by semester.
func (s *vaultServiceImpl) GetVault(ctx context.Context, caller uuid.UUID, filter *dto.VaultFilterRequest) (*dto.VaultViewResponse, error) {
	if filter.GroupBy != "" && filter.GroupBy != GroupBySemester {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown grouping mode %q", filter.GroupBy))
	}

	params, err := s.vaultParams(ctx, caller, filter)
	if err != nil {
		return nil, err
	}

	notes, total, err := s.noteRepo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("error listing vault notes: %w", err)
	}

	out := &dto.VaultViewResponse{
		GroupBy:        filter.GroupBy,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.Limit),
	}

	if filter.GroupBy == GroupBySemester {
		startMonth, err := s.prefRepo.GetStartMonth(ctx, caller)
		if err != nil {
			return nil, err
		}
		out.SemesterGroups = groupBySemester(notes, startMonth)
	} else {
		out.SubjectGroups = groupBySubjectWeek(notes)
	}
	return out, nil
}

// GetInsight aggregates the filtered vault set into one insight summary.
// Aggregation runs over the whole filtered set up to the configured cap,
// independent of pagination.
func (s *vaultServiceImpl) GetInsight(ctx context.Context, caller uuid.UUID, filter *dto.VaultFilterRequest) (*insight.VaultInsight, error) {
	params, err := s.vaultParams(ctx, caller, filter)
	if err != nil {
		return nil, err
	}

	notes, err := s.noteRepo.ListCapped(ctx, params, s.fetchCap)
	if err != nil {
		return nil, fmt.Errorf("error fetching notes for insight: %w", err)
	}

	agg := insight.BuildVaultInsight(notes)
	return &agg, nil
}

// GetSemesterBuckets counts an owner's non-trashed notes per semester,
// newest semester first. The owner defaults to the caller; the partner is
// allowed through the usual visibility rules.
func (s *vaultServiceImpl) GetSemesterBuckets(ctx context.Context, caller uuid.UUID, owner, subject string) ([]dto.SemesterBucket, error) {
	target := caller
	if owner != "" {
		id, err := uuid.Parse(owner)
		if err != nil {
			return nil, apperrors.NewBadRequestError("malformed owner id")
		}
		target = id
	}

	if target != caller {
		scope, err := s.visibility.ResolveScope(ctx, caller, &target, true)
		if err != nil {
			return nil, err
		}
		if scope.Empty() {
			return []dto.SemesterBucket{}, nil
		}
	}

	startMonth, err := s.prefRepo.GetStartMonth(ctx, caller)
	if err != nil {
		return nil, err
	}

	dates, err := s.noteRepo.ListClassDates(ctx, target, subject)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	descriptors := map[string]*semester.Descriptor{}
	for _, d := range dates {
		desc := semester.Describe(d, startMonth)
		if desc == nil {
			continue
		}
		counts[desc.Key]++
		descriptors[desc.Key] = desc
	}

	buckets := make([]dto.SemesterBucket, 0, len(counts))
	for key, desc := range descriptors {
		buckets = append(buckets, dto.SemesterBucket{
			SemesterKey:   key,
			SemesterLabel: desc.Label,
			From:          desc.From,
			To:            desc.To,
			NoteCount:     counts[key],
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].From.After(buckets[j].From)
	})
	return buckets, nil
}

// ApplyAction runs one lifecycle action on a note the caller owns. The state
// change, its revision snapshot, and the audit entry land in one transaction.
// A purge deletes the row and returns no note.
func (s *vaultServiceImpl) ApplyAction(ctx context.Context, caller uuid.UUID, req *dto.VaultActionRequest) (*dto.NoteResponse, error) {
	noteID, err := uuid.Parse(req.NoteID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("malformed note id")
	}
	action, err := lifecycle.ParseAction(req.Action)
	if err != nil {
		return nil, err
	}

	var updated *models.ClassNote
	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		note, err := s.noteRepo.GetByIDForUpdate(ctx, tx, noteID)
		if err != nil {
			return err
		}
		if err := auth.RequireOwner(note, caller); err != nil {
			return err
		}
		if err := lifecycle.Apply(note, action, caller, time.Now(), s.retention); err != nil {
			return err
		}

		if action == lifecycle.ActionPurge {
			// Revisions cascade away with the row; the audit trail stays.
			if err := s.noteRepo.Delete(ctx, tx, note.ID); err != nil {
				return err
			}
			return s.auditRepo.Insert(ctx, tx, note.ID, caller, string(action), "note purged")
		}

		if err := s.noteRepo.UpdateLifecycle(ctx, tx, note); err != nil {
			return err
		}
		if _, err := s.revisionRepo.Append(ctx, tx, note, action.ChangeReason()); err != nil {
			return err
		}
		if err := s.auditRepo.Insert(ctx, tx, note.ID, caller, string(action),
			fmt.Sprintf("note moved to %s", note.ArchiveStatus)); err != nil {
			return err
		}

		updated = note
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("noteID", noteID.String()).
		Str("action", string(action)).
		Msg("Vault action applied")

	if updated == nil {
		return nil, nil
	}
	resp := dto.NewNoteResponse(updated)
	return &resp, nil
}

// groupBySubjectWeek groups one page of notes by subject, then by ISO week
// inside each subject, newest week first. Subjects are ordered by their most
// recent note.
func groupBySubjectWeek(notes []*models.ClassNote) []dto.SubjectGroup {
	type weekKey struct {
		subject string
		monday  time.Time
	}

	subjectOrder := []string{}
	weekOrder := map[string][]time.Time{}
	grouped := map[weekKey][]dto.NoteResponse{}

	for _, n := range notes {
		monday := helpers.ISOWeekStart(n.ClassDate)
		key := weekKey{subject: n.Subject, monday: monday}

		if _, seen := weekOrder[n.Subject]; !seen {
			subjectOrder = append(subjectOrder, n.Subject)
		}
		if _, seen := grouped[key]; !seen {
			weekOrder[n.Subject] = append(weekOrder[n.Subject], monday)
		}
		grouped[key] = append(grouped[key], dto.NewNoteResponse(n))
	}

	groups := make([]dto.SubjectGroup, 0, len(subjectOrder))
	for _, subject := range subjectOrder {
		mondays := weekOrder[subject]
		sort.Slice(mondays, func(i, j int) bool { return mondays[i].After(mondays[j]) })

		weeks := make([]dto.WeekGroup, 0, len(mondays))
		for _, monday := range mondays {
			weeks = append(weeks, dto.WeekGroup{
				WeekStart: monday.Format(helpers.DateLayout),
				WeekEnd:   monday.AddDate(0, 0, 6).Format(helpers.DateLayout),
				Notes:     grouped[weekKey{subject: subject, monday: monday}],
			})
		}
		groups = append(groups, dto.SubjectGroup{Subject: subject, Weeks: weeks})
	}
	return groups
}

// groupBySemester groups one page of notes by semester key, newest first.
// Notes falling outside the supported date range land in no group.
func groupBySemester(notes []*models.ClassNote, startMonth int) []dto.SemesterGroup {
	order := []string{}
	byKey := map[string]*dto.SemesterGroup{}

	for _, n := range notes {
		desc := semester.Describe(n.ClassDate, startMonth)
		if desc == nil {
			continue
		}
		group, seen := byKey[desc.Key]
		if !seen {
			group = &dto.SemesterGroup{
				SemesterKey:   desc.Key,
				SemesterLabel: desc.Label,
				From:          desc.From,
				To:            desc.To,
			}
			byKey[desc.Key] = group
			order = append(order, desc.Key)
		}
		group.Notes = append(group.Notes, dto.NewNoteResponse(n))
	}

	sort.Slice(order, func(i, j int) bool {
		return byKey[order[i]].From.After(byKey[order[j]].From)
	})

	groups := make([]dto.SemesterGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, *byKey[key])
	}
	return groups
}
