package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lintangpradipa/catatankita/internal/app/auth"
	"github.com/lintangpradipa/catatankita/internal/app/models"
	"github.com/lintangpradipa/catatankita/internal/app/repositories"
	"github.com/lintangpradipa/catatankita/internal/pkg/apperrors"
	"github.com/lintangpradipa/catatankita/internal/pkg/helpers"
	"github.com/lintangpradipa/catatankita/internal/pkg/naturalquery"
	"github.com/lintangpradipa/catatankita/internal/pkg/semester"
)

// noteFilterInput is the normalized filter shape shared by the list and
// vault endpoints.
type noteFilterInput struct {
	Q                string
	Owner            string
	ScheduleID       string
	Subject          string
	Status           string
	From             string
	To               string
	Semester         string
	Keyword          string
	RequireQuestions bool
	WithPartner      bool
	SortBy           string
	SortOrder        string
	Page             int
	Limit            int

	// DefaultStatuses applies when no explicit status filter is given.
	DefaultStatuses []models.ArchiveStatus
	PinnedFirst     bool
}

// filterResolver turns wire-level filters into repository query parameters.
// Precedence for the date range: explicit from/to, then the semester key,
// then whatever the natural-language text parsed to.
type filterResolver struct {
	visibility     *auth.VisibilityService
	preferenceRepo *repositories.PreferenceRepository
}

func (r *filterResolver) resolve(ctx context.Context, caller uuid.UUID, f noteFilterInput, now time.Time) (repositories.NoteListParams, error) {
	var p repositories.NoteListParams

	var patch naturalquery.Patch
	if f.Q != "" {
		patch = naturalquery.Parse(f.Q, now)
	}

	p.Subject = f.Subject
	if p.Subject == "" {
		p.Subject = patch.Subject
	}
	p.Keyword = f.Keyword
	if p.Keyword == "" {
		p.Keyword = patch.Keyword
	}
	p.RequireQuestions = f.RequireQuestions || patch.RequireQuestions

	from, to, err := parseDateRange(f.From, f.To)
	if err != nil {
		return p, err
	}
	if from == nil && to == nil && f.Semester != "" {
		startMonth, err := r.preferenceRepo.GetStartMonth(ctx, caller)
		if err != nil {
			return p, err
		}
		desc, err := semester.FromKey(f.Semester, startMonth)
		if err != nil {
			return p, apperrors.NewBadRequestError(err.Error())
		}
		from, to = &desc.From, &desc.To
	}
	if from == nil && to == nil {
		from, to = patch.From, patch.To
	}
	p.From, p.To = from, to

	if f.Status != "" {
		status := models.ArchiveStatus(f.Status)
		if !status.Valid() {
			return p, apperrors.NewBadRequestError(fmt.Sprintf("unknown archive status %q", f.Status))
		}
		p.Statuses = []models.ArchiveStatus{status}
	} else {
		p.Statuses = f.DefaultStatuses
	}

	if f.ScheduleID != "" {
		id, err := uuid.Parse(f.ScheduleID)
		if err != nil {
			return p, apperrors.NewBadRequestError("malformed schedule id")
		}
		p.ScheduleID = &id
	}

	var ownerFilter *uuid.UUID
	if f.Owner != "" {
		id, err := uuid.Parse(f.Owner)
		if err != nil {
			return p, apperrors.NewBadRequestError("malformed owner id")
		}
		ownerFilter = &id
	}

	scope, err := r.visibility.ResolveScope(ctx, caller, ownerFilter, f.WithPartner)
	if err != nil {
		return p, err
	}
	for _, m := range scope.Members {
		p.Scope = append(p.Scope, repositories.ScopeFilter{
			OwnerID:        m.UserID,
			IncludeTrashed: m.IncludeTrashed,
		})
	}

	p.SortBy = f.SortBy
	p.SortOrder = f.SortOrder
	p.PinnedFirst = f.PinnedFirst
	p.Page = f.Page
	p.Size = f.Limit
	return p, nil
}

func parseDateRange(fromStr, toStr string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if fromStr != "" {
		t, err := time.Parse(helpers.DateLayout, fromStr)
		if err != nil {
			return nil, nil, apperrors.NewBadRequestError("malformed from date, expected YYYY-MM-DD")
		}
		from = &t
	}
	if toStr != "" {
		t, err := time.Parse(helpers.DateLayout, toStr)
		if err != nil {
			return nil, nil, apperrors.NewBadRequestError("malformed to date, expected YYYY-MM-DD")
		}
		// Make the upper bound inclusive of the whole day.
		end := t.AddDate(0, 0, 1).Add(-time.Second)
		to = &end
	}
	return from, to, nil
}
