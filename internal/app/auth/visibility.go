// Package auth decides what a caller may see and change inside a shared
// vault. Read scope comes from the partnership pairing; write access is
// always owner-only.
package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/lintangpradipa/catatankita/internal/app/models"
	"github.com/lintangpradipa/catatankita/internal/pkg/apperrors"
	"github.com/lintangpradipa/catatankita/internal/pkg/logger"
)

// PartnerResolver looks up the configured partner for a user. A nil result
// with no error means the user has no pairing.
type PartnerResolver interface {
	GetPartnerID(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error)
}

// ScopeMember is one owner whose notes are readable, with a flag for
// whether their trashed notes are included. Trash is private to its owner,
// so the flag is only ever true for the requester themselves.
type ScopeMember struct {
	UserID         uuid.UUID
	IncludeTrashed bool
}

// Scope is the set of owners a query may touch. An empty scope is a valid
// result: queries against it return no rows rather than an error.
type Scope struct {
	Members []ScopeMember
}

// Empty reports whether the scope covers no owners at all.
func (s Scope) Empty() bool {
	return len(s.Members) == 0
}

// VisibilityService resolves the readable scope for a requester in a
// two-party partnership.
type VisibilityService struct {
	partnerships PartnerResolver
}

// NewVisibilityService creates a new VisibilityService
func NewVisibilityService(partnerships PartnerResolver) *VisibilityService {
	return &VisibilityService{partnerships: partnerships}
}

// ResolveScope computes the owners visible to requester. An explicit owner
// filter that matches neither the requester nor (with withPartner) their
// partner yields an empty scope, not an error.
func (s *VisibilityService) ResolveScope(ctx context.Context, requester uuid.UUID, ownerFilter *uuid.UUID, withPartner bool) (Scope, error) {
	var partner *uuid.UUID
	if withPartner {
		p, err := s.partnerships.GetPartnerID(ctx, requester)
		if err != nil {
			logger.Error().Err(err).Str("userID", requester.String()).Msg("Error resolving partner")
			return Scope{}, err
		}
		if p == nil {
			logger.Warn().Str("userID", requester.String()).Msg("No partner configured, resolving self-only scope")
		}
		partner = p
	}

	if ownerFilter != nil {
		switch {
		case *ownerFilter == requester:
			return Scope{Members: []ScopeMember{{UserID: requester, IncludeTrashed: true}}}, nil
		case partner != nil && *ownerFilter == *partner:
			return Scope{Members: []ScopeMember{{UserID: *partner, IncludeTrashed: false}}}, nil
		default:
			return Scope{}, nil
		}
	}

	scope := Scope{Members: []ScopeMember{{UserID: requester, IncludeTrashed: true}}}
	if partner != nil {
		scope.Members = append(scope.Members, ScopeMember{UserID: *partner, IncludeTrashed: false})
	}
	return scope, nil
}

// RequireOwner rejects any mutating action by someone other than the note's
// owner, independent of the read-visibility scope.
func RequireOwner(note *models.ClassNote, actor uuid.UUID) error {
	if note.OwnerUserID != actor {
		return apperrors.NewForbiddenError("only the note owner can perform this action")
	}
	return nil
}
