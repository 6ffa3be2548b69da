package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lintangpradipa/catatankita/internal/app/models"
	"github.com/lintangpradipa/catatankita/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPartnerResolver struct {
	partner *uuid.UUID
	err     error
}

func (s *stubPartnerResolver) GetPartnerID(_ context.Context, _ uuid.UUID) (*uuid.UUID, error) {
	return s.partner, s.err
}

func TestResolveScope_SelfAndPartner(t *testing.T) {
	requester := uuid.New()
	partner := uuid.New()
	svc := NewVisibilityService(&stubPartnerResolver{partner: &partner})

	scope, err := svc.ResolveScope(context.Background(), requester, nil, true)
	require.NoError(t, err)
	require.Len(t, scope.Members, 2)

	assert.Equal(t, requester, scope.Members[0].UserID)
	assert.True(t, scope.Members[0].IncludeTrashed)

	assert.Equal(t, partner, scope.Members[1].UserID)
	assert.False(t, scope.Members[1].IncludeTrashed, "partner trash must stay hidden")
}

func TestResolveScope_PartnerOwnerFilterExcludesTrash(t *testing.T) {
	requester := uuid.New()
	partner := uuid.New()
	svc := NewVisibilityService(&stubPartnerResolver{partner: &partner})

	scope, err := svc.ResolveScope(context.Background(), requester, &partner, true)
	require.NoError(t, err)
	require.Len(t, scope.Members, 1)
	assert.Equal(t, partner, scope.Members[0].UserID)
	assert.False(t, scope.Members[0].IncludeTrashed)
}

func TestResolveScope_SelfOwnerFilterIncludesTrash(t *testing.T) {
	requester := uuid.New()
	svc := NewVisibilityService(&stubPartnerResolver{})

	scope, err := svc.ResolveScope(context.Background(), requester, &requester, false)
	require.NoError(t, err)
	require.Len(t, scope.Members, 1)
	assert.Equal(t, requester, scope.Members[0].UserID)
	assert.True(t, scope.Members[0].IncludeTrashed)
}

func TestResolveScope_ForeignOwnerFilterYieldsEmptyScope(t *testing.T) {
	requester := uuid.New()
	partner := uuid.New()
	stranger := uuid.New()
	svc := NewVisibilityService(&stubPartnerResolver{partner: &partner})

	scope, err := svc.ResolveScope(context.Background(), requester, &stranger, true)
	require.NoError(t, err)
	assert.True(t, scope.Empty())
}

func TestResolveScope_WithoutPartnerFlagIsSelfOnly(t *testing.T) {
	requester := uuid.New()
	partner := uuid.New()
	svc := NewVisibilityService(&stubPartnerResolver{partner: &partner})

	scope, err := svc.ResolveScope(context.Background(), requester, nil, false)
	require.NoError(t, err)
	require.Len(t, scope.Members, 1)
	assert.Equal(t, requester, scope.Members[0].UserID)
}

func TestResolveScope_NoPairingDegradesToSelfOnly(t *testing.T) {
	requester := uuid.New()
	svc := NewVisibilityService(&stubPartnerResolver{})

	scope, err := svc.ResolveScope(context.Background(), requester, nil, true)
	require.NoError(t, err)
	require.Len(t, scope.Members, 1)
	assert.Equal(t, requester, scope.Members[0].UserID)
}

func TestResolveScope_LookupErrorPropagates(t *testing.T) {
	svc := NewVisibilityService(&stubPartnerResolver{err: errors.New("connection lost")})

	_, err := svc.ResolveScope(context.Background(), uuid.New(), nil, true)
	assert.Error(t, err)
}

func TestRequireOwner(t *testing.T) {
	owner := uuid.New()
	note := &models.ClassNote{OwnerUserID: owner}

	assert.NoError(t, RequireOwner(note, owner))

	err := RequireOwner(note, uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
