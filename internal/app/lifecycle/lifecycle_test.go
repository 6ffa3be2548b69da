package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lintangpradipa/catatankita/internal/app/models"
	"github.com/lintangpradipa/catatankita/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	actor = uuid.New()
	now   = time.Date(2025, time.September, 1, 12, 0, 0, 0, time.UTC)
)

func activeNote() *models.ClassNote {
	return &models.ClassNote{
		ID:            uuid.New(),
		OwnerUserID:   actor,
		ArchiveStatus: models.StatusActive,
	}
}

func TestParseAction(t *testing.T) {
	for _, name := range []string{"archive", "unarchive", "trash", "restore", "purge", "pin", "unpin"} {
		a, err := ParseAction(name)
		require.NoError(t, err, name)
		assert.Equal(t, Action(name), a)
	}

	_, err := ParseAction("shred")
	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
}

func TestApply_Archive(t *testing.T) {
	note := activeNote()

	err := Apply(note, ActionArchive, actor, now, 0)
	require.NoError(t, err)

	assert.Equal(t, models.StatusArchived, note.ArchiveStatus)
	require.NotNil(t, note.ArchivedAt)
	assert.Equal(t, now, *note.ArchivedAt)
	assert.Equal(t, actor, note.UpdatedBy)
}

func TestApply_ArchiveRequiresActive(t *testing.T) {
	note := activeNote()
	note.ArchiveStatus = models.StatusArchived

	err := Apply(note, ActionArchive, actor, now, 0)
	assert.True(t, errors.Is(err, apperrors.ErrStateConflict))
}

func TestApply_Unarchive(t *testing.T) {
	note := activeNote()
	require.NoError(t, Apply(note, ActionArchive, actor, now, 0))
	require.NoError(t, Apply(note, ActionUnarchive, actor, now, 0))

	assert.Equal(t, models.StatusActive, note.ArchiveStatus)
	assert.Nil(t, note.ArchivedAt)
}

func TestApply_TrashSetsRetention(t *testing.T) {
	note := activeNote()

	err := Apply(note, ActionTrash, actor, now, 0)
	require.NoError(t, err)

	assert.Equal(t, models.StatusTrashed, note.ArchiveStatus)
	require.NotNil(t, note.DeletedAt)
	require.NotNil(t, note.DeletedBy)
	require.NotNil(t, note.PurgeAfter)
	assert.Equal(t, actor, *note.DeletedBy)
	assert.Equal(t, now.Add(30*24*time.Hour), *note.PurgeAfter)
	// Trashing an active note also stamps archived_at.
	require.NotNil(t, note.ArchivedAt)
}

func TestApply_TrashCustomRetention(t *testing.T) {
	note := activeNote()

	err := Apply(note, ActionTrash, actor, now, 7*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, now.Add(7*24*time.Hour), *note.PurgeAfter)
}

func TestApply_TrashFromArchivedKeepsArchivedAt(t *testing.T) {
	note := activeNote()
	earlier := now.Add(-48 * time.Hour)
	note.ArchiveStatus = models.StatusArchived
	note.ArchivedAt = &earlier

	require.NoError(t, Apply(note, ActionTrash, actor, now, 0))
	assert.Equal(t, earlier, *note.ArchivedAt)
}

func TestApply_TrashRejectedWhenAlreadyTrashed(t *testing.T) {
	note := activeNote()
	require.NoError(t, Apply(note, ActionTrash, actor, now, 0))

	err := Apply(note, ActionTrash, actor, now, 0)
	assert.True(t, errors.Is(err, apperrors.ErrStateConflict))
}

func TestApply_RestoreClearsTrashFields(t *testing.T) {
	note := activeNote()
	require.NoError(t, Apply(note, ActionTrash, actor, now, 0))
	require.NoError(t, Apply(note, ActionRestore, actor, now, 0))

	assert.Equal(t, models.StatusActive, note.ArchiveStatus)
	assert.Nil(t, note.DeletedAt)
	assert.Nil(t, note.DeletedBy)
	assert.Nil(t, note.PurgeAfter)
	assert.Nil(t, note.ArchivedAt)
}

func TestApply_RestoreRequiresTrashed(t *testing.T) {
	note := activeNote()
	err := Apply(note, ActionRestore, actor, now, 0)
	assert.True(t, errors.Is(err, apperrors.ErrStateConflict))
}

// TestApply_PurgeRejectedOutsideTrash verifies the rejected note is left
// untouched.
func TestApply_PurgeRejectedOutsideTrash(t *testing.T) {
	for _, status := range []models.ArchiveStatus{models.StatusActive, models.StatusArchived} {
		note := activeNote()
		note.ArchiveStatus = status
		before := *note

		err := Apply(note, ActionPurge, actor, now, 0)
		assert.True(t, errors.Is(err, apperrors.ErrStateConflict), "status %s", status)
		assert.Equal(t, before, *note, "note mutated on rejected purge")
	}
}

func TestApply_PurgeAllowedFromTrash(t *testing.T) {
	note := activeNote()
	require.NoError(t, Apply(note, ActionTrash, actor, now, 0))

	err := Apply(note, ActionPurge, actor, now, 0)
	require.NoError(t, err)
	// Purge itself mutates nothing; deletion is the caller's job.
	assert.Equal(t, models.StatusTrashed, note.ArchiveStatus)
}

func TestApply_PinInAnyState(t *testing.T) {
	note := activeNote()
	require.NoError(t, Apply(note, ActionTrash, actor, now, 0))

	require.NoError(t, Apply(note, ActionPin, actor, now, 0))
	assert.True(t, note.Pinned)
	assert.Equal(t, models.StatusTrashed, note.ArchiveStatus)

	require.NoError(t, Apply(note, ActionUnpin, actor, now, 0))
	assert.False(t, note.Pinned)
}

func TestChangeReason(t *testing.T) {
	assert.Equal(t, models.ChangeReasonArchive, ActionArchive.ChangeReason())
	assert.Equal(t, models.ChangeReasonUntrash, ActionRestore.ChangeReason())
	assert.Equal(t, models.ChangeReasonPin, ActionPin.ChangeReason())
}

func TestResetToActive(t *testing.T) {
	note := activeNote()
	require.NoError(t, Apply(note, ActionTrash, actor, now, 0))

	ResetToActive(note)

	assert.Equal(t, models.StatusActive, note.ArchiveStatus)
	assert.Nil(t, note.ArchivedAt)
	assert.Nil(t, note.DeletedAt)
	assert.Nil(t, note.DeletedBy)
	assert.Nil(t, note.PurgeAfter)
}
