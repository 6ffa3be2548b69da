// Package lifecycle holds the pure transition rules for the note state
// machine: active, archived, trashed, and the terminal purged state (row
// removed). Persistence and transactions stay in the service layer.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lintangpradipa/catatankita/internal/app/models"
	"github.com/lintangpradipa/catatankita/internal/pkg/apperrors"
)

// Action is a manual vault lifecycle action.
type Action string

const (
	ActionArchive   Action = "archive"
	ActionUnarchive Action = "unarchive"
	ActionTrash     Action = "trash"
	ActionRestore   Action = "restore"
	ActionPurge     Action = "purge"
	ActionPin       Action = "pin"
	ActionUnpin     Action = "unpin"
)

// DefaultTrashRetention is how long a trashed note survives before the purge
// sweep may remove it.
const DefaultTrashRetention = 30 * 24 * time.Hour

// ParseAction validates a wire-format action name.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	switch a {
	case ActionArchive, ActionUnarchive, ActionTrash, ActionRestore, ActionPurge, ActionPin, ActionUnpin:
		return a, nil
	}
	return "", apperrors.NewBadRequestError(fmt.Sprintf("unknown vault action %q", s))
}

// ChangeReason maps an action to the change reason recorded on the revision
// snapshot written alongside it.
func (a Action) ChangeReason() string {
	switch a {
	case ActionArchive:
		return models.ChangeReasonArchive
	case ActionUnarchive:
		return models.ChangeReasonUnarchive
	case ActionTrash:
		return models.ChangeReasonTrash
	case ActionRestore:
		return models.ChangeReasonUntrash
	case ActionPin:
		return models.ChangeReasonPin
	case ActionUnpin:
		return models.ChangeReasonUnpin
	default:
		return string(a)
	}
}

// Apply mutates note in place according to the transition table. It returns
// an ErrStateConflict when the action is not valid from the note's current
// state. ActionPurge never mutates; a nil error means the caller may delete
// the row.
func Apply(note *models.ClassNote, action Action, actor uuid.UUID, now time.Time, retention time.Duration) error {
	if retention <= 0 {
		retention = DefaultTrashRetention
	}

	switch action {
	case ActionArchive:
		if note.ArchiveStatus != models.StatusActive {
			return conflict(note, action)
		}
		note.ArchiveStatus = models.StatusArchived
		archivedAt := now
		note.ArchivedAt = &archivedAt

	case ActionUnarchive:
		if note.ArchiveStatus != models.StatusArchived {
			return conflict(note, action)
		}
		note.ArchiveStatus = models.StatusActive
		note.ArchivedAt = nil

	case ActionTrash:
		if note.ArchiveStatus != models.StatusActive && note.ArchiveStatus != models.StatusArchived {
			return conflict(note, action)
		}
		note.ArchiveStatus = models.StatusTrashed
		deletedAt := now
		purgeAfter := now.Add(retention)
		note.DeletedAt = &deletedAt
		note.DeletedBy = &actor
		note.PurgeAfter = &purgeAfter
		if note.ArchivedAt == nil {
			archivedAt := now
			note.ArchivedAt = &archivedAt
		}

	case ActionRestore:
		if note.ArchiveStatus != models.StatusTrashed {
			return conflict(note, action)
		}
		note.ArchiveStatus = models.StatusActive
		note.DeletedAt = nil
		note.DeletedBy = nil
		note.PurgeAfter = nil
		note.ArchivedAt = nil

	case ActionPurge:
		if note.ArchiveStatus != models.StatusTrashed {
			return conflict(note, action)
		}
		// Row deletion happens in the repository; nothing to mutate.
		return nil

	case ActionPin:
		note.Pinned = true

	case ActionUnpin:
		note.Pinned = false

	default:
		return apperrors.NewBadRequestError(fmt.Sprintf("unknown vault action %q", action))
	}

	note.UpdatedBy = actor
	note.UpdatedAt = now
	return nil
}

// ResetToActive clears every lifecycle field back to the active state. Used
// when restoring a revision onto a live note.
func ResetToActive(note *models.ClassNote) {
	note.ArchiveStatus = models.StatusActive
	note.ArchivedAt = nil
	note.DeletedAt = nil
	note.DeletedBy = nil
	note.PurgeAfter = nil
}

func conflict(note *models.ClassNote, action Action) error {
	return apperrors.NewStateConflictError(
		fmt.Sprintf("cannot %s a note in state %q", action, note.ArchiveStatus))
}
