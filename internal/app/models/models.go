package models

// ArchiveStatus is the lifecycle state of a class note. Purged notes have no
// row, so there is no constant for them.
type ArchiveStatus string

const (
	StatusActive   ArchiveStatus = "active"
	StatusArchived ArchiveStatus = "archived"
	StatusTrashed  ArchiveStatus = "trashed"
)

// Valid reports whether s is a known archive status.
func (s ArchiveStatus) Valid() bool {
	switch s {
	case StatusActive, StatusArchived, StatusTrashed:
		return true
	}
	return false
}

// Confidence is the self-reported confidence level attached to a note.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Valid reports whether c is a known confidence level.
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return true
	}
	return false
}

// Change reasons recorded on note revisions.
const (
	ChangeReasonSave      = "save"
	ChangeReasonRestore   = "restore"
	ChangeReasonArchive   = "archive"
	ChangeReasonUnarchive = "unarchive"
	ChangeReasonTrash     = "trash"
	ChangeReasonUntrash   = "untrash"
	ChangeReasonPin       = "pin"
	ChangeReasonUnpin     = "unpin"
)
