package models

import (
	"time"

	"github.com/google/uuid"
)

// NoteRevision is an immutable snapshot of a note's content fields. Rows are
// only ever appended, and only removed when the parent note is purged.
type NoteRevision struct {
	ID        uuid.UUID `db:"id" json:"id"`
	NoteID    uuid.UUID `db:"note_id" json:"noteId"`
	VersionNo int       `db:"version_no" json:"versionNo"`

	KeyPoints   string      `db:"key_points" json:"keyPoints"`
	ActionItems string      `db:"action_items" json:"actionItems"`
	Questions   string      `db:"questions" json:"questions"`
	FreeText    string      `db:"free_text" json:"freeText"`
	MoodFocus   *int        `db:"mood_focus" json:"moodFocus,omitempty"`
	Confidence  *Confidence `db:"confidence" json:"confidence,omitempty"`

	SummaryText    string `db:"summary_text" json:"summaryText"`
	NextActionText string `db:"next_action_text" json:"nextActionText"`
	RiskHint       string `db:"risk_hint" json:"riskHint"`
	QualityScore   int    `db:"quality_score" json:"qualityScore"`

	ChangeReason string    `db:"change_reason" json:"changeReason"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
