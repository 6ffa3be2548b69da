package models

import (
	"time"

	"github.com/google/uuid"
)

// ClassNote represents one note per (owner, schedule session, class date).
type ClassNote struct {
	ID          uuid.UUID `db:"id" json:"id"`
	OwnerUserID uuid.UUID `db:"owner_user_id" json:"ownerUserId"`
	ScheduleID  uuid.UUID `db:"schedule_id" json:"scheduleId"`
	ClassDate   time.Time `db:"class_date" json:"classDate"`

	// Subject is denormalized from the schedule session at save time so
	// archive queries never need the schedule table.
	Subject string `db:"subject" json:"subject"`

	// Content fields
	KeyPoints   string      `db:"key_points" json:"keyPoints"`
	ActionItems string      `db:"action_items" json:"actionItems"`
	Questions   string      `db:"questions" json:"questions"`
	FreeText    string      `db:"free_text" json:"freeText"`
	MoodFocus   *int        `db:"mood_focus" json:"moodFocus,omitempty"`
	Confidence  *Confidence `db:"confidence" json:"confidence,omitempty"`

	// Derived fields, recomputed on every save
	SummaryText        string `db:"summary_text" json:"summaryText"`
	NextActionText     string `db:"next_action_text" json:"nextActionText"`
	RiskHint           string `db:"risk_hint" json:"riskHint"`
	QualityScore       int    `db:"quality_score" json:"qualityScore"`
	IsMinimumCompleted bool   `db:"is_minimum_completed" json:"isMinimumCompleted"`

	// Lifecycle fields
	ArchiveStatus ArchiveStatus `db:"archive_status" json:"archiveStatus"`
	ArchivedAt    *time.Time    `db:"archived_at" json:"archivedAt,omitempty"`
	Pinned        bool          `db:"pinned" json:"pinned"`
	DeletedAt     *time.Time    `db:"deleted_at" json:"deletedAt,omitempty"`
	DeletedBy     *uuid.UUID    `db:"deleted_by" json:"deletedBy,omitempty"`
	PurgeAfter    *time.Time    `db:"purge_after" json:"purgeAfter,omitempty"`

	// Audit fields
	UpdatedBy uuid.UUID `db:"updated_by" json:"updatedBy"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// InTrash reports whether the note currently sits in the trash.
func (n *ClassNote) InTrash() bool {
	return n.ArchiveStatus == StatusTrashed
}
