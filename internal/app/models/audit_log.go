package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records one vault mutation. NoteID is stored without a foreign
// key so the trail survives a purge.
type AuditLog struct {
	ID         uuid.UUID `db:"id" json:"id"`
	NoteID     uuid.UUID `db:"note_id" json:"noteId"`
	ActorID    uuid.UUID `db:"actor_id" json:"actorId"`
	Action     string    `db:"action" json:"action"`
	Detail     string    `db:"detail" json:"detail"`
	OccurredAt time.Time `db:"occurred_at" json:"occurredAt"`
}

// WorkloadItem is a task or assignment row consumed only as input to the
// risk heuristic. The task feature itself is managed elsewhere.
type WorkloadItem struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	OwnerUserID uuid.UUID  `db:"owner_user_id" json:"ownerUserId"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	DueAt       *time.Time `db:"due_at" json:"dueAt,omitempty"`
	Completed   bool       `db:"completed" json:"completed"`
}
