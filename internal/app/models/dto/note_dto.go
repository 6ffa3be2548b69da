package dto

import (
	"time"

	"github.com/lintangpradipa/catatankita/internal/app/models"
)

// SaveNoteRequest is the idempotent upsert payload. The triple (caller,
// scheduleId, classDate) identifies the note.
type SaveNoteRequest struct {
	ScheduleID  string  `json:"scheduleId" binding:"required,uuid"`
	ClassDate   string  `json:"classDate" binding:"required"` // "2006-01-02"
	KeyPoints   string  `json:"keyPoints"`
	ActionItems string  `json:"actionItems"`
	Questions   string  `json:"questions"`
	FreeText    string  `json:"freeText"`
	MoodFocus   *int    `json:"moodFocus" binding:"omitempty,min=1,max=5"`
	Confidence  *string `json:"confidence" binding:"omitempty,oneof=low medium high"`
}

// NoteFilterRequest carries the query parameters of the list endpoints.
// Explicit filters always win over whatever the natural-language text in Q
// parses to.
type NoteFilterRequest struct {
	Q                string `form:"q"`
	Owner            string `form:"owner"`
	ScheduleID       string `form:"scheduleId"`
	Subject          string `form:"subject"`
	Status           string `form:"status"`
	From             string `form:"from"`
	To               string `form:"to"`
	Semester         string `form:"semester"`
	Keyword          string `form:"keyword"`
	RequireQuestions bool   `form:"requireQuestions"`
	WithPartner      bool   `form:"withPartner"`
	SortBy           string `form:"sortBy"`
	SortOrder        string `form:"sortOrder"`
	Page             int    `form:"page"`
	Limit            int    `form:"limit"`
}

// NoteResponse is the wire shape of a class note.
type NoteResponse struct {
	ID                 string     `json:"id"`
	OwnerUserID        string     `json:"ownerUserId"`
	ScheduleID         string     `json:"scheduleId"`
	ClassDate          string     `json:"classDate"`
	Subject            string     `json:"subject"`
	KeyPoints          string     `json:"keyPoints"`
	ActionItems        string     `json:"actionItems"`
	Questions          string     `json:"questions"`
	FreeText           string     `json:"freeText"`
	MoodFocus          *int       `json:"moodFocus,omitempty"`
	Confidence         *string    `json:"confidence,omitempty"`
	SummaryText        string     `json:"summaryText"`
	NextActionText     string     `json:"nextActionText"`
	RiskHint           string     `json:"riskHint"`
	QualityScore       int        `json:"qualityScore"`
	IsMinimumCompleted bool       `json:"isMinimumCompleted"`
	ArchiveStatus      string     `json:"archiveStatus"`
	ArchivedAt         *time.Time `json:"archivedAt,omitempty"`
	Pinned             bool       `json:"pinned"`
	DeletedAt          *time.Time `json:"deletedAt,omitempty"`
	PurgeAfter         *time.Time `json:"purgeAfter,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// NewNoteResponse converts a model row to its wire shape.
func NewNoteResponse(n *models.ClassNote) NoteResponse {
	var confidence *string
	if n.Confidence != nil {
		c := string(*n.Confidence)
		confidence = &c
	}
	return NoteResponse{
		ID:                 n.ID.String(),
		OwnerUserID:        n.OwnerUserID.String(),
		ScheduleID:         n.ScheduleID.String(),
		ClassDate:          n.ClassDate.Format("2006-01-02"),
		Subject:            n.Subject,
		KeyPoints:          n.KeyPoints,
		ActionItems:        n.ActionItems,
		Questions:          n.Questions,
		FreeText:           n.FreeText,
		MoodFocus:          n.MoodFocus,
		Confidence:         confidence,
		SummaryText:        n.SummaryText,
		NextActionText:     n.NextActionText,
		RiskHint:           n.RiskHint,
		QualityScore:       n.QualityScore,
		IsMinimumCompleted: n.IsMinimumCompleted,
		ArchiveStatus:      string(n.ArchiveStatus),
		ArchivedAt:         n.ArchivedAt,
		Pinned:             n.Pinned,
		DeletedAt:          n.DeletedAt,
		PurgeAfter:         n.PurgeAfter,
		CreatedAt:          n.CreatedAt,
		UpdatedAt:          n.UpdatedAt,
	}
}

// NoteListResponse is a paginated flat list of notes.
type NoteListResponse struct {
	Notes          []NoteResponse `json:"notes"`
	PaginationInfo PaginationInfo `json:"pagination"`
}

// RevisionResponse is the wire shape of one revision snapshot.
type RevisionResponse struct {
	ID           string    `json:"id"`
	NoteID       string    `json:"noteId"`
	VersionNo    int       `json:"versionNo"`
	KeyPoints    string    `json:"keyPoints"`
	ActionItems  string    `json:"actionItems"`
	Questions    string    `json:"questions"`
	FreeText     string    `json:"freeText"`
	MoodFocus    *int      `json:"moodFocus,omitempty"`
	Confidence   *string   `json:"confidence,omitempty"`
	QualityScore int       `json:"qualityScore"`
	ChangeReason string    `json:"changeReason"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewRevisionResponse converts a revision row to its wire shape.
func NewRevisionResponse(r *models.NoteRevision) RevisionResponse {
	var confidence *string
	if r.Confidence != nil {
		c := string(*r.Confidence)
		confidence = &c
	}
	return RevisionResponse{
		ID:           r.ID.String(),
		NoteID:       r.NoteID.String(),
		VersionNo:    r.VersionNo,
		KeyPoints:    r.KeyPoints,
		ActionItems:  r.ActionItems,
		Questions:    r.Questions,
		FreeText:     r.FreeText,
		MoodFocus:    r.MoodFocus,
		Confidence:   confidence,
		QualityScore: r.QualityScore,
		ChangeReason: r.ChangeReason,
		CreatedAt:    r.CreatedAt,
	}
}

// AuditEntryResponse is the wire shape of one audit trail entry.
type AuditEntryResponse struct {
	ID         string    `json:"id"`
	NoteID     string    `json:"noteId"`
	ActorID    string    `json:"actorId"`
	Action     string    `json:"action"`
	Detail     string    `json:"detail"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewAuditEntryResponse converts an audit row to its wire shape.
func NewAuditEntryResponse(e *models.AuditLog) AuditEntryResponse {
	return AuditEntryResponse{
		ID:         e.ID.String(),
		NoteID:     e.NoteID.String(),
		ActorID:    e.ActorID.String(),
		Action:     e.Action,
		Detail:     e.Detail,
		OccurredAt: e.OccurredAt,
	}
}

// SessionWithNote pairs a schedule session with the status of the caller's
// note for a given date.
type SessionWithNote struct {
	SessionID  string  `json:"sessionId"`
	Subject    string  `json:"subject"`
	Room       string  `json:"room"`
	Lecturer   string  `json:"lecturer"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	Ended      bool    `json:"ended"`
	NoteID     *string `json:"noteId,omitempty"`
	NoteStatus string  `json:"noteStatus"` // "none" when no note exists yet
	Completed  bool    `json:"completed"`  // minimum completion of the note
}

// TodaySessionsResponse lists the sessions of one calendar date.
type TodaySessionsResponse struct {
	Date     string            `json:"date"`
	Sessions []SessionWithNote `json:"sessions"`
}
