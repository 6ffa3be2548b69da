package dto

import "time"

// VaultFilterRequest carries the query parameters of the vault view.
type VaultFilterRequest struct {
	Q                string `form:"q"`
	Owner            string `form:"owner"`
	Subject          string `form:"subject"`
	Status           string `form:"status"`
	From             string `form:"from"`
	To               string `form:"to"`
	Semester         string `form:"semester"`
	Keyword          string `form:"keyword"`
	RequireQuestions bool   `form:"requireQuestions"`
	WithPartner      bool   `form:"withPartner"`
	GroupBy          string `form:"groupBy"` // "" (subject/week) or "semester"
	Page             int    `form:"page"`
	Limit            int    `form:"limit"`
}

// VaultActionRequest applies one lifecycle action to a note.
type VaultActionRequest struct {
	NoteID string `json:"noteId" binding:"required,uuid"`
	Action string `json:"action" binding:"required"`
}

// WeekGroup is one ISO week of notes within a subject.
type WeekGroup struct {
	WeekStart string         `json:"weekStart"`
	WeekEnd   string         `json:"weekEnd"`
	Notes     []NoteResponse `json:"notes"`
}

// SubjectGroup groups a subject's notes by ISO week, newest week first.
type SubjectGroup struct {
	Subject string      `json:"subject"`
	Weeks   []WeekGroup `json:"weeks"`
}

// SemesterGroup groups notes by semester key, newest first.
type SemesterGroup struct {
	SemesterKey   string         `json:"semesterKey"`
	SemesterLabel string         `json:"semesterLabel"`
	From          time.Time      `json:"from"`
	To            time.Time      `json:"to"`
	Notes         []NoteResponse `json:"notes"`
}

// VaultViewResponse is the paginated, grouped archive+trash view. Exactly
// one of the group slices is set, depending on the grouping mode.
type VaultViewResponse struct {
	GroupBy        string          `json:"groupBy"`
	SubjectGroups  []SubjectGroup  `json:"subjectGroups,omitempty"`
	SemesterGroups []SemesterGroup `json:"semesterGroups,omitempty"`
	PaginationInfo PaginationInfo  `json:"pagination"`
}

// SemesterBucket counts an owner's notes inside one semester.
type SemesterBucket struct {
	SemesterKey   string    `json:"semesterKey"`
	SemesterLabel string    `json:"semesterLabel"`
	From          time.Time `json:"from"`
	To            time.Time `json:"to"`
	NoteCount     int       `json:"noteCount"`
}

// SemesterPreferenceRequest updates the academic year start month.
type SemesterPreferenceRequest struct {
	YearStartMonth int `json:"academicYearStartMonth" binding:"required,min=1,max=12"`
}

// SemesterPreferenceResponse returns the effective preference.
type SemesterPreferenceResponse struct {
	YearStartMonth int `json:"academicYearStartMonth"`
}

// MaintenanceResult reports what the sweep entry point changed.
type MaintenanceResult struct {
	ArchivedCount int64 `json:"archivedCount"`
	PurgedCount   int64 `json:"purgedCount"`
}
