package models

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleSession describes one recurring class session. The scheduling
// feature itself lives outside this service; rows here are read-only.
type ScheduleSession struct {
	ID          uuid.UUID `db:"id" json:"id"`
	OwnerUserID uuid.UUID `db:"owner_user_id" json:"ownerUserId"`
	Weekday     int       `db:"weekday" json:"weekday"` // 0=Sunday .. 6=Saturday
	Subject     string    `db:"subject" json:"subject"`
	Room        string    `db:"room" json:"room"`
	Lecturer    string    `db:"lecturer" json:"lecturer"`
	StartTime   string    `db:"start_time" json:"startTime"` // "15:04"
	EndTime     string    `db:"end_time" json:"endTime"`
}

// EndedBy reports whether the session occurrence on classDate is over at the
// given instant. A malformed end time counts as ended once the date has
// passed.
func (s *ScheduleSession) EndedBy(classDate, now time.Time) bool {
	day := time.Date(classDate.Year(), classDate.Month(), classDate.Day(), 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return true
	}
	if day.After(today) {
		return false
	}

	end, err := time.Parse("15:04", s.EndTime)
	if err != nil {
		return false
	}
	endAt := day.Add(time.Duration(end.Hour())*time.Hour + time.Duration(end.Minute())*time.Minute)
	return !now.Before(endAt)
}
