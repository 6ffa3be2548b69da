package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEndedBy(t *testing.T) {
	session := &ScheduleSession{StartTime: "08:00", EndTime: "09:40"}
	now := time.Date(2025, 9, 3, 10, 0, 0, 0, time.UTC)

	t.Run("past date is always ended", func(t *testing.T) {
		assert.True(t, session.EndedBy(time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC), now))
	})

	t.Run("future date is never ended", func(t *testing.T) {
		assert.False(t, session.EndedBy(time.Date(2025, 9, 4, 0, 0, 0, 0, time.UTC), now))
	})

	t.Run("same day compares against end time", func(t *testing.T) {
		today := time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)
		assert.True(t, session.EndedBy(today, now))

		early := time.Date(2025, 9, 3, 9, 0, 0, 0, time.UTC)
		assert.False(t, session.EndedBy(today, early))

		exact := time.Date(2025, 9, 3, 9, 40, 0, 0, time.UTC)
		assert.True(t, session.EndedBy(today, exact))
	})

	t.Run("malformed end time on the same day stays open", func(t *testing.T) {
		broken := &ScheduleSession{EndTime: "not-a-time"}
		today := time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)
		assert.False(t, broken.EndedBy(today, now))
	})
}
