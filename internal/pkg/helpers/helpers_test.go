package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(1, 20)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, 20, limit)

	offset, limit = CalculateOffsetLimit(3, 10)
	assert.Equal(t, uint64(20), offset)
	assert.Equal(t, 10, limit)

	// Out-of-range sizes fall back to the default.
	_, limit = CalculateOffsetLimit(1, 0)
	assert.Equal(t, DefaultPageSize, limit)
	_, limit = CalculateOffsetLimit(1, MaxPageSize+1)
	assert.Equal(t, DefaultPageSize, limit)

	offset, _ = CalculateOffsetLimit(-5, 10)
	assert.Equal(t, uint64(0), offset)
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(45, 2, 20)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 20, info.PageSize)
	assert.Equal(t, int64(45), info.TotalItems)

	empty := NewPaginationInfo(0, 1, 20)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Equal(t, 1, empty.CurrentPage)

	clamped := NewPaginationInfo(10, 9, 20)
	assert.Equal(t, 1, clamped.CurrentPage)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("garbage", time.Minute))
}

func TestISOWeekStart(t *testing.T) {
	// Wednesday.
	wed := time.Date(2025, 9, 3, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), ISOWeekStart(wed))

	// Monday maps to itself.
	mon := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), ISOWeekStart(mon))

	// Sunday belongs to the week that started six days earlier.
	sun := time.Date(2025, 9, 7, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), ISOWeekStart(sun))
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2025, 9, 3, 17, 45, 12, 99, time.UTC)
	assert.Equal(t, time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC), StartOfDay(ts))
}
