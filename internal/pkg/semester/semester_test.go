package semester

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestDescribe_JanuaryFallsInGenap verifies the canonical example: a class
// on 2025-01-10 with an August year start belongs to genap 2024/2025.
func TestDescribe_JanuaryFallsInGenap(t *testing.T) {
	desc := Describe(date(2025, time.January, 10), 8)
	require.NotNil(t, desc)

	assert.Equal(t, 2024, desc.AcademicStartYear)
	assert.Equal(t, 2025, desc.AcademicEndYear)
	assert.Equal(t, TermGenap, desc.Term)
	assert.Equal(t, "2024-2025-genap", desc.Key)
	assert.Equal(t, "Semester Genap 2024/2025", desc.Label)
}

func TestDescribe_StartMonthBeginsGanjil(t *testing.T) {
	desc := Describe(date(2024, time.August, 1), 8)
	require.NotNil(t, desc)

	assert.Equal(t, 2024, desc.AcademicStartYear)
	assert.Equal(t, TermGanjil, desc.Term)
	assert.Equal(t, "2024-2025-ganjil", desc.Key)
}

func TestDescribe_ContainsDate(t *testing.T) {
	dates := []time.Time{
		date(2024, time.August, 1),
		date(2024, time.December, 31),
		date(2025, time.January, 1),
		date(2025, time.July, 31),
		date(2023, time.February, 14),
		date(2030, time.June, 15),
	}
	for _, d := range dates {
		for m := 1; m <= 12; m++ {
			desc := Describe(d, m)
			require.NotNil(t, desc, "date %v month %d", d, m)
			assert.False(t, d.Before(desc.From), "from must not exceed %v (startMonth %d, got %v)", d, m, desc.From)
			assert.False(t, d.After(desc.To), "to must not precede %v (startMonth %d, got %v)", d, m, desc.To)
		}
	}
}

// TestRoundTrip verifies fromKey(toDescriptor(d).Key) reproduces the range
// that contains d, for every start month.
func TestRoundTrip(t *testing.T) {
	samples := []time.Time{
		date(2024, time.September, 5),
		date(2025, time.January, 10),
		date(2025, time.March, 20),
		date(2026, time.December, 1),
	}
	for _, d := range samples {
		for m := 1; m <= 12; m++ {
			desc := Describe(d, m)
			require.NotNil(t, desc)

			parsed, err := FromKey(desc.Key, m)
			require.NoError(t, err, "key %s month %d", desc.Key, m)

			assert.True(t, parsed.From.Equal(desc.From), "from mismatch for %s", desc.Key)
			assert.True(t, parsed.To.Equal(desc.To), "to mismatch for %s", desc.Key)
		}
	}
}

func TestDescribe_InvalidInput(t *testing.T) {
	assert.Nil(t, Describe(time.Time{}, 8))
	assert.Nil(t, Describe(date(1999, time.May, 1), 8))
}

func TestDescribe_BadStartMonthFallsBack(t *testing.T) {
	fallback := Describe(date(2025, time.January, 10), 0)
	require.NotNil(t, fallback)
	assert.Equal(t, "2024-2025-genap", fallback.Key)

	fallback = Describe(date(2025, time.January, 10), 13)
	require.NotNil(t, fallback)
	assert.Equal(t, "2024-2025-genap", fallback.Key)
}

func TestFromKey_Rejections(t *testing.T) {
	cases := []string{
		"",
		"2024-2025",
		"2024-2025-spring",
		"2024-2026-ganjil",
		"1999-2000-ganjil",
		"ganjil-2024-2025",
		"2024-2025-ganjil-extra",
	}
	for _, key := range cases {
		t.Run(fmt.Sprintf("key=%q", key), func(t *testing.T) {
			_, err := FromKey(key, 8)
			assert.Error(t, err)
		})
	}
}

func TestFromKey_GenapSpansJanuaryToJuly(t *testing.T) {
	desc, err := FromKey("2024-2025-genap", 8)
	require.NoError(t, err)

	assert.Equal(t, date(2025, time.January, 1), desc.From)
	assert.Equal(t, time.July, desc.To.Month())
	assert.Equal(t, 31, desc.To.Day())
	assert.Equal(t, 2025, desc.To.Year())
}
