package naturalquery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday 2025-09-03, so the ISO week runs Monday 09-01 to Sunday 09-07.
var now = time.Date(2025, time.September, 3, 14, 30, 0, 0, time.UTC)

func TestParse_ThisWeekWithSubject(t *testing.T) {
	p := Parse("minggu ini catatan kalkulus", now)

	assert.Equal(t, "kalkulus", p.Subject)
	require.NotNil(t, p.From)
	require.NotNil(t, p.To)
	assert.Equal(t, time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC), *p.From)
	assert.Equal(t, time.September, p.To.Month())
	assert.Equal(t, 7, p.To.Day())
	assert.Equal(t, "", p.Keyword)
	assert.False(t, p.RequireQuestions)
}

func TestParse_Today(t *testing.T) {
	p := Parse("hari ini", now)

	require.NotNil(t, p.From)
	assert.Equal(t, time.Date(2025, time.September, 3, 0, 0, 0, 0, time.UTC), *p.From)
	assert.Equal(t, 3, p.To.Day())
}

func TestParse_Yesterday(t *testing.T) {
	p := Parse("kemarin", now)

	require.NotNil(t, p.From)
	assert.Equal(t, 2, p.From.Day())
	assert.Equal(t, 2, p.To.Day())
}

func TestParse_LastWeek(t *testing.T) {
	p := Parse("minggu lalu", now)

	require.NotNil(t, p.From)
	assert.Equal(t, time.Date(2025, time.August, 25, 0, 0, 0, 0, time.UTC), *p.From)
	assert.Equal(t, 31, p.To.Day())
}

// TestParse_FirstDatePhraseWins verifies later date phrases are stripped
// without overriding the first.
func TestParse_FirstDatePhraseWins(t *testing.T) {
	p := Parse("hari ini minggu lalu", now)

	require.NotNil(t, p.From)
	assert.Equal(t, 3, p.From.Day())
	assert.Equal(t, "", p.Keyword)
}

func TestParse_NotUnderstoodVariants(t *testing.T) {
	for _, text := range []string{"belum paham", "yang belum paham", "tidak paham"} {
		p := Parse(text, now)
		assert.True(t, p.RequireQuestions, "text %q", text)
		assert.Equal(t, "", p.Keyword, "text %q", text)
	}
}

func TestParse_ResidualBecomesKeyword(t *testing.T) {
	p := Parse("minggu ini integral parsial", now)

	require.NotNil(t, p.From)
	assert.Equal(t, "integral parsial", p.Keyword)
	assert.Equal(t, "", p.Subject)
}

func TestParse_SubjectTooShortIgnored(t *testing.T) {
	p := Parse("catatan x", now)

	assert.Equal(t, "", p.Subject)
	assert.Equal(t, "catatan x", p.Keyword)
}

func TestParse_CaseInsensitive(t *testing.T) {
	p := Parse("Minggu Ini Catatan Kalkulus", now)

	assert.Equal(t, "Kalkulus", p.Subject)
	require.NotNil(t, p.From)
}

func TestParse_EmptyText(t *testing.T) {
	p := Parse("", now)

	assert.Nil(t, p.From)
	assert.Nil(t, p.To)
	assert.Equal(t, "", p.Subject)
	assert.Equal(t, "", p.Keyword)
	assert.False(t, p.RequireQuestions)
}

// TestParse_SundayWeek pins the ISO convention: on a Sunday, "minggu ini"
// still starts the previous Monday.
func TestParse_SundayWeek(t *testing.T) {
	sunday := time.Date(2025, time.September, 7, 10, 0, 0, 0, time.UTC)
	p := Parse("minggu ini", sunday)

	require.NotNil(t, p.From)
	assert.Equal(t, time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC), *p.From)
}
