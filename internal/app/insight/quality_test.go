package insight

import (
	"strings"
	"testing"

	"github.com/lintangpradipa/catatankita/internal/app/models"
	"github.com/stretchr/testify/assert"
)

func TestIsMinimumCompleted(t *testing.T) {
	assert.False(t, IsMinimumCompleted(&models.ClassNote{}))
	assert.False(t, IsMinimumCompleted(&models.ClassNote{KeyPoints: "   \n  "}))
	assert.True(t, IsMinimumCompleted(&models.ClassNote{KeyPoints: "turunan parsial"}))
	assert.True(t, IsMinimumCompleted(&models.ClassNote{ActionItems: "kerjakan latihan"}))
	assert.True(t, IsMinimumCompleted(&models.ClassNote{FreeText: "diskusi kelas"}))
	assert.False(t, IsMinimumCompleted(&models.ClassNote{Questions: "kenapa?"}))
}

func TestComputeQualityScore_Empty(t *testing.T) {
	assert.Equal(t, 0, ComputeQualityScore(&models.ClassNote{}))
}

func TestComputeQualityScore_WithinBounds(t *testing.T) {
	long := strings.Repeat("a", 5000)
	mood := 4
	conf := models.ConfidenceHigh
	note := &models.ClassNote{
		KeyPoints:      long,
		ActionItems:    long,
		Questions:      long,
		FreeText:       long,
		SummaryText:    "ringkasan",
		NextActionText: "tindak lanjut",
		MoodFocus:      &mood,
		Confidence:     &conf,
	}

	score := ComputeQualityScore(note)
	assert.Equal(t, 100, score)
}

// TestComputeQualityScore_Monotonic grows each content field one at a time
// and checks the score never decreases.
func TestComputeQualityScore_Monotonic(t *testing.T) {
	grow := []func(n *models.ClassNote, s string){
		func(n *models.ClassNote, s string) { n.KeyPoints = s },
		func(n *models.ClassNote, s string) { n.ActionItems = s },
		func(n *models.ClassNote, s string) { n.Questions = s },
		func(n *models.ClassNote, s string) { n.FreeText = s },
	}

	for i, set := range grow {
		note := &models.ClassNote{
			KeyPoints:   "dasar",
			ActionItems: "dasar",
		}
		prev := ComputeQualityScore(note)
		for length := 1; length <= 600; length += 37 {
			set(note, strings.Repeat("x", length))
			score := ComputeQualityScore(note)
			assert.GreaterOrEqual(t, score, prev, "field %d length %d", i, length)
			assert.LessOrEqual(t, score, 100)
			assert.GreaterOrEqual(t, score, 0)
			prev = score
		}
	}
}

func TestComputeQualityScore_NonEmptyEarnsAtLeastOne(t *testing.T) {
	note := &models.ClassNote{KeyPoints: "a"}
	assert.GreaterOrEqual(t, ComputeQualityScore(note), 1)
}

func TestComputeQualityScore_ConfidenceTiers(t *testing.T) {
	base := &models.ClassNote{KeyPoints: "materi"}
	baseScore := ComputeQualityScore(base)

	scores := map[models.Confidence]int{}
	for _, c := range []models.Confidence{models.ConfidenceLow, models.ConfidenceMedium, models.ConfidenceHigh} {
		conf := c
		note := &models.ClassNote{KeyPoints: "materi", Confidence: &conf}
		scores[c] = ComputeQualityScore(note)
	}

	assert.Equal(t, baseScore+2, scores[models.ConfidenceLow])
	assert.Equal(t, baseScore+4, scores[models.ConfidenceMedium])
	assert.Equal(t, baseScore+6, scores[models.ConfidenceHigh])
}

func TestComputeQualityScore_Bonuses(t *testing.T) {
	note := &models.ClassNote{KeyPoints: "materi"}
	base := ComputeQualityScore(note)

	note.SummaryText = "ringkasan"
	assert.Equal(t, base+6, ComputeQualityScore(note))

	note.NextActionText = "tindak lanjut"
	assert.Equal(t, base+12, ComputeQualityScore(note))

	mood := 3
	note.MoodFocus = &mood
	assert.Equal(t, base+16, ComputeQualityScore(note))
}
