// Package insight computes the heuristic quality score and the generated
// "smart layer" texts (summary, next action, risk hint) for class notes, and
// aggregates them into vault-level insights.
package insight

import (
	"strings"
	"unicode/utf8"

	"github.com/lintangpradipa/catatankita/internal/app/models"
)

// Hand-tuned scoring weights. Longer structured content scores higher, with
// the total clipped to 100. The exact constants carry no meaning beyond
// their relative size.
const (
	maxKeyPointsScore   = 30
	maxActionItemsScore = 24
	maxQuestionsScore   = 16
	maxFreeTextScore    = 18

	summaryBonus    = 6
	nextActionBonus = 6
	moodBonus       = 4

	confidenceHighBonus   = 6
	confidenceMediumBonus = 4
	confidenceLowBonus    = 2

	// Rune counts at which a field earns its full weight.
	keyPointsTarget   = 240
	actionItemsTarget = 200
	questionsTarget   = 160
	freeTextTarget    = 300
)

// IsMinimumCompleted reports whether the note carries enough content to be a
// note at all: any of key points, action items, or free text is non-empty.
func IsMinimumCompleted(note *models.ClassNote) bool {
	return strings.TrimSpace(note.KeyPoints) != "" ||
		strings.TrimSpace(note.ActionItems) != "" ||
		strings.TrimSpace(note.FreeText) != ""
}

// ComputeQualityScore scores a note's content in [0, 100]. The score is
// monotonic non-decreasing in the length of each content field.
func ComputeQualityScore(note *models.ClassNote) int {
	score := lengthScore(note.KeyPoints, maxKeyPointsScore, keyPointsTarget)
	score += lengthScore(note.ActionItems, maxActionItemsScore, actionItemsTarget)
	score += lengthScore(note.Questions, maxQuestionsScore, questionsTarget)
	score += lengthScore(note.FreeText, maxFreeTextScore, freeTextTarget)

	if strings.TrimSpace(note.SummaryText) != "" {
		score += summaryBonus
	}
	if strings.TrimSpace(note.NextActionText) != "" {
		score += nextActionBonus
	}
	if note.MoodFocus != nil {
		score += moodBonus
	}
	if note.Confidence != nil {
		switch *note.Confidence {
		case models.ConfidenceHigh:
			score += confidenceHighBonus
		case models.ConfidenceMedium:
			score += confidenceMediumBonus
		case models.ConfidenceLow:
			score += confidenceLowBonus
		}
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// lengthScore scales linearly with rune count up to max at target runes.
// Any non-empty content earns at least one point.
func lengthScore(text string, max, target int) int {
	n := utf8.RuneCountInString(strings.TrimSpace(text))
	if n == 0 {
		return 0
	}
	score := n * max / target
	if score < 1 {
		score = 1
	}
	if score > max {
		score = max
	}
	return score
}
