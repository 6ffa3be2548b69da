package insight

import (
	"testing"

	"github.com/lintangpradipa/catatankita/internal/app/models"
	"github.com/stretchr/testify/assert"
)

func note(subject string, status models.ArchiveStatus, quality int) *models.ClassNote {
	return &models.ClassNote{
		Subject:       subject,
		ArchiveStatus: status,
		QualityScore:  quality,
	}
}

func TestBuildVaultInsight_Empty(t *testing.T) {
	agg := BuildVaultInsight(nil)

	assert.Equal(t, 0, agg.TotalNotes)
	assert.Equal(t, "Belum ada catatan pada rentang ini.", agg.SummaryText)
	assert.NotEmpty(t, agg.NextActionText)
	assert.NotEmpty(t, agg.RiskHint)
}

func TestBuildVaultInsight_Counts(t *testing.T) {
	n1 := note("Kalkulus", models.StatusActive, 80)
	n1.Pinned = true
	n2 := note("Kalkulus", models.StatusArchived, 60)
	n2.Questions = "kenapa konvergen?"
	n3 := note("Fisika", models.StatusTrashed, 40)

	agg := BuildVaultInsight([]*models.ClassNote{n1, n2, n3})

	assert.Equal(t, 3, agg.TotalNotes)
	assert.Equal(t, 1, agg.StatusCounts["active"])
	assert.Equal(t, 1, agg.StatusCounts["archived"])
	assert.Equal(t, 1, agg.StatusCounts["trashed"])
	assert.Equal(t, 1, agg.PinnedCount)
	assert.Equal(t, 1, agg.OpenQuestions)
	assert.Equal(t, "Kalkulus", agg.TopSubject)
	assert.Equal(t, 60, agg.AverageQuality)
	assert.Contains(t, agg.SummaryText, "Kalkulus")
	assert.Contains(t, agg.NextActionText, "pertanyaan terbuka")
}

// TestBuildVaultInsight_TopSubjectTieBreak pins the deterministic
// alphabetical tie-break.
func TestBuildVaultInsight_TopSubjectTieBreak(t *testing.T) {
	agg := BuildVaultInsight([]*models.ClassNote{
		note("Fisika", models.StatusActive, 50),
		note("Aljabar", models.StatusActive, 50),
	})
	assert.Equal(t, "Aljabar", agg.TopSubject)
}

func TestBuildVaultInsight_RiskTiers(t *testing.T) {
	low := BuildVaultInsight([]*models.ClassNote{note("A", models.StatusActive, 10)})
	assert.Contains(t, low.RiskHint, "Lengkapi")

	mid := BuildVaultInsight([]*models.ClassNote{note("A", models.StatusActive, 55)})
	assert.Contains(t, mid.RiskHint, "ruang untuk detail")

	high := BuildVaultInsight([]*models.ClassNote{note("A", models.StatusActive, 90)})
	assert.Contains(t, high.RiskHint, "terjaga")
}

func TestBuildVaultInsight_NoOpenQuestions(t *testing.T) {
	agg := BuildVaultInsight([]*models.ClassNote{note("A", models.StatusActive, 70)})
	assert.Contains(t, agg.NextActionText, "Pertahankan")
}
