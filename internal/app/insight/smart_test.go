package insight

import (
	"strings"
	"testing"

	"github.com/lintangpradipa/catatankita/internal/app/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildSmartLayer_FromContent(t *testing.T) {
	note := &models.ClassNote{
		Subject:     "Kalkulus II",
		KeyPoints:   "Integral lipat dua\nKoordinat polar",
		ActionItems: "Kerjakan soal 4.1 sampai 4.8",
	}

	BuildSmartLayer(note, WorkloadSnapshot{})

	assert.Equal(t, "Integral lipat dua", note.SummaryText)
	assert.Equal(t, "Kerjakan soal 4.1 sampai 4.8", note.NextActionText)
	assert.True(t, note.IsMinimumCompleted)
	assert.Greater(t, note.QualityScore, 0)
}

func TestBuildSmartLayer_QuestionFallbackForNextAction(t *testing.T) {
	note := &models.ClassNote{
		Subject:   "Fisika Dasar",
		KeyPoints: "Hukum Newton kedua",
		Questions: "Kenapa gaya normal tidak selalu sama dengan berat?",
	}

	BuildSmartLayer(note, WorkloadSnapshot{})

	assert.True(t, strings.HasPrefix(note.NextActionText, "Cari jawaban untuk:"))
}

func TestBuildSmartLayer_StyleTemplates(t *testing.T) {
	cases := []struct {
		subject string
		summary string
	}{
		{"Kalkulus Lanjut", "latihan soal"},
		{"Praktikum Basis Data", "praktik"},
		{"Sejarah Indonesia", "bacaan"},
		{"Kewirausahaan", "Catatan sesi"},
	}

	for _, tc := range cases {
		note := &models.ClassNote{Subject: tc.subject}
		BuildSmartLayer(note, WorkloadSnapshot{})
		assert.Contains(t, note.SummaryText, tc.summary, "subject %s", tc.subject)
		assert.False(t, note.IsMinimumCompleted)
	}
}

func TestBuildSmartLayer_RiskTiers(t *testing.T) {
	note := &models.ClassNote{Subject: "Algoritma"}

	BuildSmartLayer(note, WorkloadSnapshot{DueSoonCount: 2, SubjectMatchCount: 1})
	assert.Contains(t, note.RiskHint, "Prioritaskan")

	BuildSmartLayer(note, WorkloadSnapshot{DueSoonCount: 1})
	assert.Contains(t, note.RiskHint, "jatuh tempo")
	assert.NotContains(t, note.RiskHint, "Prioritaskan")

	BuildSmartLayer(note, WorkloadSnapshot{SubjectMatchCount: 3})
	assert.Contains(t, note.RiskHint, "masih terbuka")

	BuildSmartLayer(note, WorkloadSnapshot{})
	assert.Equal(t, "Tidak ada tugas mendesak terkait catatan ini.", note.RiskHint)
}

func TestBuildSmartLayer_ClipsLongLines(t *testing.T) {
	note := &models.ClassNote{
		Subject:   "Statistika",
		KeyPoints: strings.Repeat("panjang ", 60),
	}

	BuildSmartLayer(note, WorkloadSnapshot{})

	assert.LessOrEqual(t, len([]rune(note.SummaryText)), 140)
	assert.True(t, strings.HasSuffix(note.SummaryText, "…"))
}
