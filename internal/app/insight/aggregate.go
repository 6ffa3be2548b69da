package insight

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lintangpradipa/catatankita/internal/app/models"
)

// VaultInsight summarizes a filtered set of vault notes.
type VaultInsight struct {
	TotalNotes     int            `json:"totalNotes"`
	StatusCounts   map[string]int `json:"statusCounts"`
	PinnedCount    int            `json:"pinnedCount"`
	OpenQuestions  int            `json:"openQuestions"`
	TopSubject     string         `json:"topSubject,omitempty"`
	AverageQuality int            `json:"averageQuality"`
	SummaryText    string         `json:"summaryText"`
	NextActionText string         `json:"nextActionText"`
	RiskHint       string         `json:"riskHint"`
}

// BuildVaultInsight aggregates the filtered result set into counts and a
// templated narrative triplet. Empty input gets its own wording.
func BuildVaultInsight(notes []*models.ClassNote) VaultInsight {
	out := VaultInsight{
		StatusCounts: map[string]int{
			string(models.StatusActive):   0,
			string(models.StatusArchived): 0,
			string(models.StatusTrashed):  0,
		},
	}

	if len(notes) == 0 {
		out.SummaryText = "Belum ada catatan pada rentang ini."
		out.NextActionText = "Mulai tulis catatan dari sesi kelas berikutnya."
		out.RiskHint = "Tidak ada data untuk dinilai."
		return out
	}

	subjectFreq := map[string]int{}
	qualitySum := 0
	for _, n := range notes {
		out.TotalNotes++
		out.StatusCounts[string(n.ArchiveStatus)]++
		if n.Pinned {
			out.PinnedCount++
		}
		if strings.TrimSpace(n.Questions) != "" {
			out.OpenQuestions++
		}
		if n.Subject != "" {
			subjectFreq[n.Subject]++
		}
		qualitySum += n.QualityScore
	}
	out.AverageQuality = qualitySum / len(notes)
	out.TopSubject = topSubject(subjectFreq)

	out.SummaryText = fmt.Sprintf("%d catatan pada rentang ini, paling sering dari %s.",
		out.TotalNotes, orUnknown(out.TopSubject))
	if out.OpenQuestions > 0 {
		out.NextActionText = fmt.Sprintf("Tinjau %d catatan yang masih menyimpan pertanyaan terbuka.", out.OpenQuestions)
	} else {
		out.NextActionText = "Semua pertanyaan sudah terjawab. Pertahankan ritme mencatat."
	}
	switch {
	case out.AverageQuality < 40:
		out.RiskHint = fmt.Sprintf("Rata-rata kualitas catatan %d/100. Lengkapi poin kunci dan tindak lanjut.", out.AverageQuality)
	case out.AverageQuality < 70:
		out.RiskHint = fmt.Sprintf("Rata-rata kualitas catatan %d/100. Masih ada ruang untuk detail.", out.AverageQuality)
	default:
		out.RiskHint = fmt.Sprintf("Rata-rata kualitas catatan %d/100. Kualitas terjaga.", out.AverageQuality)
	}

	return out
}

// topSubject picks the most frequent subject, breaking ties alphabetically
// so the result is deterministic.
func topSubject(freq map[string]int) string {
	subjects := make([]string, 0, len(freq))
	for s := range freq {
		subjects = append(subjects, s)
	}
	sort.Slice(subjects, func(i, j int) bool {
		if freq[subjects[i]] != freq[subjects[j]] {
			return freq[subjects[i]] > freq[subjects[j]]
		}
		return subjects[i] < subjects[j]
	})
	if len(subjects) == 0 {
		return ""
	}
	return subjects[0]
}

func orUnknown(s string) string {
	if s == "" {
		return "mata kuliah tanpa nama"
	}
	return s
}
