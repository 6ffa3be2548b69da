package insight

import (
	"fmt"
	"strings"

	"github.com/lintangpradipa/catatankita/internal/app/models"
)

// WorkloadSnapshot carries the two risk signals computed over the owner's
// tasks and assignments.
type WorkloadSnapshot struct {
	// DueSoonCount is how many open items are due within the next 24 hours.
	DueSoonCount int
	// SubjectMatchCount is how many open items mention the note's subject
	// in their title or description.
	SubjectMatchCount int
}

// subjectStyle buckets a subject name into one of four study styles used to
// pick fallback templates.
type subjectStyle int

const (
	styleGeneral subjectStyle = iota
	styleLogic
	styleBuild
	styleReading
)

var styleKeywords = map[subjectStyle][]string{
	styleLogic:   {"matematika", "kalkulus", "logika", "statistik", "fisika", "algoritma", "aljabar"},
	styleBuild:   {"pemrograman", "praktikum", "proyek", "lab", "rekayasa", "jaringan", "basis data"},
	styleReading: {"sejarah", "bahasa", "hukum", "ekonomi", "agama", "sosiologi", "literatur"},
}

func classifySubject(subject string) subjectStyle {
	s := strings.ToLower(subject)
	for style, words := range styleKeywords {
		for _, w := range words {
			if strings.Contains(s, w) {
				return style
			}
		}
	}
	return styleGeneral
}

// BuildSmartLayer fills the note's derived fields: summary text, next action
// text, risk hint, quality score, and the minimum-completion flag. It must
// run on every content-affecting save.
func BuildSmartLayer(note *models.ClassNote, workload WorkloadSnapshot) {
	note.SummaryText = buildSummary(note)
	note.NextActionText = buildNextAction(note)
	note.RiskHint = buildRiskHint(note, workload)
	note.IsMinimumCompleted = IsMinimumCompleted(note)
	note.QualityScore = ComputeQualityScore(note)
}

func buildSummary(note *models.ClassNote) string {
	if line := firstLine(note.KeyPoints); line != "" {
		return clip(line, 140)
	}
	if line := firstLine(note.FreeText); line != "" {
		return clip(line, 140)
	}

	switch classifySubject(note.Subject) {
	case styleLogic:
		return fmt.Sprintf("Sesi %s membahas latihan soal dan konsep hitung.", note.Subject)
	case styleBuild:
		return fmt.Sprintf("Sesi %s berisi praktik dan pengerjaan tugas.", note.Subject)
	case styleReading:
		return fmt.Sprintf("Sesi %s membahas materi bacaan dan diskusi.", note.Subject)
	default:
		return fmt.Sprintf("Catatan sesi %s.", note.Subject)
	}
}

func buildNextAction(note *models.ClassNote) string {
	if line := firstLine(note.ActionItems); line != "" {
		return clip(line, 140)
	}
	if line := firstLine(note.Questions); line != "" {
		return clip("Cari jawaban untuk: "+line, 140)
	}

	switch classifySubject(note.Subject) {
	case styleLogic:
		return fmt.Sprintf("Kerjakan ulang contoh soal %s.", note.Subject)
	case styleBuild:
		return fmt.Sprintf("Lanjutkan latihan praktik %s.", note.Subject)
	case styleReading:
		return fmt.Sprintf("Baca ulang materi %s dan buat ringkasan singkat.", note.Subject)
	default:
		return fmt.Sprintf("Tinjau kembali catatan %s.", note.Subject)
	}
}

func buildRiskHint(note *models.ClassNote, w WorkloadSnapshot) string {
	switch {
	case w.DueSoonCount > 0 && w.SubjectMatchCount > 0:
		return fmt.Sprintf("%d tugas jatuh tempo <24 jam dan %d tugas terkait %s. Prioritaskan hari ini.",
			w.DueSoonCount, w.SubjectMatchCount, note.Subject)
	case w.DueSoonCount > 0:
		return fmt.Sprintf("%d tugas jatuh tempo dalam 24 jam ke depan.", w.DueSoonCount)
	case w.SubjectMatchCount > 0:
		return fmt.Sprintf("%d tugas terkait %s masih terbuka.", w.SubjectMatchCount, note.Subject)
	default:
		return "Tidak ada tugas mendesak terkait catatan ini."
	}
}

// firstLine returns the first non-empty trimmed line of text.
func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max-1])) + "…"
}
