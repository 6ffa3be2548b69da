// Package naturalquery turns Indonesian free-text queries into a structured
// filter patch. Recognized phrases are removed from the text; whatever
// remains becomes a plain keyword filter.
package naturalquery

import (
	"regexp"
	"strings"
	"time"
)

// Patch is the structured result of parsing a free-text query. Zero-valued
// fields were not mentioned in the text.
type Patch struct {
	Subject          string
	From             *time.Time
	To               *time.Time
	RequireQuestions bool
	Keyword          string
}

var (
	reNotUnderstood = regexp.MustCompile(`(?i)\b(?:yang\s+belum\s+paham|belum\s+paham|tidak\s+paham)\b`)
	reToday         = regexp.MustCompile(`(?i)\bhari\s+ini\b`)
	reYesterday     = regexp.MustCompile(`(?i)\bkemarin\b`)
	reThisWeek      = regexp.MustCompile(`(?i)\bminggu\s+ini\b`)
	reLastWeek      = regexp.MustCompile(`(?i)\bminggu\s+lalu\b`)
	reSubject       = regexp.MustCompile(`(?i)\bcatatan\s+([0-9A-Za-z&][0-9A-Za-z&\- ]{0,79})`)
	reSpaces        = regexp.MustCompile(`\s+`)
)

// Parse extracts filters from text relative to now. Date phrases win in a
// fixed order: today, yesterday, this week, last week; the first hit sets
// the range and later date phrases are stripped without effect.
func Parse(text string, now time.Time) Patch {
	var p Patch
	rest := text

	if reNotUnderstood.MatchString(rest) {
		p.RequireQuestions = true
		rest = reNotUnderstood.ReplaceAllString(rest, " ")
	}

	if reToday.MatchString(rest) {
		from, to := dayRange(now, 0)
		setRange(&p, from, to)
		rest = reToday.ReplaceAllString(rest, " ")
	}
	if reYesterday.MatchString(rest) {
		from, to := dayRange(now, -1)
		setRange(&p, from, to)
		rest = reYesterday.ReplaceAllString(rest, " ")
	}
	if reThisWeek.MatchString(rest) {
		from, to := weekRange(now, 0)
		setRange(&p, from, to)
		rest = reThisWeek.ReplaceAllString(rest, " ")
	}
	if reLastWeek.MatchString(rest) {
		from, to := weekRange(now, -1)
		setRange(&p, from, to)
		rest = reLastWeek.ReplaceAllString(rest, " ")
	}

	if m := reSubject.FindStringSubmatch(rest); m != nil {
		subject := strings.TrimSpace(m[1])
		if len(subject) >= 2 {
			p.Subject = subject
			rest = strings.Replace(rest, m[0], " ", 1)
		}
	}

	p.Keyword = strings.TrimSpace(reSpaces.ReplaceAllString(rest, " "))
	return p
}

// setRange fills the range only once; the first recognized date phrase wins.
func setRange(p *Patch, from, to time.Time) {
	if p.From != nil {
		return
	}
	p.From = &from
	p.To = &to
}

func dayRange(now time.Time, dayOffset int) (time.Time, time.Time) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day = day.AddDate(0, 0, dayOffset)
	return day, day.AddDate(0, 0, 1).Add(-time.Second)
}

// weekRange returns the Monday-to-Sunday span of the ISO week containing
// now, shifted by weekOffset weeks.
func weekRange(now time.Time, weekOffset int) (time.Time, time.Time) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday closes the ISO week
	}
	monday := day.AddDate(0, 0, 1-weekday+7*weekOffset)
	return monday, monday.AddDate(0, 0, 7).Add(-time.Second)
}
