// Package semester converts calendar dates to academic semester descriptors
// and back. An academic year starts at a configurable month (August by
// default) and is split into the Indonesian ganjil/genap terms: ganjil runs
// from the start month to the end of the calendar year, genap from January
// to the month before the start month of the following year.
package semester

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Term is one half of an academic year.
type Term string

const (
	TermGanjil Term = "ganjil"
	TermGenap  Term = "genap"
)

const (
	// DefaultStartMonth is August, the usual start of the Indonesian
	// academic year.
	DefaultStartMonth = 8

	// MinYear bounds how far back a date is considered meaningful.
	MinYear = 2000
)

// Descriptor identifies one academic half-year and its date range.
type Descriptor struct {
	AcademicStartYear int       `json:"academicStartYear"`
	AcademicEndYear   int       `json:"academicEndYear"`
	Term              Term      `json:"term"`
	Key               string    `json:"semesterKey"`
	Label             string    `json:"semesterLabel"`
	From              time.Time `json:"from"`
	To                time.Time `json:"to"`
}

var keyPattern = regexp.MustCompile(`^(\d{4})-(\d{4})-(ganjil|genap)$`)

// Describe maps a date onto its semester descriptor. It returns nil when the
// date is out of the supported range. A start month outside [1,12] falls back
// to DefaultStartMonth.
func Describe(date time.Time, startMonth int) *Descriptor {
	if date.IsZero() || date.Year() < MinYear {
		return nil
	}
	if startMonth < 1 || startMonth > 12 {
		startMonth = DefaultStartMonth
	}

	startYear := date.Year()
	term := TermGanjil
	if int(date.Month()) < startMonth {
		startYear = date.Year() - 1
		term = TermGenap
	}

	return build(startYear, term, startMonth, date.Location())
}

// FromKey parses a semester key of the form "{startYear}-{endYear}-{term}"
// and returns the matching descriptor. The end year must be exactly one past
// the start year.
func FromKey(key string, startMonth int) (*Descriptor, error) {
	if startMonth < 1 || startMonth > 12 {
		startMonth = DefaultStartMonth
	}

	m := keyPattern.FindStringSubmatch(key)
	if m == nil {
		return nil, fmt.Errorf("malformed semester key %q", key)
	}

	startYear, _ := strconv.Atoi(m[1])
	endYear, _ := strconv.Atoi(m[2])
	if startYear < MinYear {
		return nil, fmt.Errorf("semester key %q: start year before %d", key, MinYear)
	}
	if endYear != startYear+1 {
		return nil, fmt.Errorf("semester key %q: end year must be start year + 1", key)
	}

	return build(startYear, Term(m[3]), startMonth, time.UTC), nil
}

func build(startYear int, term Term, startMonth int, loc *time.Location) *Descriptor {
	endYear := startYear + 1

	var from, to time.Time
	if term == TermGanjil {
		from = time.Date(startYear, time.Month(startMonth), 1, 0, 0, 0, 0, loc)
		to = time.Date(startYear, time.December, 31, 23, 59, 59, 0, loc)
	} else {
		from = time.Date(endYear, time.January, 1, 0, 0, 0, 0, loc)
		// Last instant before the next academic year begins.
		to = time.Date(endYear, time.Month(startMonth), 1, 0, 0, 0, 0, loc).Add(-time.Second)
	}

	return &Descriptor{
		AcademicStartYear: startYear,
		AcademicEndYear:   endYear,
		Term:              term,
		Key:               fmt.Sprintf("%d-%d-%s", startYear, endYear, term),
		Label:             fmt.Sprintf("Semester %s %d/%d", titleTerm(term), startYear, endYear),
		From:              from,
		To:                to,
	}
}

func titleTerm(t Term) string {
	if t == TermGenap {
		return "Genap"
	}
	return "Ganjil"
}
