package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lintangpradipa/catatankita/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vaultNote(subject string, classDate time.Time) *models.ClassNote {
	return &models.ClassNote{
		ID:            uuid.New(),
		OwnerUserID:   uuid.New(),
		Subject:       subject,
		ClassDate:     classDate,
		ArchiveStatus: models.StatusArchived,
	}
}

func TestGroupBySubjectWeek_SubjectOrderFollowsNewestNote(t *testing.T) {
	// Newest-first input, the way the repository returns it.
	notes := []*models.ClassNote{
		vaultNote("Fisika", time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)),
		vaultNote("Kalkulus", time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC)),
		vaultNote("Fisika", time.Date(2025, 8, 27, 0, 0, 0, 0, time.UTC)),
	}

	groups := groupBySubjectWeek(notes)

	require.Len(t, groups, 2)
	assert.Equal(t, "Fisika", groups[0].Subject)
	assert.Equal(t, "Kalkulus", groups[1].Subject)
}

func TestGroupBySubjectWeek_WeeksNewestFirst(t *testing.T) {
	notes := []*models.ClassNote{
		vaultNote("Fisika", time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)),
		vaultNote("Fisika", time.Date(2025, 8, 27, 0, 0, 0, 0, time.UTC)),
		vaultNote("Fisika", time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)),
	}

	groups := groupBySubjectWeek(notes)

	require.Len(t, groups, 1)
	weeks := groups[0].Weeks
	require.Len(t, weeks, 2)

	// Wed Sep 3 2025 falls in the week of Mon Sep 1.
	assert.Equal(t, "2025-09-01", weeks[0].WeekStart)
	assert.Equal(t, "2025-09-07", weeks[0].WeekEnd)
	assert.Len(t, weeks[0].Notes, 1)

	// Aug 27 and Aug 25 share the week of Mon Aug 25.
	assert.Equal(t, "2025-08-25", weeks[1].WeekStart)
	assert.Len(t, weeks[1].Notes, 2)
}

func TestGroupBySubjectWeek_Empty(t *testing.T) {
	assert.Empty(t, groupBySubjectWeek(nil))
}

func TestGroupBySemester_NewestSemesterFirst(t *testing.T) {
	notes := []*models.ClassNote{
		vaultNote("Kalkulus", time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)),
		vaultNote("Kalkulus", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)),
		vaultNote("Fisika", time.Date(2025, 9, 4, 0, 0, 0, 0, time.UTC)),
	}

	groups := groupBySemester(notes, 8)

	require.Len(t, groups, 2)
	assert.Equal(t, "2025-2026-ganjil", groups[0].SemesterKey)
	assert.Len(t, groups[0].Notes, 2)
	assert.Equal(t, "2024-2025-genap", groups[1].SemesterKey)
	assert.Len(t, groups[1].Notes, 1)
	assert.True(t, groups[0].From.After(groups[1].From))
}

func TestGroupBySemester_SkipsUndatableNotes(t *testing.T) {
	notes := []*models.ClassNote{
		vaultNote("Kalkulus", time.Time{}),
		vaultNote("Kalkulus", time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)),
	}

	groups := groupBySemester(notes, 8)

	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Notes, 1)
}
