package repositories

import (
	"strings"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lintangpradipa/catatankita/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildListSQL(t *testing.T, p NoteListParams) (string, []interface{}) {
	t.Helper()
	sqlStr, args, err := applyFilters(
		squirrel.Select("id").From("class_notes").PlaceholderFormat(squirrel.Dollar), p).ToSql()
	require.NoError(t, err)
	return sqlStr, args
}

func TestApplyFilters_PartnerScopeExcludesTrash(t *testing.T) {
	requester := uuid.New()
	partner := uuid.New()

	sqlStr, args := buildListSQL(t, NoteListParams{
		Scope: []ScopeFilter{
			{OwnerID: requester, IncludeTrashed: true},
			{OwnerID: partner, IncludeTrashed: false},
		},
	})

	// Exactly one status exclusion, attached to the partner's predicate.
	assert.Equal(t, 1, strings.Count(sqlStr, "archive_status <>"))
	assert.Contains(t, args, requester)
	assert.Contains(t, args, partner)
	assert.Contains(t, args, string(models.StatusTrashed))
}

func TestApplyFilters_OwnScopeKeepsTrashVisible(t *testing.T) {
	requester := uuid.New()

	sqlStr, args := buildListSQL(t, NoteListParams{
		Scope: []ScopeFilter{{OwnerID: requester, IncludeTrashed: true}},
	})

	assert.NotContains(t, sqlStr, "archive_status <>")
	assert.NotContains(t, args, string(models.StatusTrashed))
}

func TestApplyFilters_StatusAndRangePredicates(t *testing.T) {
	requester := uuid.New()

	sqlStr, args := buildListSQL(t, NoteListParams{
		Scope:    []ScopeFilter{{OwnerID: requester, IncludeTrashed: true}},
		Statuses: []models.ArchiveStatus{models.StatusArchived, models.StatusTrashed},
		Subject:  "kalkulus",
		Keyword:  "limit",
	})

	assert.Contains(t, sqlStr, "archive_status IN")
	assert.Contains(t, sqlStr, "subject ILIKE")
	assert.Contains(t, args, "%kalkulus%")
	assert.Contains(t, args, "%limit%")
}
