package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lintangpradipa/catatankita/internal/app/models"
	"github.com/lintangpradipa/catatankita/internal/pkg/apperrors"
	"github.com/lintangpradipa/catatankita/internal/pkg/logger"
)

// NoteRevisionRepository handles the append-only revision log.
type NoteRevisionRepository struct {
	DB *pgxpool.Pool
}

// NewNoteRevisionRepository creates a new instance of NoteRevisionRepository.
func NewNoteRevisionRepository(db *pgxpool.Pool) *NoteRevisionRepository {
	return &NoteRevisionRepository{DB: db}
}

var revisionColumns = []string{
	"id", "note_id", "version_no",
	"key_points", "action_items", "questions", "free_text", "mood_focus", "confidence",
	"summary_text", "next_action_text", "risk_hint", "quality_score",
	"change_reason", "created_at",
}

func selectRevisionsQuery() squirrel.SelectBuilder {
	return squirrel.Select(revisionColumns...).
		From("note_revisions").
		PlaceholderFormat(squirrel.Dollar)
}

func scanRevision(row pgx.Row) (*models.NoteRevision, error) {
	var rev models.NoteRevision
	var confidence *string
	err := row.Scan(
		&rev.ID, &rev.NoteID, &rev.VersionNo,
		&rev.KeyPoints, &rev.ActionItems, &rev.Questions, &rev.FreeText, &rev.MoodFocus, &confidence,
		&rev.SummaryText, &rev.NextActionText, &rev.RiskHint, &rev.QualityScore,
		&rev.ChangeReason, &rev.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrRevisionNotFound
		}
		logger.Error().Err(err).Msg("Error scanning note revision")
		return nil, err
	}
	if confidence != nil {
		c := models.Confidence(*confidence)
		rev.Confidence = &c
	}
	return &rev, nil
}

// Append snapshots the note's current content as the next revision. The
// version number is computed inside the caller's transaction, keeping
// per-note sequences gapless and strictly increasing.
func (r *NoteRevisionRepository) Append(ctx context.Context, q Querier, note *models.ClassNote, changeReason string) (*models.NoteRevision, error) {
	var confidence *string
	if note.Confidence != nil {
		c := string(*note.Confidence)
		confidence = &c
	}

	row := q.QueryRow(ctx, `
		INSERT INTO note_revisions (
			id, note_id, version_no,
			key_points, action_items, questions, free_text, mood_focus, confidence,
			summary_text, next_action_text, risk_hint, quality_score,
			change_reason
		)
		SELECT $1, $2, COALESCE(MAX(version_no), 0) + 1,
			$3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12,
			$13
		FROM note_revisions WHERE note_id = $2
		RETURNING id, note_id, version_no,
			key_points, action_items, questions, free_text, mood_focus, confidence,
			summary_text, next_action_text, risk_hint, quality_score,
			change_reason, created_at`,
		uuid.New(), note.ID,
		note.KeyPoints, note.ActionItems, note.Questions, note.FreeText, note.MoodFocus, confidence,
		note.SummaryText, note.NextActionText, note.RiskHint, note.QualityScore,
		changeReason,
	)

	rev, err := scanRevision(row)
	if err != nil {
		logger.Error().Err(err).Str("noteID", note.ID.String()).Msg("Error appending note revision")
		return nil, err
	}
	return rev, nil
}

// ListByNote returns a note's history newest-first, capped at limit rows.
func (r *NoteRevisionRepository) ListByNote(ctx context.Context, noteID uuid.UUID, limit int) ([]*models.NoteRevision, error) {
	if limit <= 0 {
		limit = 120
	}

	sqlStr, args, err := selectRevisionsQuery().
		Where(squirrel.Eq{"note_id": noteID}).
		OrderBy("version_no DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list revisions SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list revisions query")
		return nil, err
	}
	defer rows.Close()

	revisions := make([]*models.NoteRevision, 0)
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, err
		}
		revisions = append(revisions, rev)
	}
	return revisions, rows.Err()
}

// GetByVersion fetches one revision by its per-note version number.
func (r *NoteRevisionRepository) GetByVersion(ctx context.Context, q Querier, noteID uuid.UUID, versionNo int) (*models.NoteRevision, error) {
	sqlStr, args, err := selectRevisionsQuery().
		Where(squirrel.Eq{"note_id": noteID, "version_no": versionNo}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanRevision(q.QueryRow(ctx, sqlStr, args...))
}
