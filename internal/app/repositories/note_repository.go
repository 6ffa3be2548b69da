package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lintangpradipa/catatankita/internal/app/models"
	"github.com/lintangpradipa/catatankita/internal/pkg/apperrors"
	"github.com/lintangpradipa/catatankita/internal/pkg/helpers"
	"github.com/lintangpradipa/catatankita/internal/pkg/logger"
)

// ScopeFilter is one visible owner, with their trash included or not.
type ScopeFilter struct {
	OwnerID        uuid.UUID
	IncludeTrashed bool
}

// NoteListParams holds typed filter predicates and pagination for listing
// notes. An empty Scope matches nothing.
type NoteListParams struct {
	Scope            []ScopeFilter
	Statuses         []models.ArchiveStatus
	ScheduleID       *uuid.UUID
	Subject          string
	Keyword          string
	From             *time.Time
	To               *time.Time
	RequireQuestions bool
	PinnedFirst      bool
	SortBy           string
	SortOrder        string
	Page             int
	Size             int
}

// NoteRepository handles database operations for ClassNote.
type NoteRepository struct {
	DB *pgxpool.Pool
}

// NewNoteRepository creates a new instance of NoteRepository.
func NewNoteRepository(db *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{DB: db}
}

var noteColumns = []string{
	"id", "owner_user_id", "schedule_id", "class_date", "subject",
	"key_points", "action_items", "questions", "free_text", "mood_focus", "confidence",
	"summary_text", "next_action_text", "risk_hint", "quality_score", "is_minimum_completed",
	"archive_status", "archived_at", "pinned", "deleted_at", "deleted_by", "purge_after",
	"updated_by", "created_at", "updated_at",
}

func selectNotesQuery() squirrel.SelectBuilder {
	return squirrel.Select(noteColumns...).
		From("class_notes").
		PlaceholderFormat(squirrel.Dollar)
}

// scanClassNote scans a row into a ClassNote struct.
func scanClassNote(row pgx.Row) (*models.ClassNote, error) {
	var note models.ClassNote
	var confidence *string
	err := row.Scan(
		&note.ID, &note.OwnerUserID, &note.ScheduleID, &note.ClassDate, &note.Subject,
		&note.KeyPoints, &note.ActionItems, &note.Questions, &note.FreeText, &note.MoodFocus, &confidence,
		&note.SummaryText, &note.NextActionText, &note.RiskHint, &note.QualityScore, &note.IsMinimumCompleted,
		&note.ArchiveStatus, &note.ArchivedAt, &note.Pinned, &note.DeletedAt, &note.DeletedBy, &note.PurgeAfter,
		&note.UpdatedBy, &note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNoteNotFound
		}
		logger.Error().Err(err).Msg("Error scanning class note")
		return nil, err
	}
	if confidence != nil {
		c := models.Confidence(*confidence)
		note.Confidence = &c
	}
	return &note, nil
}

// Upsert inserts the note or, when the (owner, schedule, class date) triple
// already exists, updates its content and derived fields. Lifecycle columns
// are left untouched on conflict. Returns the stored row.
func (r *NoteRepository) Upsert(ctx context.Context, q Querier, note *models.ClassNote) (*models.ClassNote, error) {
	var confidence *string
	if note.Confidence != nil {
		c := string(*note.Confidence)
		confidence = &c
	}

	sqlStr, args, err := squirrel.Insert("class_notes").
		Columns(
			"id", "owner_user_id", "schedule_id", "class_date", "subject",
			"key_points", "action_items", "questions", "free_text", "mood_focus", "confidence",
			"summary_text", "next_action_text", "risk_hint", "quality_score", "is_minimum_completed",
			"archive_status", "pinned", "updated_by",
		).
		Values(
			note.ID, note.OwnerUserID, note.ScheduleID, note.ClassDate, note.Subject,
			note.KeyPoints, note.ActionItems, note.Questions, note.FreeText, note.MoodFocus, confidence,
			note.SummaryText, note.NextActionText, note.RiskHint, note.QualityScore, note.IsMinimumCompleted,
			string(models.StatusActive), note.Pinned, note.UpdatedBy,
		).
		Suffix(`ON CONFLICT (owner_user_id, schedule_id, class_date) DO UPDATE SET
			subject = EXCLUDED.subject,
			key_points = EXCLUDED.key_points,
			action_items = EXCLUDED.action_items,
			questions = EXCLUDED.questions,
			free_text = EXCLUDED.free_text,
			mood_focus = EXCLUDED.mood_focus,
			confidence = EXCLUDED.confidence,
			summary_text = EXCLUDED.summary_text,
			next_action_text = EXCLUDED.next_action_text,
			risk_hint = EXCLUDED.risk_hint,
			quality_score = EXCLUDED.quality_score,
			is_minimum_completed = EXCLUDED.is_minimum_completed,
			updated_by = EXCLUDED.updated_by,
			updated_at = now()
		RETURNING ` + columnList()).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building upsert class note SQL")
		return nil, err
	}

	return scanClassNote(q.QueryRow(ctx, sqlStr, args...))
}

// GetByID retrieves a single note.
func (r *NoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ClassNote, error) {
	sqlStr, args, err := selectNotesQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get note by ID SQL")
		return nil, err
	}
	return scanClassNote(r.DB.QueryRow(ctx, sqlStr, args...))
}

// GetByIDForUpdate locks the note row for the duration of the transaction.
func (r *NoteRepository) GetByIDForUpdate(ctx context.Context, tx Querier, id uuid.UUID) (*models.ClassNote, error) {
	sqlStr, args, err := selectNotesQuery().Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get note for update SQL")
		return nil, err
	}
	return scanClassNote(tx.QueryRow(ctx, sqlStr, args...))
}

// GetByKey fetches a note by its natural key.
func (r *NoteRepository) GetByKey(ctx context.Context, owner, scheduleID uuid.UUID, classDate time.Time) (*models.ClassNote, error) {
	sqlStr, args, err := selectNotesQuery().
		Where(squirrel.Eq{"owner_user_id": owner, "schedule_id": scheduleID, "class_date": classDate}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanClassNote(r.DB.QueryRow(ctx, sqlStr, args...))
}

// applyFilters adds the typed predicates shared by the list and count
// queries. The scope expands to one predicate per visible owner; owners
// whose trash is hidden get the extra status exclusion.
func applyFilters(b squirrel.SelectBuilder, p NoteListParams) squirrel.SelectBuilder {
	scope := squirrel.Or{}
	for _, m := range p.Scope {
		if m.IncludeTrashed {
			scope = append(scope, squirrel.Eq{"owner_user_id": m.OwnerID})
		} else {
			scope = append(scope, squirrel.And{
				squirrel.Eq{"owner_user_id": m.OwnerID},
				squirrel.NotEq{"archive_status": string(models.StatusTrashed)},
			})
		}
	}
	b = b.Where(scope)

	if len(p.Statuses) > 0 {
		statuses := make([]string, len(p.Statuses))
		for i, s := range p.Statuses {
			statuses[i] = string(s)
		}
		b = b.Where(squirrel.Eq{"archive_status": statuses})
	}
	if p.ScheduleID != nil {
		b = b.Where(squirrel.Eq{"schedule_id": *p.ScheduleID})
	}
	if p.Subject != "" {
		b = b.Where(squirrel.ILike{"subject": "%" + p.Subject + "%"})
	}
	if p.Keyword != "" {
		kw := "%" + p.Keyword + "%"
		b = b.Where(squirrel.Or{
			squirrel.ILike{"key_points": kw},
			squirrel.ILike{"action_items": kw},
			squirrel.ILike{"questions": kw},
			squirrel.ILike{"free_text": kw},
			squirrel.ILike{"subject": kw},
		})
	}
	if p.From != nil {
		b = b.Where(squirrel.GtOrEq{"class_date": *p.From})
	}
	if p.To != nil {
		b = b.Where(squirrel.LtOrEq{"class_date": *p.To})
	}
	if p.RequireQuestions {
		b = b.Where(squirrel.Expr("btrim(questions) <> ''"))
	}
	return b
}

var noteSortColumns = map[string]string{
	"classDate": "class_date",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"quality":   "quality_score",
	"subject":   "subject",
}

// List retrieves a filtered, sorted, paginated page of notes plus the total
// match count.
func (r *NoteRepository) List(ctx context.Context, p NoteListParams) ([]*models.ClassNote, int64, error) {
	if len(p.Scope) == 0 {
		return []*models.ClassNote{}, 0, nil
	}

	countBuilder := applyFilters(
		squirrel.Select("count(*)").From("class_notes").PlaceholderFormat(squirrel.Dollar), p)
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count notes SQL")
		return nil, 0, err
	}

	var total int64
	if err := r.DB.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count notes query")
		return nil, 0, err
	}
	if total == 0 {
		return []*models.ClassNote{}, 0, nil
	}

	sortBy := "class_date"
	if col, ok := noteSortColumns[p.SortBy]; ok {
		sortBy = col
	}
	sortOrder := "DESC"
	if p.SortOrder == "asc" || p.SortOrder == "ASC" {
		sortOrder = "ASC"
	}

	offset, limit := helpers.CalculateOffsetLimit(p.Page, p.Size)

	b := applyFilters(selectNotesQuery(), p)
	if p.PinnedFirst {
		b = b.OrderBy("pinned DESC")
	}
	b = b.OrderBy(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(offset)

	sqlStr, args, err := b.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list notes SQL")
		return nil, 0, err
	}

	notes, err := r.queryNotes(ctx, sqlStr, args)
	if err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

// ListCapped fetches every match up to cap rows, newest first. Used for
// insight aggregation and grouping, which need the whole filtered set.
func (r *NoteRepository) ListCapped(ctx context.Context, p NoteListParams, cap int) ([]*models.ClassNote, error) {
	if len(p.Scope) == 0 {
		return []*models.ClassNote{}, nil
	}
	if cap <= 0 {
		cap = 200
	}

	b := applyFilters(selectNotesQuery(), p).
		OrderBy("class_date DESC", "created_at DESC").
		Limit(uint64(cap))
	sqlStr, args, err := b.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building capped list SQL")
		return nil, err
	}
	return r.queryNotes(ctx, sqlStr, args)
}

// ListClassDates returns the class dates of an owner's non-trashed notes,
// optionally narrowed by subject. Used for bucketing notes per semester.
func (r *NoteRepository) ListClassDates(ctx context.Context, owner uuid.UUID, subject string) ([]time.Time, error) {
	b := squirrel.Select("class_date").
		From("class_notes").
		Where(squirrel.Eq{"owner_user_id": owner}).
		Where(squirrel.NotEq{"archive_status": string(models.StatusTrashed)}).
		OrderBy("class_date DESC").
		PlaceholderFormat(squirrel.Dollar)
	if subject != "" {
		b = b.Where(squirrel.ILike{"subject": "%" + subject + "%"})
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing class dates query")
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// UpdateLifecycle writes the lifecycle and derived columns of a note back to
// the database. Runs inside the caller's transaction.
func (r *NoteRepository) UpdateLifecycle(ctx context.Context, q Querier, note *models.ClassNote) error {
	var confidence *string
	if note.Confidence != nil {
		c := string(*note.Confidence)
		confidence = &c
	}

	sqlStr, args, err := squirrel.Update("class_notes").
		Set("key_points", note.KeyPoints).
		Set("action_items", note.ActionItems).
		Set("questions", note.Questions).
		Set("free_text", note.FreeText).
		Set("mood_focus", note.MoodFocus).
		Set("confidence", confidence).
		Set("summary_text", note.SummaryText).
		Set("next_action_text", note.NextActionText).
		Set("risk_hint", note.RiskHint).
		Set("quality_score", note.QualityScore).
		Set("is_minimum_completed", note.IsMinimumCompleted).
		Set("archive_status", string(note.ArchiveStatus)).
		Set("archived_at", note.ArchivedAt).
		Set("pinned", note.Pinned).
		Set("deleted_at", note.DeletedAt).
		Set("deleted_by", note.DeletedBy).
		Set("purge_after", note.PurgeAfter).
		Set("updated_by", note.UpdatedBy).
		Set("updated_at", note.UpdatedAt).
		Where(squirrel.Eq{"id": note.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update note lifecycle SQL")
		return err
	}

	cmdTag, err := q.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update note lifecycle query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}
	return nil
}

// Delete removes a note row. Its revisions cascade away with it.
func (r *NoteRepository) Delete(ctx context.Context, q Querier, id uuid.UUID) error {
	sqlStr, args, err := squirrel.Delete("class_notes").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	cmdTag, err := q.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete note query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}
	return nil
}

// AutoArchiveSweep archives every active, minimum-completed note whose
// session occurrence is over. The conditional update only touches rows
// still active, so re-running is a no-op.
func (r *NoteRepository) AutoArchiveSweep(ctx context.Context, now time.Time) (int64, error) {
	today := helpers.StartOfDay(now)
	clock := now.Format("15:04")

	cmdTag, err := r.DB.Exec(ctx, `
		UPDATE class_notes n
		SET archive_status = 'archived', archived_at = $1, updated_at = $1
		FROM schedule_sessions s
		WHERE s.id = n.schedule_id
		  AND n.archive_status = 'active'
		  AND n.is_minimum_completed
		  AND (n.class_date < $2 OR (n.class_date = $2 AND s.end_time <= $3))`,
		now, today, clock)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing auto-archive sweep")
		return 0, err
	}
	return cmdTag.RowsAffected(), nil
}

// PurgeSweep hard-deletes trashed notes whose retention window has elapsed.
// Revisions cascade through the foreign key.
func (r *NoteRepository) PurgeSweep(ctx context.Context, now time.Time) (int64, error) {
	cmdTag, err := r.DB.Exec(ctx,
		`DELETE FROM class_notes WHERE archive_status = 'trashed' AND purge_after < $1`, now)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing purge sweep")
		return 0, err
	}
	return cmdTag.RowsAffected(), nil
}

func (r *NoteRepository) queryNotes(ctx context.Context, sqlStr string, args []any) ([]*models.ClassNote, error) {
	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing notes query")
		return nil, err
	}
	defer rows.Close()

	notes := make([]*models.ClassNote, 0)
	for rows.Next() {
		note, err := scanClassNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating note rows")
		return nil, fmt.Errorf("database iteration error: %w", err)
	}
	return notes, nil
}

func columnList() string {
	return strings.Join(noteColumns, ", ")
}
