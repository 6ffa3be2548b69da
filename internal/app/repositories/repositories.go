package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx satisfied by both *pgxpool.Pool and pgx.Tx,
// so repository methods can run standalone or inside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories is the container for all repository instances
type Repositories struct {
	NoteRepository        *NoteRepository
	RevisionRepository    *NoteRevisionRepository
	ScheduleRepository    *ScheduleRepository
	PartnershipRepository *PartnershipRepository
	PreferenceRepository  *PreferenceRepository
	WorkloadRepository    *WorkloadRepository
	AuditRepository       *AuditRepository
}

// NewRepositories creates all repositories over one shared pool.
// defaultStartMonth seeds the semester preference fallback.
func NewRepositories(db *pgxpool.Pool, defaultStartMonth int) *Repositories {
	return &Repositories{
		NoteRepository:        NewNoteRepository(db),
		RevisionRepository:    NewNoteRevisionRepository(db),
		ScheduleRepository:    NewScheduleRepository(db),
		PartnershipRepository: NewPartnershipRepository(db),
		PreferenceRepository:  NewPreferenceRepository(db, defaultStartMonth),
		WorkloadRepository:    NewWorkloadRepository(db),
		AuditRepository:       NewAuditRepository(db),
	}
}
