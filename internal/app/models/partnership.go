package models

import (
	"time"

	"github.com/google/uuid"
)

// Partnership pairs a user with the partner they share their vault with.
// Each of the two users carries their own row pointing at the other.
type Partnership struct {
	UserID    uuid.UUID `db:"user_id" json:"userId"`
	PartnerID uuid.UUID `db:"partner_id" json:"partnerId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// SemesterPreference stores the month a user's academic year starts in.
type SemesterPreference struct {
	UserID         uuid.UUID `db:"user_id" json:"userId"`
	YearStartMonth int       `db:"academic_year_start_month" json:"academicYearStartMonth"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}
