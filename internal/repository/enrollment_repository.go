package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/conference-hotel-booking/internal/model"
)

// EnrollmentRepo provides read access to conference enrollments.
// Enrollments are created by the registration flow outside this
// service; the booking engine only needs to resolve a user to their
// enrollment record.
type EnrollmentRepo struct {
	db *sql.DB
}

// NewEnrollmentRepo returns a new EnrollmentRepo bound to the given database.
func NewEnrollmentRepo(db *sql.DB) *EnrollmentRepo { return &EnrollmentRepo{db: db} }

// GetByUserID returns the enrollment belonging to the given user.
// When the user never enrolled, sql.ErrNoRows is returned.
func (r *EnrollmentRepo) GetByUserID(ctx context.Context, userID uint64) (*model.Enrollment, error) {
	const q = `SELECT id, user_id, created_at, updated_at FROM enrollments WHERE user_id = ? LIMIT 1`
	var e model.Enrollment
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&e.ID, &e.UserID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
