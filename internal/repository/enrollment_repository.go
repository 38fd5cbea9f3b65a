package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-room-booking/internal/model"
)

// ErrEnrollmentNotFound is returned when a user has no enrollment record.
var ErrEnrollmentNotFound = errors.New("enrollment not found")

// EnrollmentRepo reads enrollment records. Enrollments are owned and
// mutated by the registration subsystem; this service only looks them up
// as a prerequisite for booking actions.
type EnrollmentRepo struct {
	db *sql.DB
}

// NewEnrollmentRepo constructs an EnrollmentRepo with the given DB handle.
func NewEnrollmentRepo(db *sql.DB) *EnrollmentRepo { return &EnrollmentRepo{db: db} }

// GetByUserID returns the enrollment for the given user including its
// address columns. It returns ErrEnrollmentNotFound when no row exists.
func (r *EnrollmentRepo) GetByUserID(ctx context.Context, userID uint64) (*model.Enrollment, error) {
	const q = `SELECT id, user_id, name, cpf, street, city, state, postal_code, created_at, updated_at
	           FROM enrollments WHERE user_id = ? LIMIT 1`
	var e model.Enrollment
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&e.ID, &e.UserID, &e.Name, &e.CPF,
		&e.Street, &e.City, &e.State, &e.PostalCode,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}
	return &e, nil
}
