package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-room-booking/internal/model"
)

// ErrTicketNotFound is returned when an enrollment has no ticket.
var ErrTicketNotFound = errors.New("ticket not found")

// TicketRepo reads tickets joined with their type. Tickets are issued
// and paid through other subsystems; the booking service only evaluates
// their status and type flags.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo constructs a TicketRepo with the given DB handle.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// GetByEnrollmentID returns the ticket for the given enrollment with the
// ticket type row populated, or ErrTicketNotFound when no ticket exists.
// The join keeps eligibility evaluation to a single round trip.
func (r *TicketRepo) GetByEnrollmentID(ctx context.Context, enrollmentID uint64) (*model.Ticket, error) {
	const q = `SELECT t.id, t.enrollment_id, t.ticket_type_id, t.status, t.created_at, t.updated_at,
	                  tt.id, tt.name, tt.price_cents, tt.is_remote, tt.includes_hotel, tt.created_at, tt.updated_at
	           FROM tickets t
	           JOIN ticket_types tt ON tt.id = t.ticket_type_id
	           WHERE t.enrollment_id = ? LIMIT 1`
	var t model.Ticket
	err := r.db.QueryRowContext(ctx, q, enrollmentID).Scan(
		&t.ID, &t.EnrollmentID, &t.TicketTypeID, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		&t.Type.ID, &t.Type.Name, &t.Type.PriceCents, &t.Type.IsRemote, &t.Type.IncludesHotel,
		&t.Type.CreatedAt, &t.Type.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &t, nil
}
