package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-room-booking/internal/model"
)

// ErrRoomNotFound is returned when a room lookup fails.
var ErrRoomNotFound = errors.New("room not found")

// RoomRepo provides read access to rooms and their occupancy. Rooms are
// managed by the hotel administration subsystem; this service never
// creates or mutates them.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// GetByID retrieves a room by its ID. It returns ErrRoomNotFound when no
// row is found.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT id, name, capacity, hotel_id, created_at, updated_at FROM rooms WHERE id = ?`
	var rm model.Room
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&rm.ID, &rm.Name, &rm.Capacity, &rm.HotelID, &rm.CreatedAt, &rm.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &rm, nil
}

// CountBookings returns the number of bookings currently referencing the
// given room. This read is not locked; the booking repository re-checks
// occupancy under a row lock before writing.
func (r *RoomRepo) CountBookings(ctx context.Context, roomID uint64) (int, error) {
	const q = `SELECT COUNT(*) FROM bookings WHERE room_id = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, roomID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
