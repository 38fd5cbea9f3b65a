package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-room-booking/internal/model"
)

// ErrBookingNotFound is returned when a booking lookup fails.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepo persists bookings. Writes run inside a transaction that
// locks the target room row and re-checks occupancy, so the capacity
// invariant holds even when two requests race for the last spot. The
// booking service performs its own ordered eligibility reads first; the
// transaction here is the enforcement boundary, not the classifier.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo with the given DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// GetByUserID returns the user's booking joined with its room, or
// ErrBookingNotFound when the user holds none. A user has at most one
// booking, enforced by the service on create.
func (r *BookingRepo) GetByUserID(ctx context.Context, userID uint64) (*model.BookingWithRoom, error) {
	const q = `SELECT b.id, b.user_id, b.room_id, b.created_at, b.updated_at,
	                  rm.id, rm.name, rm.capacity, rm.hotel_id, rm.created_at, rm.updated_at
	           FROM bookings b
	           JOIN rooms rm ON rm.id = b.room_id
	           WHERE b.user_id = ? LIMIT 1`
	var bw model.BookingWithRoom
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&bw.Booking.ID, &bw.Booking.UserID, &bw.Booking.RoomID,
		&bw.Booking.CreatedAt, &bw.Booking.UpdatedAt,
		&bw.Room.ID, &bw.Room.Name, &bw.Room.Capacity, &bw.Room.HotelID,
		&bw.Room.CreatedAt, &bw.Room.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &bw, nil
}

// Create inserts a booking for the user after re-checking the room's
// occupancy under a row lock. It returns ErrRoomNotFound when the room
// vanished between the service's read and this write, and ErrRoomFull
// when the lock reveals the room is already at capacity.
func (r *BookingRepo) Create(ctx context.Context, userID, roomID uint64) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := checkOccupancyTx(ctx, tx, roomID); err != nil {
		return nil, err
	}

	const qInsert = `INSERT INTO bookings (user_id, room_id) VALUES (?, ?)`
	res, err := tx.ExecContext(ctx, qInsert, userID, roomID)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	b, err := selectBookingTx(ctx, tx, uint64(id))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return b, nil
}

// ChangeRoom points an existing booking at a new room, re-checking the
// target room's occupancy under a row lock. It returns
// ErrBookingNotFound when the booking does not exist, plus the same room
// errors as Create.
func (r *BookingRepo) ChangeRoom(ctx context.Context, bookingID, roomID uint64) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := checkOccupancyTx(ctx, tx, roomID); err != nil {
		return nil, err
	}

	const qUpdate = `UPDATE bookings SET room_id = ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, qUpdate, roomID, bookingID); err != nil {
		return nil, err
	}

	b, err := selectBookingTx(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return b, nil
}

// checkOccupancyTx locks the room row and verifies that its booking
// count is strictly below capacity. The FOR UPDATE lock serializes
// concurrent writers targeting the same room.
func checkOccupancyTx(ctx context.Context, tx *sql.Tx, roomID uint64) error {
	const qRoom = `SELECT capacity FROM rooms WHERE id = ? FOR UPDATE`
	var capacity uint32
	if err := tx.QueryRowContext(ctx, qRoom, roomID).Scan(&capacity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRoomNotFound
		}
		return err
	}
	const qCount = `SELECT COUNT(*) FROM bookings WHERE room_id = ?`
	var booked uint32
	if err := tx.QueryRowContext(ctx, qCount, roomID).Scan(&booked); err != nil {
		return err
	}
	if booked >= capacity {
		return ErrRoomFull
	}
	return nil
}

// selectBookingTx reads a booking row back inside the transaction so the
// returned struct carries database-generated timestamps.
func selectBookingTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
	const q = `SELECT id, user_id, room_id, created_at, updated_at FROM bookings WHERE id = ?`
	var b model.Booking
	err := tx.QueryRowContext(ctx, q, id).Scan(&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}
