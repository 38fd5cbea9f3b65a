package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-room-booking/internal/model"
)

// ErrHotelNotFound is returned when a hotel lookup fails.
var ErrHotelNotFound = errors.New("hotel not found")

// HotelRepo provides read access to hotels and their rooms for the
// browse endpoints. Room rows are returned together with their current
// occupancy so clients can show availability without extra requests.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo constructs a HotelRepo with the given DB handle.
func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

// List returns all hotels ordered by name.
func (r *HotelRepo) List(ctx context.Context) ([]model.Hotel, error) {
	const q = `SELECT id, name, image, created_at, updated_at FROM hotels ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	hotels := make([]model.Hotel, 0)
	for rows.Next() {
		var h model.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Image, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		hotels = append(hotels, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return hotels, nil
}

// GetByID retrieves a single hotel. It returns ErrHotelNotFound when no
// row is found.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (*model.Hotel, error) {
	const q = `SELECT id, name, image, created_at, updated_at FROM hotels WHERE id = ?`
	var h model.Hotel
	err := r.db.QueryRowContext(ctx, q, id).Scan(&h.ID, &h.Name, &h.Image, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return &h, nil
}

// RoomOccupancy pairs a room with the number of bookings referencing it.
type RoomOccupancy struct {
	Room   model.Room
	Booked int
}

// ListRooms returns all rooms of a hotel with their occupancy counts,
// ordered by room name. A LEFT JOIN keeps rooms with zero bookings in
// the result.
func (r *HotelRepo) ListRooms(ctx context.Context, hotelID uint64) ([]RoomOccupancy, error) {
	const q = `SELECT rm.id, rm.name, rm.capacity, rm.hotel_id, rm.created_at, rm.updated_at,
	                  COUNT(b.id)
	           FROM rooms rm
	           LEFT JOIN bookings b ON b.room_id = rm.id
	           WHERE rm.hotel_id = ?
	           GROUP BY rm.id, rm.name, rm.capacity, rm.hotel_id, rm.created_at, rm.updated_at
	           ORDER BY rm.name`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]RoomOccupancy, 0)
	for rows.Next() {
		var ro RoomOccupancy
		if err := rows.Scan(
			&ro.Room.ID, &ro.Room.Name, &ro.Room.Capacity, &ro.Room.HotelID,
			&ro.Room.CreatedAt, &ro.Room.UpdatedAt, &ro.Booked,
		); err != nil {
			return nil, err
		}
		out = append(out, ro)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
