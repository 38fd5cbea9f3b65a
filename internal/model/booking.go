package model

import "time"

// Booking links one user to one room. Business rule (enforced by the
// booking service, not a storage constraint): a user holds at most one
// booking at any time. Bookings are reassigned to a different room on
// update and are never deleted by this service.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who holds the booking.
//  RoomID    – room the booking points at.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp (bumped on room change).
type Booking struct {
	ID        uint64    // bookings.id
	UserID    uint64    // bookings.user_id
	RoomID    uint64    // bookings.room_id
	CreatedAt time.Time // bookings.created_at
	UpdatedAt time.Time // bookings.updated_at
}

// BookingWithRoom pairs a booking with its room row for read paths that
// need both in one lookup.
type BookingWithRoom struct {
	Booking Booking
	Room    Room
}
