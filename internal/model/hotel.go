package model

import "time"

// Hotel represents a partner hotel offering rooms to attendees.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – hotel display name.
//  Image     – URL of the hotel's cover image.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Hotel struct {
	ID        uint64    // hotels.id
	Name      string    // hotels.name
	Image     string    // hotels.image
	CreatedAt time.Time // hotels.created_at
	UpdatedAt time.Time // hotels.updated_at
}

// Room is a bookable unit within a hotel. Capacity is a fixed positive
// integer; the number of bookings referencing a room must never exceed it.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – room label (e.g. "101").
//  Capacity  – maximum number of simultaneous bookings.
//  HotelID   – hotel this room belongs to.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Room struct {
	ID        uint64    `json:"id"`        // rooms.id
	Name      string    `json:"name"`      // rooms.name
	Capacity  uint32    `json:"capacity"`  // rooms.capacity
	HotelID   uint64    `json:"hotelId"`   // rooms.hotel_id
	CreatedAt time.Time `json:"createdAt"` // rooms.created_at
	UpdatedAt time.Time `json:"updatedAt"` // rooms.updated_at
}
