// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// RoomBookedEvent is published when a booking is successfully created.
// It carries enough information for downstream consumers to log, notify,
// or trigger analytics without querying the primary database.
type RoomBookedEvent struct {
	BookingID uint64 `json:"booking_id"`
	UserID    uint64 `json:"user_id"`
	RoomID    uint64 `json:"room_id"`
	BookedAt  string `json:"booked_at"`
}

// RoomChangedEvent is published when an existing booking is moved to a
// different room.
type RoomChangedEvent struct {
	BookingID uint64 `json:"booking_id"`
	UserID    uint64 `json:"user_id"`
	ToRoomID  uint64 `json:"to_room_id"`
	ChangedAt string `json:"changed_at"`
}
