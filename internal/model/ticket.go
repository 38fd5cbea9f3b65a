package model

import "time"

// Ticket status values. A ticket starts out RESERVED when the attendee
// picks a type and becomes PAID once payment is confirmed by the
// payments subsystem. Only PAID tickets unlock hotel booking.
const (
	TicketStatusReserved = "RESERVED" // tickets.status = 'RESERVED'
	TicketStatusPaid     = "PAID"     // tickets.status = 'PAID'
)

// TicketType categorizes a ticket and decides whether hotel
// accommodation applies at all.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – display name of the type.
//  PriceCents    – ticket price in cents.
//  IsRemote      – true for online attendance; remote tickets can never
//                  book a room.
//  IncludesHotel – true when the type bundles hotel accommodation.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type TicketType struct {
	ID            uint64    // ticket_types.id
	Name          string    // ticket_types.name
	PriceCents    uint32    // ticket_types.price_cents
	IsRemote      bool      // ticket_types.is_remote
	IncludesHotel bool      // ticket_types.includes_hotel
	CreatedAt     time.Time // ticket_types.created_at
	UpdatedAt     time.Time // ticket_types.updated_at
}

// Ticket is the proof of event registration tied to one enrollment. The
// repository always loads the ticket joined with its type so callers can
// evaluate eligibility flags without a second query.
//
// Fields:
//  ID           – primary key identifier.
//  EnrollmentID – owning enrollment (unique).
//  TicketTypeID – reference into ticket_types.
//  Status       – RESERVED or PAID.
//  Type         – joined ticket type row.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Ticket struct {
	ID           uint64     // tickets.id
	EnrollmentID uint64     // tickets.enrollment_id
	TicketTypeID uint64     // tickets.ticket_type_id
	Status       string     // tickets.status
	Type         TicketType // joined from ticket_types
	CreatedAt    time.Time  // tickets.created_at
	UpdatedAt    time.Time  // tickets.updated_at
}
