// Package service implements the booking eligibility and capacity rules.
// The rules are a short, ordered predicate chain evaluated on every
// operation; collaborators are injected as narrow store interfaces so
// the chain itself stays free of SQL and transport concerns.
package service

import (
	"context"
	"errors"

	"github.com/iliyamo/event-room-booking/internal/model"
	"github.com/iliyamo/event-room-booking/internal/repository"
)

// Sentinel errors returned by the booking service. Handlers translate
// them into HTTP statuses: the *NotFound group maps to 404, the rest of
// the business rejections map to 403.
var (
	// ErrNoEnrollment: the user never enrolled for the event.
	ErrNoEnrollment = errors.New("user has no enrollment")
	// ErrTicketIneligible: ticket missing, unpaid, remote, or without
	// hotel accommodation.
	ErrTicketIneligible = errors.New("ticket not eligible for hotel booking")
	// ErrRoomNotFound: the target room does not exist.
	ErrRoomNotFound = errors.New("room not found")
	// ErrRoomFull: the target room is at capacity.
	ErrRoomFull = errors.New("room is at capacity")
	// ErrAlreadyBooked: the user already holds a booking.
	ErrAlreadyBooked = errors.New("user already has a booking")
	// ErrNoBooking: the user holds no booking to read.
	ErrNoBooking = errors.New("user has no booking")
	// ErrNoBookingToUpdate: an update was requested but the user holds
	// no booking. Reads treat the missing booking as not-found; updates
	// treat it as a business rejection, like the other write rules.
	ErrNoBookingToUpdate = errors.New("user has no booking to update")
	// ErrBookingMismatch: the booking id in the request is not the
	// caller's current booking.
	ErrBookingMismatch = errors.New("booking does not belong to user")
)

// EnrollmentStore looks up a user's event enrollment.
type EnrollmentStore interface {
	GetByUserID(ctx context.Context, userID uint64) (*model.Enrollment, error)
}

// TicketStore looks up the ticket (with its type flags) for an enrollment.
type TicketStore interface {
	GetByEnrollmentID(ctx context.Context, enrollmentID uint64) (*model.Ticket, error)
}

// RoomStore looks up rooms and their current occupancy.
type RoomStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Room, error)
	CountBookings(ctx context.Context, roomID uint64) (int, error)
}

// BookingStore reads and writes bookings. Create and ChangeRoom are
// expected to re-verify room capacity atomically and report
// repository.ErrRoomFull when the write would exceed it.
type BookingStore interface {
	GetByUserID(ctx context.Context, userID uint64) (*model.BookingWithRoom, error)
	Create(ctx context.Context, userID, roomID uint64) (*model.Booking, error)
	ChangeRoom(ctx context.Context, bookingID, roomID uint64) (*model.Booking, error)
}

// BookingService evaluates eligibility and performs booking mutations.
// It is stateless; every dependency is an injected store.
type BookingService struct {
	enrollments EnrollmentStore
	tickets     TicketStore
	rooms       RoomStore
	bookings    BookingStore
}

// NewBookingService constructs a BookingService and panics if any
// dependency is nil.
func NewBookingService(enrollments EnrollmentStore, tickets TicketStore, rooms RoomStore, bookings BookingStore) *BookingService {
	if enrollments == nil || tickets == nil || rooms == nil || bookings == nil {
		panic("nil store passed to NewBookingService")
	}
	return &BookingService{
		enrollments: enrollments,
		tickets:     tickets,
		rooms:       rooms,
		bookings:    bookings,
	}
}

// BookingView is the read projection returned by GetBooking. The JSON
// field names mirror the public API contract.
type BookingView struct {
	BookingID uint64     `json:"bookingId"`
	Room      model.Room `json:"Room"`
}

// GetBooking returns the user's current booking with full room
// attributes. The eligibility chain runs first: no enrollment yields
// ErrNoEnrollment and an ineligible ticket yields ErrTicketIneligible,
// the same rejection the write paths use. A user that passes both but
// holds no booking gets ErrNoBooking.
func (s *BookingService) GetBooking(ctx context.Context, userID uint64) (*BookingView, error) {
	if err := s.checkEligibility(ctx, userID); err != nil {
		return nil, err
	}
	bw, err := s.bookings.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, ErrNoBooking
		}
		return nil, err
	}
	return &BookingView{BookingID: bw.Booking.ID, Room: bw.Room}, nil
}

// CreateBooking books the given room for the user. Predicates run in
// order and short-circuit on the first failure: enrollment, ticket
// eligibility, room existence, room occupancy, no existing booking.
// The store re-checks occupancy under a row lock, so a concurrent
// request racing for the last spot still comes back as ErrRoomFull.
func (s *BookingService) CreateBooking(ctx context.Context, userID, roomID uint64) (uint64, error) {
	if err := s.checkEligibility(ctx, userID); err != nil {
		return 0, err
	}
	if err := s.checkRoomAvailable(ctx, roomID); err != nil {
		return 0, err
	}
	if _, err := s.bookings.GetByUserID(ctx, userID); err == nil {
		return 0, ErrAlreadyBooked
	} else if !errors.Is(err, repository.ErrBookingNotFound) {
		return 0, err
	}
	b, err := s.bookings.Create(ctx, userID, roomID)
	if err != nil {
		return 0, mapRoomWriteErr(err)
	}
	return b.ID, nil
}

// UpdateBooking moves the user's booking to a different room. The
// predicate chain matches CreateBooking except that the user must
// already hold a booking (ErrNoBookingToUpdate otherwise), and the
// supplied booking id must be that booking; a mismatch yields
// ErrBookingMismatch rather than silently updating the caller's own
// record.
func (s *BookingService) UpdateBooking(ctx context.Context, userID, bookingID, roomID uint64) (uint64, error) {
	if err := s.checkEligibility(ctx, userID); err != nil {
		return 0, err
	}
	if err := s.checkRoomAvailable(ctx, roomID); err != nil {
		return 0, err
	}
	bw, err := s.bookings.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return 0, ErrNoBookingToUpdate
		}
		return 0, err
	}
	if bw.Booking.ID != bookingID {
		return 0, ErrBookingMismatch
	}
	b, err := s.bookings.ChangeRoom(ctx, bw.Booking.ID, roomID)
	if err != nil {
		return 0, mapRoomWriteErr(err)
	}
	return b.ID, nil
}

// checkEligibility verifies the enrollment and ticket predicates shared
// by all three operations. Ticket eligibility requires a PAID status on
// an in-person ticket type that includes hotel accommodation.
func (s *BookingService) checkEligibility(ctx context.Context, userID uint64) error {
	enrollment, err := s.enrollments.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrEnrollmentNotFound) {
			return ErrNoEnrollment
		}
		return err
	}
	ticket, err := s.tickets.GetByEnrollmentID(ctx, enrollment.ID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return ErrTicketIneligible
		}
		return err
	}
	if ticket.Status != model.TicketStatusPaid || !ticket.Type.IncludesHotel || ticket.Type.IsRemote {
		return ErrTicketIneligible
	}
	return nil
}

// checkRoomAvailable verifies that the target room exists and has
// occupancy strictly below capacity. The count here is an unlocked read
// used for error classification; the booking store repeats the check
// atomically before writing.
func (s *BookingService) checkRoomAvailable(ctx context.Context, roomID uint64) error {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	booked, err := s.rooms.CountBookings(ctx, roomID)
	if err != nil {
		return err
	}
	if booked >= int(room.Capacity) {
		return ErrRoomFull
	}
	return nil
}

// mapRoomWriteErr translates room errors surfaced by the transactional
// write path into the service sentinels.
func mapRoomWriteErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrRoomFull):
		return ErrRoomFull
	case errors.Is(err, repository.ErrRoomNotFound):
		return ErrRoomNotFound
	default:
		return err
	}
}
