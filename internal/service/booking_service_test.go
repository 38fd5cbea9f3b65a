package service

import (
	"context"
	"errors"
	"testing"

	"github.com/iliyamo/event-room-booking/internal/model"
	"github.com/iliyamo/event-room-booking/internal/repository"
)

// Hand-rolled store mocks. Each method delegates to a func field so a
// test can override exactly the calls it cares about.

type enrollmentStoreMock struct {
	getByUserID func(ctx context.Context, userID uint64) (*model.Enrollment, error)
}

func (m *enrollmentStoreMock) GetByUserID(ctx context.Context, userID uint64) (*model.Enrollment, error) {
	return m.getByUserID(ctx, userID)
}

type ticketStoreMock struct {
	getByEnrollmentID func(ctx context.Context, enrollmentID uint64) (*model.Ticket, error)
}

func (m *ticketStoreMock) GetByEnrollmentID(ctx context.Context, enrollmentID uint64) (*model.Ticket, error) {
	return m.getByEnrollmentID(ctx, enrollmentID)
}

type roomStoreMock struct {
	getByID       func(ctx context.Context, id uint64) (*model.Room, error)
	countBookings func(ctx context.Context, roomID uint64) (int, error)
}

func (m *roomStoreMock) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	return m.getByID(ctx, id)
}

func (m *roomStoreMock) CountBookings(ctx context.Context, roomID uint64) (int, error) {
	return m.countBookings(ctx, roomID)
}

type bookingStoreMock struct {
	getByUserID func(ctx context.Context, userID uint64) (*model.BookingWithRoom, error)
	create      func(ctx context.Context, userID, roomID uint64) (*model.Booking, error)
	changeRoom  func(ctx context.Context, bookingID, roomID uint64) (*model.Booking, error)
}

func (m *bookingStoreMock) GetByUserID(ctx context.Context, userID uint64) (*model.BookingWithRoom, error) {
	return m.getByUserID(ctx, userID)
}

func (m *bookingStoreMock) Create(ctx context.Context, userID, roomID uint64) (*model.Booking, error) {
	return m.create(ctx, userID, roomID)
}

func (m *bookingStoreMock) ChangeRoom(ctx context.Context, bookingID, roomID uint64) (*model.Booking, error) {
	return m.changeRoom(ctx, bookingID, roomID)
}

// fixtures returns mocks wired for the happy path: user 7 is enrolled
// with a paid in-person hotel ticket, room 3 has capacity 2 with one
// spot taken, and the user holds no booking yet.
func fixtures() (*enrollmentStoreMock, *ticketStoreMock, *roomStoreMock, *bookingStoreMock) {
	enrollments := &enrollmentStoreMock{
		getByUserID: func(ctx context.Context, userID uint64) (*model.Enrollment, error) {
			return &model.Enrollment{ID: 11, UserID: userID}, nil
		},
	}
	tickets := &ticketStoreMock{
		getByEnrollmentID: func(ctx context.Context, enrollmentID uint64) (*model.Ticket, error) {
			return &model.Ticket{
				ID:           21,
				EnrollmentID: enrollmentID,
				Status:       model.TicketStatusPaid,
				Type:         model.TicketType{ID: 1, IsRemote: false, IncludesHotel: true},
			}, nil
		},
	}
	rooms := &roomStoreMock{
		getByID: func(ctx context.Context, id uint64) (*model.Room, error) {
			return &model.Room{ID: id, Name: "101", Capacity: 2, HotelID: 5}, nil
		},
		countBookings: func(ctx context.Context, roomID uint64) (int, error) {
			return 1, nil
		},
	}
	bookings := &bookingStoreMock{
		getByUserID: func(ctx context.Context, userID uint64) (*model.BookingWithRoom, error) {
			return nil, repository.ErrBookingNotFound
		},
		create: func(ctx context.Context, userID, roomID uint64) (*model.Booking, error) {
			return &model.Booking{ID: 42, UserID: userID, RoomID: roomID}, nil
		},
		changeRoom: func(ctx context.Context, bookingID, roomID uint64) (*model.Booking, error) {
			return &model.Booking{ID: bookingID, RoomID: roomID}, nil
		},
	}
	return enrollments, tickets, rooms, bookings
}

func newService(e *enrollmentStoreMock, t *ticketStoreMock, r *roomStoreMock, b *bookingStoreMock) *BookingService {
	return NewBookingService(e, t, r, b)
}

func TestNewBookingServicePanicsOnNilStore(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil store")
		}
	}()
	e, tk, r, _ := fixtures()
	NewBookingService(e, tk, r, nil)
}

func TestGetBookingNoEnrollment(t *testing.T) {
	e, tk, r, b := fixtures()
	e.getByUserID = func(ctx context.Context, userID uint64) (*model.Enrollment, error) {
		return nil, repository.ErrEnrollmentNotFound
	}
	svc := newService(e, tk, r, b)

	if _, err := svc.GetBooking(context.Background(), 7); !errors.Is(err, ErrNoEnrollment) {
		t.Fatalf("got %v, want ErrNoEnrollment", err)
	}
}

func TestGetBookingIneligibleTicket(t *testing.T) {
	cases := []struct {
		name   string
		ticket func(enrollmentID uint64) (*model.Ticket, error)
	}{
		{
			name: "missing ticket",
			ticket: func(uint64) (*model.Ticket, error) {
				return nil, repository.ErrTicketNotFound
			},
		},
		{
			name: "unpaid ticket",
			ticket: func(id uint64) (*model.Ticket, error) {
				return &model.Ticket{
					EnrollmentID: id,
					Status:       model.TicketStatusReserved,
					Type:         model.TicketType{IncludesHotel: true},
				}, nil
			},
		},
		{
			name: "remote ticket",
			ticket: func(id uint64) (*model.Ticket, error) {
				return &model.Ticket{
					EnrollmentID: id,
					Status:       model.TicketStatusPaid,
					Type:         model.TicketType{IsRemote: true, IncludesHotel: true},
				}, nil
			},
		},
		{
			name: "no hotel accommodation",
			ticket: func(id uint64) (*model.Ticket, error) {
				return &model.Ticket{
					EnrollmentID: id,
					Status:       model.TicketStatusPaid,
					Type:         model.TicketType{IncludesHotel: false},
				}, nil
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, tk, r, b := fixtures()
			tk.getByEnrollmentID = func(ctx context.Context, enrollmentID uint64) (*model.Ticket, error) {
				return tc.ticket(enrollmentID)
			}
			svc := newService(e, tk, r, b)

			if _, err := svc.GetBooking(context.Background(), 7); !errors.Is(err, ErrTicketIneligible) {
				t.Fatalf("got %v, want ErrTicketIneligible", err)
			}
		})
	}
}

func TestGetBookingNoBooking(t *testing.T) {
	e, tk, r, b := fixtures()
	svc := newService(e, tk, r, b)

	if _, err := svc.GetBooking(context.Background(), 7); !errors.Is(err, ErrNoBooking) {
		t.Fatalf("got %v, want ErrNoBooking", err)
	}
}

func TestGetBookingReturnsRoomDetails(t *testing.T) {
	e, tk, r, b := fixtures()
	b.getByUserID = func(ctx context.Context, userID uint64) (*model.BookingWithRoom, error) {
		return &model.BookingWithRoom{
			Booking: model.Booking{ID: 42, UserID: userID, RoomID: 3},
			Room:    model.Room{ID: 3, Name: "301", Capacity: 2, HotelID: 5},
		}, nil
	}
	svc := newService(e, tk, r, b)

	view, err := svc.GetBooking(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.BookingID != 42 {
		t.Errorf("booking id = %d, want 42", view.BookingID)
	}
	if view.Room.ID != 3 || view.Room.Name != "301" || view.Room.HotelID != 5 {
		t.Errorf("unexpected room payload: %+v", view.Room)
	}
}

func TestCreateBookingSuccess(t *testing.T) {
	e, tk, r, b := fixtures()
	svc := newService(e, tk, r, b)

	id, err := svc.CreateBooking(context.Background(), 7, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Errorf("booking id = %d, want 42", id)
	}
}

func TestCreateBookingRoomNotFound(t *testing.T) {
	e, tk, r, b := fixtures()
	r.getByID = func(ctx context.Context, id uint64) (*model.Room, error) {
		return nil, repository.ErrRoomNotFound
	}
	svc := newService(e, tk, r, b)

	if _, err := svc.CreateBooking(context.Background(), 7, 99); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("got %v, want ErrRoomNotFound", err)
	}
}

func TestCreateBookingRoomFull(t *testing.T) {
	e, tk, r, b := fixtures()
	r.countBookings = func(ctx context.Context, roomID uint64) (int, error) {
		return 2, nil // capacity is 2
	}
	svc := newService(e, tk, r, b)

	if _, err := svc.CreateBooking(context.Background(), 7, 3); !errors.Is(err, ErrRoomFull) {
		t.Fatalf("got %v, want ErrRoomFull", err)
	}
}

func TestCreateBookingAlreadyBooked(t *testing.T) {
	e, tk, r, b := fixtures()
	b.getByUserID = func(ctx context.Context, userID uint64) (*model.BookingWithRoom, error) {
		return &model.BookingWithRoom{Booking: model.Booking{ID: 42, UserID: userID}}, nil
	}
	svc := newService(e, tk, r, b)

	if _, err := svc.CreateBooking(context.Background(), 7, 3); !errors.Is(err, ErrAlreadyBooked) {
		t.Fatalf("got %v, want ErrAlreadyBooked", err)
	}
}

// The unlocked occupancy read can pass while another request takes the
// last spot. The store's transactional re-check reports that as
// repository.ErrRoomFull, which must surface as the service sentinel.
func TestCreateBookingLosesCapacityRace(t *testing.T) {
	e, tk, r, b := fixtures()
	b.create = func(ctx context.Context, userID, roomID uint64) (*model.Booking, error) {
		return nil, repository.ErrRoomFull
	}
	svc := newService(e, tk, r, b)

	if _, err := svc.CreateBooking(context.Background(), 7, 3); !errors.Is(err, ErrRoomFull) {
		t.Fatalf("got %v, want ErrRoomFull", err)
	}
}

func TestCreateBookingPredicateOrder(t *testing.T) {
	// Both the enrollment and the room lookups would fail; the
	// enrollment error must win because it is checked first.
	e, tk, r, b := fixtures()
	e.getByUserID = func(ctx context.Context, userID uint64) (*model.Enrollment, error) {
		return nil, repository.ErrEnrollmentNotFound
	}
	r.getByID = func(ctx context.Context, id uint64) (*model.Room, error) {
		t.Error("room lookup must not run when enrollment is missing")
		return nil, repository.ErrRoomNotFound
	}
	svc := newService(e, tk, r, b)

	if _, err := svc.CreateBooking(context.Background(), 7, 99); !errors.Is(err, ErrNoEnrollment) {
		t.Fatalf("got %v, want ErrNoEnrollment", err)
	}
}

func TestUpdateBookingSuccess(t *testing.T) {
	e, tk, r, b := fixtures()
	b.getByUserID = func(ctx context.Context, userID uint64) (*model.BookingWithRoom, error) {
		return &model.BookingWithRoom{Booking: model.Booking{ID: 42, UserID: userID, RoomID: 3}}, nil
	}
	var gotRoom uint64
	b.changeRoom = func(ctx context.Context, bookingID, roomID uint64) (*model.Booking, error) {
		gotRoom = roomID
		return &model.Booking{ID: bookingID, RoomID: roomID}, nil
	}
	svc := newService(e, tk, r, b)

	id, err := svc.UpdateBooking(context.Background(), 7, 42, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Errorf("booking id = %d, want 42", id)
	}
	if gotRoom != 4 {
		t.Errorf("moved to room %d, want 4", gotRoom)
	}
}

func TestUpdateBookingNoBooking(t *testing.T) {
	e, tk, r, b := fixtures()
	svc := newService(e, tk, r, b)

	if _, err := svc.UpdateBooking(context.Background(), 7, 42, 3); !errors.Is(err, ErrNoBookingToUpdate) {
		t.Fatalf("got %v, want ErrNoBookingToUpdate", err)
	}
}

func TestUpdateBookingMismatchedID(t *testing.T) {
	e, tk, r, b := fixtures()
	b.getByUserID = func(ctx context.Context, userID uint64) (*model.BookingWithRoom, error) {
		return &model.BookingWithRoom{Booking: model.Booking{ID: 42, UserID: userID}}, nil
	}
	svc := newService(e, tk, r, b)

	if _, err := svc.UpdateBooking(context.Background(), 7, 41, 3); !errors.Is(err, ErrBookingMismatch) {
		t.Fatalf("got %v, want ErrBookingMismatch", err)
	}
}

func TestCreateBookingIntoEmptySingleRoom(t *testing.T) {
	e, tk, r, b := fixtures()
	r.getByID = func(ctx context.Context, id uint64) (*model.Room, error) {
		return &model.Room{ID: id, Name: "701", Capacity: 1, HotelID: 5}, nil
	}
	r.countBookings = func(ctx context.Context, roomID uint64) (int, error) {
		return 0, nil
	}
	b.create = func(ctx context.Context, userID, roomID uint64) (*model.Booking, error) {
		return &model.Booking{ID: 1, UserID: userID, RoomID: roomID}, nil
	}
	svc := newService(e, tk, r, b)

	id, err := svc.CreateBooking(context.Background(), 42, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 1 {
		t.Errorf("booking id = %d, want 1", id)
	}
}

// A stateful booking store backs the full create-read-update-read cycle:
// after creating into roomA the read must show roomA, and after moving
// to roomB the read must show roomB under the same booking id.
func TestBookingRoundTrip(t *testing.T) {
	const (
		userID = 7
		roomA  = 3
		roomB  = 4
	)
	rooms := map[uint64]model.Room{
		roomA: {ID: roomA, Name: "301", Capacity: 2, HotelID: 5},
		roomB: {ID: roomB, Name: "302", Capacity: 2, HotelID: 5},
	}

	e, tk, r, _ := fixtures()
	r.getByID = func(ctx context.Context, id uint64) (*model.Room, error) {
		rm, ok := rooms[id]
		if !ok {
			return nil, repository.ErrRoomNotFound
		}
		return &rm, nil
	}
	r.countBookings = func(ctx context.Context, roomID uint64) (int, error) {
		return 0, nil
	}

	var current *model.Booking
	b := &bookingStoreMock{
		getByUserID: func(ctx context.Context, userID uint64) (*model.BookingWithRoom, error) {
			if current == nil || current.UserID != userID {
				return nil, repository.ErrBookingNotFound
			}
			return &model.BookingWithRoom{Booking: *current, Room: rooms[current.RoomID]}, nil
		},
		create: func(ctx context.Context, userID, roomID uint64) (*model.Booking, error) {
			current = &model.Booking{ID: 42, UserID: userID, RoomID: roomID}
			return current, nil
		},
		changeRoom: func(ctx context.Context, bookingID, roomID uint64) (*model.Booking, error) {
			current.RoomID = roomID
			return current, nil
		},
	}
	svc := newService(e, tk, r, b)
	ctx := context.Background()

	id, err := svc.CreateBooking(ctx, userID, roomA)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	view, err := svc.GetBooking(ctx, userID)
	if err != nil {
		t.Fatalf("get after create: %v", err)
	}
	if view.BookingID != id || view.Room.ID != roomA {
		t.Fatalf("after create: booking %d room %d, want %d and %d",
			view.BookingID, view.Room.ID, id, uint64(roomA))
	}

	if _, err := svc.UpdateBooking(ctx, userID, id, roomB); err != nil {
		t.Fatalf("update: %v", err)
	}

	view, err = svc.GetBooking(ctx, userID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if view.BookingID != id || view.Room.ID != roomB {
		t.Fatalf("after update: booking %d room %d, want %d and %d",
			view.BookingID, view.Room.ID, id, uint64(roomB))
	}
}

func TestUpdateBookingTargetRoomFull(t *testing.T) {
	e, tk, r, b := fixtures()
	r.countBookings = func(ctx context.Context, roomID uint64) (int, error) {
		return 2, nil
	}
	svc := newService(e, tk, r, b)

	if _, err := svc.UpdateBooking(context.Background(), 7, 42, 3); !errors.Is(err, ErrRoomFull) {
		t.Fatalf("got %v, want ErrRoomFull", err)
	}
}
