package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-room-booking/internal/model"
	"github.com/iliyamo/event-room-booking/internal/service"
)

type bookingAPIMock struct {
	getBooking    func(ctx context.Context, userID uint64) (*service.BookingView, error)
	createBooking func(ctx context.Context, userID, roomID uint64) (uint64, error)
	updateBooking func(ctx context.Context, userID, bookingID, roomID uint64) (uint64, error)
}

func (m *bookingAPIMock) GetBooking(ctx context.Context, userID uint64) (*service.BookingView, error) {
	return m.getBooking(ctx, userID)
}

func (m *bookingAPIMock) CreateBooking(ctx context.Context, userID, roomID uint64) (uint64, error) {
	return m.createBooking(ctx, userID, roomID)
}

func (m *bookingAPIMock) UpdateBooking(ctx context.Context, userID, bookingID, roomID uint64) (uint64, error) {
	return m.updateBooking(ctx, userID, bookingID, roomID)
}

// newBookingCtx builds an echo context carrying the authenticated user
// id the way the JWT middleware would set it.
func newBookingCtx(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(7))
	return c, rec
}

func TestGetBookingReturnsPayload(t *testing.T) {
	mock := &bookingAPIMock{
		getBooking: func(ctx context.Context, userID uint64) (*service.BookingView, error) {
			if userID != 7 {
				t.Errorf("user id = %d, want 7", userID)
			}
			return &service.BookingView{
				BookingID: 42,
				Room:      model.Room{ID: 3, Name: "301", Capacity: 2, HotelID: 5},
			}, nil
		},
	}
	h := NewBookingHandler(mock)
	c, rec := newBookingCtx(t, http.MethodGet, "/v1/booking", "")

	if err := h.GetBooking(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got struct {
		BookingID uint64 `json:"bookingId"`
		Room      struct {
			ID       uint64 `json:"id"`
			Name     string `json:"name"`
			Capacity uint32 `json:"capacity"`
			HotelID  uint64 `json:"hotelId"`
		} `json:"Room"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.BookingID != 42 || got.Room.ID != 3 || got.Room.Name != "301" {
		t.Errorf("unexpected payload: %+v", got)
	}
}

func TestGetBookingMissingUser(t *testing.T) {
	h := NewBookingHandler(&bookingAPIMock{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/booking", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec) // no user_id set

	if err := h.GetBooking(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestBookingErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"no enrollment", service.ErrNoEnrollment, http.StatusNotFound},
		{"no booking", service.ErrNoBooking, http.StatusNotFound},
		{"room not found", service.ErrRoomNotFound, http.StatusNotFound},
		{"ineligible ticket", service.ErrTicketIneligible, http.StatusForbidden},
		{"room full", service.ErrRoomFull, http.StatusForbidden},
		{"already booked", service.ErrAlreadyBooked, http.StatusForbidden},
		{"no booking to update", service.ErrNoBookingToUpdate, http.StatusForbidden},
		{"booking mismatch", service.ErrBookingMismatch, http.StatusForbidden},
		{"unclassified", context.DeadlineExceeded, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &bookingAPIMock{
				getBooking: func(ctx context.Context, userID uint64) (*service.BookingView, error) {
					return nil, tc.err
				},
			}
			h := NewBookingHandler(mock)
			c, rec := newBookingCtx(t, http.MethodGet, "/v1/booking", "")

			if err := h.GetBooking(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("status = %d, want %d", rec.Code, tc.code)
			}
		})
	}
}

func TestCreateBookingSuccessShape(t *testing.T) {
	mock := &bookingAPIMock{
		createBooking: func(ctx context.Context, userID, roomID uint64) (uint64, error) {
			if roomID != 3 {
				t.Errorf("room id = %d, want 3", roomID)
			}
			return 42, nil
		},
	}
	h := NewBookingHandler(mock)
	c, rec := newBookingCtx(t, http.MethodPost, "/v1/booking", `{"roomId":3}`)

	if err := h.CreateBooking(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got map[string]uint64
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got["bookingId"] != 42 {
		t.Errorf("bookingId = %d, want 42", got["bookingId"])
	}
}

func TestCreateBookingRejectsBadBody(t *testing.T) {
	called := false
	mock := &bookingAPIMock{
		createBooking: func(ctx context.Context, userID, roomID uint64) (uint64, error) {
			called = true
			return 0, nil
		},
	}
	h := NewBookingHandler(mock)

	for _, body := range []string{`{}`, `{"roomId":0}`, `not json`} {
		c, rec := newBookingCtx(t, http.MethodPost, "/v1/booking", body)
		if err := h.CreateBooking(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
	if called {
		t.Error("service must not run for malformed bodies")
	}
}

func TestUpdateBookingParsesPathParam(t *testing.T) {
	mock := &bookingAPIMock{
		updateBooking: func(ctx context.Context, userID, bookingID, roomID uint64) (uint64, error) {
			if bookingID != 42 || roomID != 4 {
				t.Errorf("got booking %d room %d, want 42 and 4", bookingID, roomID)
			}
			return 42, nil
		},
	}
	h := NewBookingHandler(mock)
	c, rec := newBookingCtx(t, http.MethodPut, "/v1/booking/42", `{"roomId":4}`)
	c.SetParamNames("bookingId")
	c.SetParamValues("42")

	if err := h.UpdateBooking(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

// Updating without an existing booking is a business rejection, not a
// missing resource: the response must be 403, unlike the read path
// where a missing booking is 404.
func TestUpdateBookingWithoutBookingIsForbidden(t *testing.T) {
	mock := &bookingAPIMock{
		updateBooking: func(ctx context.Context, userID, bookingID, roomID uint64) (uint64, error) {
			return 0, service.ErrNoBookingToUpdate
		},
	}
	h := NewBookingHandler(mock)
	c, rec := newBookingCtx(t, http.MethodPut, "/v1/booking/42", `{"roomId":4}`)
	c.SetParamNames("bookingId")
	c.SetParamValues("42")

	if err := h.UpdateBooking(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestUpdateBookingRejectsBadID(t *testing.T) {
	h := NewBookingHandler(&bookingAPIMock{})

	for _, id := range []string{"abc", "0", "-1", ""} {
		c, rec := newBookingCtx(t, http.MethodPut, "/v1/booking/"+id, `{"roomId":4}`)
		c.SetParamNames("bookingId")
		c.SetParamValues(id)

		if err := h.UpdateBooking(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("id %q: status = %d, want 400", id, rec.Code)
		}
	}
}
