package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-room-booking/internal/queue"
	"github.com/iliyamo/event-room-booking/internal/service"
)

// BookingAPI is the slice of the booking service the handler depends
// on. Narrowing to an interface keeps the handler testable without a
// database.
type BookingAPI interface {
	GetBooking(ctx context.Context, userID uint64) (*service.BookingView, error)
	CreateBooking(ctx context.Context, userID, roomID uint64) (uint64, error)
	UpdateBooking(ctx context.Context, userID, bookingID, roomID uint64) (uint64, error)
}

// BookingHandler exposes the three booking operations over HTTP. All
// methods assume JWT authentication has already run; they return 401
// when the user ID cannot be extracted from the context. After a
// successful write the handler publishes a broker event best-effort.
type BookingHandler struct {
	Service BookingAPI
}

// NewBookingHandler constructs a BookingHandler and panics if the
// service is nil.
func NewBookingHandler(svc BookingAPI) *BookingHandler {
	if svc == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Service: svc}
}

type bookingReq struct {
	RoomID uint64 `json:"roomId"`
}

type bookingIDResp struct {
	BookingID uint64 `json:"bookingId"`
}

// GetBooking handles GET /v1/booking. It returns the caller's current
// booking with full room attributes, 404 when the enrollment or booking
// is missing and 403 when the ticket is ineligible.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	view, err := h.Service.GetBooking(c.Request().Context(), userID)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// CreateBooking handles POST /v1/booking. The body must carry a
// positive roomId; shape failures are rejected with 400 before any
// eligibility check runs.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body bookingReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "roomId is required"})
	}

	bookingID, err := h.Service.CreateBooking(c.Request().Context(), userID, body.RoomID)
	if err != nil {
		return bookingError(c, err)
	}

	go publishBooked(bookingID, userID, body.RoomID)

	return c.JSON(http.StatusOK, bookingIDResp{BookingID: bookingID})
}

// UpdateBooking handles PUT /v1/booking/:bookingId. The path parameter
// must parse as a positive integer and the body must carry a positive
// roomId; both are validated before the service is consulted.
func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := strconv.ParseUint(c.Param("bookingId"), 10, 64)
	if err != nil || bookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var body bookingReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "roomId is required"})
	}

	updatedID, err := h.Service.UpdateBooking(c.Request().Context(), userID, bookingID, body.RoomID)
	if err != nil {
		return bookingError(c, err)
	}

	go publishChanged(updatedID, userID, body.RoomID)

	return c.JSON(http.StatusOK, bookingIDResp{BookingID: updatedID})
}

// bookingError translates service sentinels into transport responses:
// missing entities map to 404, business-rule rejections map to 403, and
// anything unclassified becomes a generic 400. A missing booking is 404
// on the read path but 403 on the update path, where holding a booking
// is one of the write rules.
func bookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNoEnrollment),
		errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, service.ErrNoBooking):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrTicketIneligible),
		errors.Is(err, service.ErrRoomFull),
		errors.Is(err, service.ErrAlreadyBooked),
		errors.Is(err, service.ErrNoBookingToUpdate),
		errors.Is(err, service.ErrBookingMismatch):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "request failed"})
	}
}

// publishBooked emits a RoomBookedEvent with a fresh context; the
// request context is gone by the time the goroutine runs. Errors are
// already logged by the publisher and deliberately dropped here.
func publishBooked(bookingID, userID, roomID uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = queue.PublishRoomBooked(ctx, queue.RoomBookedEvent{
		BookingID: bookingID,
		UserID:    userID,
		RoomID:    roomID,
		BookedAt:  time.Now().UTC().Format(time.RFC3339),
	})
}

func publishChanged(bookingID, userID, roomID uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = queue.PublishRoomChanged(ctx, queue.RoomChangedEvent{
		BookingID: bookingID,
		UserID:    userID,
		ToRoomID:  roomID,
		ChangedAt: time.Now().UTC().Format(time.RFC3339),
	})
}
