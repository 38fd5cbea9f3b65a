package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-room-booking/internal/repository"
)

// HotelHandler serves the read-only hotel browse endpoints. Attendees
// use these to pick a room before booking; no mutation happens here.
type HotelHandler struct {
	Hotels *repository.HotelRepo
}

// NewHotelHandler constructs a HotelHandler and panics if the repository
// is nil.
func NewHotelHandler(hotels *repository.HotelRepo) *HotelHandler {
	if hotels == nil {
		panic("nil repository passed to NewHotelHandler")
	}
	return &HotelHandler{Hotels: hotels}
}

type hotelResp struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type roomResp struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Capacity uint32 `json:"capacity"`
	HotelID  uint64 `json:"hotelId"`
	Booked   int    `json:"booked"`
}

type hotelDetailResp struct {
	hotelResp
	Rooms []roomResp `json:"Rooms"`
}

// ListHotels handles GET /v1/hotels and returns all partner hotels.
func (h *HotelHandler) ListHotels(c echo.Context) error {
	hotels, err := h.Hotels.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]hotelResp, 0, len(hotels))
	for _, ht := range hotels {
		out = append(out, hotelResp{
			ID:        ht.ID,
			Name:      ht.Name,
			Image:     ht.Image,
			CreatedAt: ht.CreatedAt.UTC().Format(time.RFC3339),
			UpdatedAt: ht.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// GetHotel handles GET /v1/hotels/:id. It returns the hotel with its
// rooms and each room's current occupancy, 404 when the hotel does not
// exist.
func (h *HotelHandler) GetHotel(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	ctx := c.Request().Context()

	hotel, err := h.Hotels.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	rooms, err := h.Hotels.ListRooms(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	resp := hotelDetailResp{
		hotelResp: hotelResp{
			ID:        hotel.ID,
			Name:      hotel.Name,
			Image:     hotel.Image,
			CreatedAt: hotel.CreatedAt.UTC().Format(time.RFC3339),
			UpdatedAt: hotel.UpdatedAt.UTC().Format(time.RFC3339),
		},
		Rooms: make([]roomResp, 0, len(rooms)),
	}
	for _, ro := range rooms {
		resp.Rooms = append(resp.Rooms, roomResp{
			ID:       ro.Room.ID,
			Name:     ro.Room.Name,
			Capacity: ro.Room.Capacity,
			HotelID:  ro.Room.HotelID,
			Booked:   ro.Booked,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
