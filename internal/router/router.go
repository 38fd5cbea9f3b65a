package router // package router wires HTTP paths to their handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-room-booking/internal/handler"
	"github.com/iliyamo/event-room-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check used by load balancers and
// monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Unauthenticated
// operations (register, login, refresh, logout) live under /v1/auth.
// Logout takes the refresh token in the JSON body and revokes it, so no
// access token is needed to call it.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)
}

// RegisterBooking registers the room-booking endpoints under /v1. Every
// route in the group runs the JWTAuth middleware first, so handlers can
// rely on "user_id" being present in the request context.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))

	g.GET("/booking", b.GetBooking)
	g.POST("/booking", b.CreateBooking)
	g.PUT("/booking/:bookingId", b.UpdateBooking)
}

// RegisterHotels registers the public hotel catalogue. Listings change
// rarely, so the routes accept optional middleware (typically the Redis
// response cache) applied to the whole group.
func RegisterHotels(e *echo.Echo, h *handler.HotelHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1/hotels")
	g.Use(mw...)

	g.GET("", h.ListHotels)
	g.GET("/:id", h.GetHotel)
}
