package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-room-booking/internal/config"
	"github.com/iliyamo/event-room-booking/internal/database"
	"github.com/iliyamo/event-room-booking/internal/handler"
	"github.com/iliyamo/event-room-booking/internal/middleware"
	"github.com/iliyamo/event-room-booking/internal/queue"
	"github.com/iliyamo/event-room-booking/internal/repository"
	"github.com/iliyamo/event-room-booking/internal/router"
	"github.com/iliyamo/event-room-booking/internal/service"
)

func main() {
	// Load .env if present; real deployments set variables directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	enrollments := repository.NewEnrollmentRepo(db)
	tickets := repository.NewTicketRepo(db)
	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)
	hotels := repository.NewHotelRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	bookingSvc := service.NewBookingService(enrollments, tickets, rooms, bookings)

	e := echo.New()

	// Redis backs both the rate limiter and the hotel catalogue cache.
	// The server still works without it, only without those layers.
	rdb := config.NewRedisClient()
	if rdb != nil {
		e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens))
	router.RegisterBooking(e, handler.NewBookingHandler(bookingSvc), cfg.JWTSecret)
	if rdb != nil {
		router.RegisterHotels(e, handler.NewHotelHandler(hotels),
			middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	} else {
		router.RegisterHotels(e, handler.NewHotelHandler(hotels))
	}

	// Consume booking events in the background. The consumer reconnects
	// on broker failures, so a dead RabbitMQ never takes the API down.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
