package main // Entry point package

import (
	"log"  // Logging library
	"time" // Clock injection for the coordinators

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/prasadvy/hotel-room-booking/internal/config"
	"github.com/prasadvy/hotel-room-booking/internal/coordinator"
	"github.com/prasadvy/hotel-room-booking/internal/database"
	"github.com/prasadvy/hotel-room-booking/internal/feed"
	"github.com/prasadvy/hotel-room-booking/internal/handler"
	"github.com/prasadvy/hotel-room-booking/internal/queue"
	"github.com/prasadvy/hotel-room-booking/internal/repository"
	"github.com/prasadvy/hotel-room-booking/internal/router"
	"github.com/prasadvy/hotel-room-booking/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate("file://migrations", cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	// nil when Redis is unreachable; feed and rate limiting degrade.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; live feed and rate limiting disabled")
	}

	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)
	txs := store.New(db, cfg.TxMaxAttempts)

	reservations := coordinator.NewReservationCoordinator(txs, rooms, bookings, cfg.MaxRooms, time.Now)
	stays := coordinator.NewStayCoordinator(txs, rooms, bookings, cfg.CycleHour, time.Now)

	changeFeed := feed.New(rdb, rooms, bookings)

	// Audit consumer runs for the lifetime of the process and keeps
	// reconnecting on broker failures.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.Register(e, cfg, rdb,
		handler.NewAuthHandler(cfg),
		handler.NewRoomHandler(rooms, changeFeed),
		handler.NewBookingHandler(reservations, stays, bookings, changeFeed),
		handler.NewDashboardHandler(bookings, rooms),
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
