package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/prasadvy/hotel-room-booking/internal/config"
	"github.com/prasadvy/hotel-room-booking/internal/handler"
	"github.com/prasadvy/hotel-room-booking/internal/middleware"
)

// Register wires every route of the booking API onto the provided Echo
// instance.  The health check and staff login are public; everything
// else lives under /v1 behind JWT authentication, with the Redis rate
// limiter applied to the write endpoints.
func Register(e *echo.Echo, cfg config.Config, rdb *redis.Client,
	auth *handler.AuthHandler, rooms *handler.RoomHandler,
	bookings *handler.BookingHandler, dashboard *handler.DashboardHandler) {

	e.GET("/healthz", handler.Health)
	e.POST("/v1/auth/login", auth.Login)

	v1 := e.Group("/v1")
	v1.Use(middleware.JWTAuth(cfg.JWTSecret))

	limited := middleware.RateLimit(rdb, config.LoadRateLimitConfig())

	// Room registry.  Status flips never happen here; only the booking
	// coordinators touch Available/Occupied.
	v1.GET("/rooms", rooms.List)
	v1.GET("/rooms/:id", rooms.Get)
	v1.POST("/rooms", rooms.Create, limited)
	v1.PUT("/rooms/:id", rooms.Update, limited)
	v1.DELETE("/rooms/:id", rooms.Delete, limited)

	// Booking lifecycle.
	v1.POST("/bookings", bookings.Reserve, limited)
	v1.GET("/bookings", bookings.History)
	v1.GET("/bookings/active", bookings.ListActive)
	v1.POST("/bookings/:id/checkout", bookings.Checkout, limited)
	v1.POST("/bookings/:id/extend", bookings.Extend, limited)
	v1.GET("/bookings/:id/bill", bookings.Bill)

	v1.GET("/dashboard", dashboard.Get)
}
