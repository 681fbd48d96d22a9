package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prasadvy/hotel-room-booking/internal/repository"
	"github.com/prasadvy/hotel-room-booking/internal/view"
)

// DashboardHandler serves the aggregate revenue/occupancy view for a
// date range.  All numbers are recomputed from booking records on each
// request; nothing here is cached or persisted.
type DashboardHandler struct {
	Bookings *repository.BookingRepo
	Rooms    *repository.RoomRepo
}

func NewDashboardHandler(bookings *repository.BookingRepo, rooms *repository.RoomRepo) *DashboardHandler {
	if bookings == nil || rooms == nil {
		panic("nil repository passed to NewDashboardHandler")
	}
	return &DashboardHandler{Bookings: bookings, Rooms: rooms}
}

// Get handles GET /v1/dashboard?from=YYYY-MM-DD&to=YYYY-MM-DD.  The
// range defaults to the last 30 days and is inclusive of both endpoint
// days.
func (h *DashboardHandler) Get(c echo.Context) error {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now
	if s := c.QueryParam("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid from date"})
		}
		from = t
	}
	if s := c.QueryParam("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid to date"})
		}
		to = t
	}
	if to.Before(from) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "to is before from"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	// The query upper bound is exclusive; push it to the start of the
	// day after "to" so the whole end day counts.
	dayAfter := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	bookings, err := h.Bookings.ListCheckedInBetween(ctx, from, dayAfter)
	if err != nil {
		return writeDomainError(c, err)
	}
	roomCount, err := h.Rooms.Count(ctx)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, view.BuildDashboard(bookings, roomCount, from, to))
}
