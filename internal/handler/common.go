// Package handler contains the HTTP handlers for the booking API.  Each
// handler binds and validates its request, delegates to a repository or
// coordinator, maps domain errors to HTTP status codes, and fires the
// side channels (broker event, feed notification) after a successful
// write.  Side channels are best-effort: their failures are logged and
// never fail the request.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prasadvy/hotel-room-booking/internal/model"
	"github.com/prasadvy/hotel-room-booking/internal/queue"
	"github.com/prasadvy/hotel-room-booking/internal/repository"
	queue_publisher "github.com/prasadvy/hotel-room-booking/internal/service"
	"github.com/prasadvy/hotel-room-booking/internal/store"
)

// writeDomainError maps repository and store sentinels onto HTTP
// responses.  Anything unrecognized is a 500 with a generic message so
// internal details never leak to the client.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrRoomNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	case errors.Is(err, repository.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case errors.Is(err, repository.ErrRoomOccupied):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, store.ErrTxConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "transaction conflict, please retry"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}

// publishEvent converts a booking to a broker event and publishes it in
// the background.  The request must not wait on, or fail because of,
// the broker.
func publishEvent(kind string, b *model.Booking) {
	ev := queue.BookingEvent{
		Kind:       kind,
		BookingID:  b.ID,
		RoomID:     b.RoomID,
		RoomNo:     b.RoomNo,
		GuestName:  b.GuestName,
		GuestPhone: b.GuestPhone,
		GuestCount: b.GuestCount,
		Amount:     b.Amount.String(),
		CheckIn:    b.CheckIn.UTC().Format(time.RFC3339),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if b.CheckOut != nil {
		ev.CheckOut = b.CheckOut.UTC().Format(time.RFC3339)
	}
	if b.PredecessorID != nil {
		ev.PredecessorID = *b.PredecessorID
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishBookingEvent(ctx, ev)
	}()
}
