package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prasadvy/hotel-room-booking/internal/feed"
	"github.com/prasadvy/hotel-room-booking/internal/repository"
)

// RoomHandler exposes CRUD and listing endpoints for the room registry.
// Room status is never written here: Available/Occupied flips belong to
// the booking coordinators only.
type RoomHandler struct {
	Rooms *repository.RoomRepo
	Feed  *feed.Feed
}

func NewRoomHandler(rooms *repository.RoomRepo, f *feed.Feed) *RoomHandler {
	if rooms == nil {
		panic("nil repository passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms, Feed: f}
}

type roomReq struct {
	RoomNo   string `json:"room_no"`
	RoomType string `json:"room_type"`
}

// Create handles POST /v1/rooms.  New rooms always start Available.
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	room, err := h.Rooms.Create(ctx, req.RoomNo, req.RoomType)
	if err != nil {
		return writeDomainError(c, err)
	}
	h.Feed.Notify(ctx, feed.Rooms)
	return c.JSON(http.StatusCreated, room)
}

// Update handles PUT /v1/rooms/:id.  Only descriptive fields change;
// status is untouchable through this endpoint.
func (h *RoomHandler) Update(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	room, err := h.Rooms.Update(ctx, c.Param("id"), req.RoomNo, req.RoomType)
	if err != nil {
		return writeDomainError(c, err)
	}
	h.Feed.Notify(ctx, feed.Rooms)
	return c.JSON(http.StatusOK, room)
}

// Delete handles DELETE /v1/rooms/:id.  Occupied rooms cannot be
// deleted; the repository enforces that in a single statement.
func (h *RoomHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rooms.Delete(ctx, c.Param("id")); err != nil {
		return writeDomainError(c, err)
	}
	h.Feed.Notify(ctx, feed.Rooms)
	return c.NoContent(http.StatusNoContent)
}

// Get handles GET /v1/rooms/:id.
func (h *RoomHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, c.Param("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// List handles GET /v1/rooms.  The optional ?status=available query
// narrows the listing to rooms that can take a new booking.
func (h *RoomHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var err error
	var rooms any
	if c.QueryParam("status") == "available" {
		rooms, err = h.Rooms.ListAvailable(ctx)
	} else {
		rooms, err = h.Rooms.ListAll(ctx)
	}
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": rooms})
}
