package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/prasadvy/hotel-room-booking/internal/coordinator"
	"github.com/prasadvy/hotel-room-booking/internal/feed"
	"github.com/prasadvy/hotel-room-booking/internal/model"
	"github.com/prasadvy/hotel-room-booking/internal/queue"
	"github.com/prasadvy/hotel-room-booking/internal/repository"
	"github.com/prasadvy/hotel-room-booking/internal/view"
)

// BookingHandler exposes the booking lifecycle: reservation, active and
// historical listings, checkout, extension and bill export.  Every
// write goes through a coordinator so the room/booking invariants hold
// no matter how requests interleave.
type BookingHandler struct {
	Reservations *coordinator.ReservationCoordinator
	Stays        *coordinator.StayCoordinator
	Bookings     *repository.BookingRepo
	Feed         *feed.Feed
}

func NewBookingHandler(res *coordinator.ReservationCoordinator, stays *coordinator.StayCoordinator, bookings *repository.BookingRepo, f *feed.Feed) *BookingHandler {
	if res == nil || stays == nil || bookings == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Reservations: res, Stays: stays, Bookings: bookings, Feed: f}
}

type allocationReq struct {
	RoomID     string          `json:"room_id"`
	GuestCount uint32          `json:"guest_count"`
	Amount     decimal.Decimal `json:"amount"`
}

type reserveReq struct {
	GuestName  string          `json:"guest_name"`
	GuestPhone string          `json:"guest_phone"`
	IDProofRef string          `json:"id_proof_ref"`
	Rooms      []allocationReq `json:"rooms"`
}

// Reserve handles POST /v1/bookings.  It checks in one guest party into
// one or more rooms atomically: either every requested room is booked
// and flipped to Occupied, or nothing changes.
func (h *BookingHandler) Reserve(c echo.Context) error {
	var req reserveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	guest := coordinator.GuestInfo{
		Name:       req.GuestName,
		Phone:      req.GuestPhone,
		IDProofRef: req.IDProofRef,
	}
	allocations := make([]coordinator.Allocation, 0, len(req.Rooms))
	for _, r := range req.Rooms {
		allocations = append(allocations, coordinator.Allocation{
			RoomID:     r.RoomID,
			GuestCount: r.GuestCount,
			Amount:     r.Amount,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	created, err := h.Reservations.Reserve(ctx, guest, allocations)
	if err != nil {
		return writeDomainError(c, err)
	}
	for i := range created {
		publishEvent(queue.EventReserved, &created[i])
	}
	h.Feed.Notify(ctx, feed.Rooms, feed.Bookings)
	return c.JSON(http.StatusCreated, echo.Map{"bookings": created})
}

// activeBooking decorates an open booking with its billing-cycle state
// for the front desk: when the current cycle ends and whether the stay
// has run past it.
type activeBooking struct {
	model.Booking
	CycleEnd time.Time `json:"cycle_end"`
	Overdue  bool      `json:"overdue"`
}

// ListActive handles GET /v1/bookings/active.  Each entry carries the
// end of its current billing cycle and an overdue flag so the desk can
// see at a glance who needs a checkout or an extension.
func (h *BookingHandler) ListActive(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ListActive(ctx)
	if err != nil {
		return writeDomainError(c, err)
	}
	now := time.Now().UTC()
	out := make([]activeBooking, 0, len(bookings))
	for _, b := range bookings {
		end := h.Stays.CycleEnd(b.CheckIn)
		out = append(out, activeBooking{Booking: b, CycleEnd: end, Overdue: now.After(end)})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}

// History handles GET /v1/bookings, returning every booking record
// newest first.
func (h *BookingHandler) History(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ListAll(ctx)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

// Checkout handles POST /v1/bookings/:id/checkout.  By default the
// booking closes at the current time; with ?at=cycle-end it closes at
// the end of its billing cycle instead, for guests who left earlier but
// are settled up to the boundary.
func (h *BookingHandler) Checkout(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var closed *model.Booking
	var err error
	if c.QueryParam("at") == "cycle-end" {
		closed, err = h.Stays.CheckoutAtCycleEnd(ctx, c.Param("id"))
	} else {
		closed, err = h.Stays.Checkout(ctx, c.Param("id"))
	}
	if err != nil {
		return writeDomainError(c, err)
	}
	publishEvent(queue.EventCheckedOut, closed)
	h.Feed.Notify(ctx, feed.Rooms, feed.Bookings)
	return c.JSON(http.StatusOK, closed)
}

type extendReq struct {
	Amount decimal.Decimal `json:"amount"`
}

// Extend handles POST /v1/bookings/:id/extend.  The current cycle is
// frozen at its boundary and a successor booking opens for the next
// cycle at the given amount; the room stays Occupied throughout.
func (h *BookingHandler) Extend(c echo.Context) error {
	var req extendReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	closed, opened, err := h.Stays.Extend(ctx, c.Param("id"), req.Amount)
	if err != nil {
		return writeDomainError(c, err)
	}
	publishEvent(queue.EventExtended, opened)
	h.Feed.Notify(ctx, feed.Bookings)
	return c.JSON(http.StatusOK, echo.Map{"closed": closed, "opened": opened})
}

// Bill handles GET /v1/bookings/:id/bill.  Any booking in a stay's
// extension chain resolves to the same bill covering every cycle of the
// stay.
func (h *BookingHandler) Bill(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	chain, err := h.Bookings.Chain(ctx, c.Param("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, view.BuildBill(chain))
}
