package coordinator

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prasadvy/hotel-room-booking/internal/cycle"
	"github.com/prasadvy/hotel-room-booking/internal/model"
	"github.com/prasadvy/hotel-room-booking/internal/repository"
	"github.com/prasadvy/hotel-room-booking/internal/store"
)

// StayCoordinator advances open stays through checkout and extension.
// Checkout closes the booking and frees the room in one transaction;
// extension freezes the current booking at its cycle boundary and opens
// a linked successor on the same room, which stays occupied throughout.
type StayCoordinator struct {
	runner      store.TxRunner
	rooms       RoomStore
	bookings    BookingStore
	cutoverHour int
	now         func() time.Time
}

// NewStayCoordinator wires a coordinator.  cutoverHour values outside
// 0..23 fall back to cycle.DefaultCutoverHour; now may be nil for the
// wall clock.
func NewStayCoordinator(runner store.TxRunner, rooms RoomStore, bookings BookingStore, cutoverHour int, now func() time.Time) *StayCoordinator {
	if runner == nil || rooms == nil || bookings == nil {
		panic("nil dependency passed to NewStayCoordinator")
	}
	if cutoverHour < 0 || cutoverHour > 23 {
		cutoverHour = cycle.DefaultCutoverHour
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &StayCoordinator{runner: runner, rooms: rooms, bookings: bookings, cutoverHour: cutoverHour, now: now}
}

// Checkout closes a stay at the current instant and frees its room.
// Both writes commit together.  Only the Active booking of a stay may
// check out: an Extended predecessor is frozen, and freeing the room
// under its Active successor would leave an Active booking on an
// Available room.  Returns ErrBookingNotFound when the booking is
// absent and ErrInvalidTransition for any non-Active booking.
func (c *StayCoordinator) Checkout(ctx context.Context, bookingID string) (*model.Booking, error) {
	return c.checkout(ctx, bookingID, false)
}

// CheckoutAtCycleEnd closes an open booking retroactively at its cycle
// boundary instead of the current instant.  Used when an overdue guest
// is recorded as having left exactly when their cycle ended.
func (c *StayCoordinator) CheckoutAtCycleEnd(ctx context.Context, bookingID string) (*model.Booking, error) {
	return c.checkout(ctx, bookingID, true)
}

func (c *StayCoordinator) checkout(ctx context.Context, bookingID string, atBoundary bool) (*model.Booking, error) {
	var closed *model.Booking
	err := c.runner.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		b, err := c.bookings.GetForUpdateTx(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if b.Status != model.BookingActive {
			if !b.Open() {
				return fmt.Errorf("%w: booking already completed", repository.ErrInvalidTransition)
			}
			return fmt.Errorf("%w: an extended booking is settled through its successor", repository.ErrInvalidTransition)
		}
		checkOut := c.now()
		if atBoundary {
			checkOut = cycle.End(b.CheckIn, c.cutoverHour)
		}
		if err := c.bookings.TransitionTx(ctx, tx, b.ID, model.BookingCompleted, &checkOut); err != nil {
			return err
		}
		if err := c.rooms.SetStatusTx(ctx, tx, b.RoomID, model.RoomAvailable); err != nil {
			return err
		}
		b.Status = model.BookingCompleted
		b.CheckOut = &checkOut
		closed = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return closed, nil
}

// Extend closes the current booking at its cycle boundary and opens a
// successor booking on the same room for the next cycle.  The successor
// copies the guest fields, carries the new amount, checks in exactly at
// the boundary and links back through PredecessorID.  The room stays
// Occupied across the whole chain, so no room write happens here.  Both
// booking writes are indivisible.
func (c *StayCoordinator) Extend(ctx context.Context, bookingID string, newAmount decimal.Decimal) (*model.Booking, *model.Booking, error) {
	if !newAmount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: extension amount must be positive", repository.ErrValidation)
	}
	var closed, opened *model.Booking
	err := c.runner.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		b, err := c.bookings.GetForUpdateTx(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if b.Status != model.BookingActive {
			return fmt.Errorf("%w: only an active booking can be extended", repository.ErrInvalidTransition)
		}
		boundary := cycle.End(b.CheckIn, c.cutoverHour)
		if err := c.bookings.TransitionTx(ctx, tx, b.ID, model.BookingExtended, &boundary); err != nil {
			return err
		}
		predID := b.ID
		next := model.Booking{
			RoomID:        b.RoomID,
			RoomNo:        b.RoomNo,
			GuestName:     b.GuestName,
			GuestPhone:    b.GuestPhone,
			GuestCount:    b.GuestCount,
			IDProofRef:    b.IDProofRef,
			Amount:        newAmount,
			CheckIn:       boundary,
			Status:        model.BookingActive,
			PredecessorID: &predID,
		}
		if err := c.bookings.InsertTx(ctx, tx, &next); err != nil {
			return err
		}
		b.Status = model.BookingExtended
		b.CheckOut = &boundary
		closed = b
		opened = &next
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return closed, opened, nil
}

// CycleEnd exposes the stay's current billing boundary for read-side
// presentation (overdue badges, retroactive checkout confirmation).
func (c *StayCoordinator) CycleEnd(checkIn time.Time) time.Time {
	return cycle.End(checkIn, c.cutoverHour)
}
