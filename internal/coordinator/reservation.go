// Package coordinator implements the transactional write paths of the
// booking engine.  Coordinators are the only code allowed to flip room
// occupancy or advance booking lifecycle state, and every multi-record
// write runs inside a single store transaction so that no reader ever
// observes a room diverged from its booking.
package coordinator

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prasadvy/hotel-room-booking/internal/model"
	"github.com/prasadvy/hotel-room-booking/internal/repository"
	"github.com/prasadvy/hotel-room-booking/internal/store"
)

// RoomStore is the slice of the room repository the coordinators need:
// locked re-reads and status flips inside a transaction.
type RoomStore interface {
	GetForUpdateTx(ctx context.Context, tx *sql.Tx, id string) (*model.Room, error)
	SetStatusTx(ctx context.Context, tx *sql.Tx, id, status string) error
}

// BookingStore is the slice of the booking ledger the coordinators need.
type BookingStore interface {
	InsertTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error
	GetForUpdateTx(ctx context.Context, tx *sql.Tx, id string) (*model.Booking, error)
	TransitionTx(ctx context.Context, tx *sql.Tx, id, newStatus string, checkOut *time.Time) error
}

// GuestInfo carries the guest fields shared by every booking created in
// one reservation.  IDProofRef is an opaque reference to an externally
// stored identification document; it must be present before a
// reservation commits.
type GuestInfo struct {
	Name       string
	Phone      string
	IDProofRef string
}

// Allocation names one room to reserve together with its per-room terms.
type Allocation struct {
	RoomID     string
	GuestCount uint32
	Amount     decimal.Decimal
}

// DefaultMaxRooms bounds how many rooms a single reservation may take.
const DefaultMaxRooms = 10

// ReservationCoordinator atomically allocates rooms to a guest: N rooms
// flip to Occupied and N linked Active bookings appear, all in one
// transaction, or nothing happens at all.
type ReservationCoordinator struct {
	runner   store.TxRunner
	rooms    RoomStore
	bookings BookingStore
	maxRooms int
	now      func() time.Time
}

// NewReservationCoordinator wires a coordinator.  maxRooms values below 1
// fall back to DefaultMaxRooms; now may be nil for the wall clock.
func NewReservationCoordinator(runner store.TxRunner, rooms RoomStore, bookings BookingStore, maxRooms int, now func() time.Time) *ReservationCoordinator {
	if runner == nil || rooms == nil || bookings == nil {
		panic("nil dependency passed to NewReservationCoordinator")
	}
	if maxRooms < 1 {
		maxRooms = DefaultMaxRooms
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &ReservationCoordinator{runner: runner, rooms: rooms, bookings: bookings, maxRooms: maxRooms, now: now}
}

// Reserve allocates every named room to the guest in one atomic
// transaction.  Each room is re-read and locked inside the transaction;
// if any of them is no longer Available the whole reservation aborts
// with ErrRoomOccupied and nothing is committed.  On success it returns
// the created bookings, one per allocation, each Active with the same
// server-assigned check-in instant.
func (c *ReservationCoordinator) Reserve(ctx context.Context, guest GuestInfo, allocations []Allocation) ([]model.Booking, error) {
	if err := c.validate(guest, allocations); err != nil {
		return nil, err
	}
	checkIn := c.now()
	var created []model.Booking
	err := c.runner.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		created = created[:0]
		for _, alloc := range allocations {
			room, err := c.rooms.GetForUpdateTx(ctx, tx, alloc.RoomID)
			if err != nil {
				return err
			}
			if room.Status != model.RoomAvailable {
				return fmt.Errorf("%w: room %s", repository.ErrRoomOccupied, room.RoomNo)
			}
			b := model.Booking{
				RoomID:     room.ID,
				RoomNo:     room.RoomNo,
				GuestName:  guest.Name,
				GuestPhone: guest.Phone,
				GuestCount: alloc.GuestCount,
				IDProofRef: guest.IDProofRef,
				Amount:     alloc.Amount,
				CheckIn:    checkIn,
				Status:     model.BookingActive,
			}
			if err := c.bookings.InsertTx(ctx, tx, &b); err != nil {
				return err
			}
			if err := c.rooms.SetStatusTx(ctx, tx, room.ID, model.RoomOccupied); err != nil {
				return err
			}
			created = append(created, b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (c *ReservationCoordinator) validate(guest GuestInfo, allocations []Allocation) error {
	if strings.TrimSpace(guest.Name) == "" {
		return fmt.Errorf("%w: guest name is required", repository.ErrValidation)
	}
	if strings.TrimSpace(guest.Phone) == "" {
		return fmt.Errorf("%w: guest phone is required", repository.ErrValidation)
	}
	if strings.TrimSpace(guest.IDProofRef) == "" {
		return fmt.Errorf("%w: id proof reference is required", repository.ErrValidation)
	}
	if len(allocations) == 0 {
		return fmt.Errorf("%w: at least one room is required", repository.ErrValidation)
	}
	if len(allocations) > c.maxRooms {
		return fmt.Errorf("%w: at most %d rooms per reservation", repository.ErrValidation, c.maxRooms)
	}
	seen := make(map[string]struct{}, len(allocations))
	for _, alloc := range allocations {
		if alloc.RoomID == "" {
			return fmt.Errorf("%w: room id is required", repository.ErrValidation)
		}
		if _, dup := seen[alloc.RoomID]; dup {
			return fmt.Errorf("%w: duplicate room in reservation", repository.ErrValidation)
		}
		seen[alloc.RoomID] = struct{}{}
		if alloc.GuestCount < 1 {
			return fmt.Errorf("%w: guest count must be at least 1", repository.ErrValidation)
		}
		if alloc.Amount.IsNegative() {
			return fmt.Errorf("%w: amount must not be negative", repository.ErrValidation)
		}
	}
	return nil
}
