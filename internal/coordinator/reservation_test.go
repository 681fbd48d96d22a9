package coordinator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prasadvy/hotel-room-booking/internal/model"
	"github.com/prasadvy/hotel-room-booking/internal/repository"
)

var testGuest = GuestInfo{Name: "A", Phone: "9000000001", IDProofRef: "blob/id-1"}

func TestReserve_AllocatesRoomsAtomically(t *testing.T) {
	s := newMemStore()
	s.addRoom("r1", "101", "AC", model.RoomAvailable)
	s.addRoom("r2", "102", "Non-AC", model.RoomAvailable)
	s.addRoom("r3", "103", "AC", model.RoomAvailable)
	checkIn := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	c := NewReservationCoordinator(s, s, s.bookingStore(), 0, fixedClock(checkIn))

	created, err := c.Reserve(context.Background(), testGuest, []Allocation{
		{RoomID: "r1", GuestCount: 2, Amount: decimal.NewFromInt(1000)},
		{RoomID: "r2", GuestCount: 1, Amount: decimal.NewFromInt(1200)},
	})
	if err != nil {
		t.Fatalf("Reserve returned %v, want nil", err)
	}
	if len(created) != 2 {
		t.Fatalf("created %d bookings, want 2", len(created))
	}
	total := decimal.Zero
	for _, b := range created {
		if b.Status != model.BookingActive {
			t.Errorf("booking %s status = %q, want Active", b.ID, b.Status)
		}
		if !b.CheckIn.Equal(checkIn) {
			t.Errorf("booking %s check-in = %v, want %v", b.ID, b.CheckIn, checkIn)
		}
		if b.CheckOut != nil {
			t.Errorf("booking %s checkout = %v, want nil", b.ID, b.CheckOut)
		}
		if b.PredecessorID != nil {
			t.Errorf("booking %s predecessor = %v, want nil", b.ID, b.PredecessorID)
		}
		if b.GuestName != "A" {
			t.Errorf("booking %s guest = %q, want A", b.ID, b.GuestName)
		}
		total = total.Add(b.Amount)
	}
	if !total.Equal(decimal.NewFromInt(2200)) {
		t.Errorf("total amount = %s, want 2200", total)
	}
	if s.rooms["r1"].Status != model.RoomOccupied || s.rooms["r2"].Status != model.RoomOccupied {
		t.Errorf("reserved rooms not occupied: r1=%q r2=%q", s.rooms["r1"].Status, s.rooms["r2"].Status)
	}
	if s.rooms["r3"].Status != model.RoomAvailable {
		t.Errorf("untouched room r3 status = %q, want Available", s.rooms["r3"].Status)
	}
	if len(s.bookings) != 2 {
		t.Errorf("persisted %d bookings, want 2", len(s.bookings))
	}
}

func TestReserve_OccupiedRoomAbortsWholeReservation(t *testing.T) {
	s := newMemStore()
	s.addRoom("r1", "101", "AC", model.RoomAvailable)
	s.addRoom("r2", "102", "AC", model.RoomOccupied)
	c := NewReservationCoordinator(s, s, s.bookingStore(), 0, nil)

	_, err := c.Reserve(context.Background(), testGuest, []Allocation{
		{RoomID: "r1", GuestCount: 1, Amount: decimal.NewFromInt(800)},
		{RoomID: "r2", GuestCount: 1, Amount: decimal.NewFromInt(800)},
	})
	if !errors.Is(err, repository.ErrRoomOccupied) {
		t.Fatalf("Reserve returned %v, want ErrRoomOccupied", err)
	}
	if s.rooms["r1"].Status != model.RoomAvailable {
		t.Errorf("room r1 status = %q, want Available (no partial allocation)", s.rooms["r1"].Status)
	}
	if len(s.bookings) != 0 {
		t.Errorf("persisted %d bookings after aborted reservation, want 0", len(s.bookings))
	}
}

func TestReserve_UnknownRoom(t *testing.T) {
	s := newMemStore()
	c := NewReservationCoordinator(s, s, s.bookingStore(), 0, nil)
	_, err := c.Reserve(context.Background(), testGuest, []Allocation{
		{RoomID: "missing", GuestCount: 1, Amount: decimal.NewFromInt(500)},
	})
	if !errors.Is(err, repository.ErrRoomNotFound) {
		t.Fatalf("Reserve returned %v, want ErrRoomNotFound", err)
	}
}

func TestReserve_Validation(t *testing.T) {
	s := newMemStore()
	s.addRoom("r1", "101", "AC", model.RoomAvailable)
	c := NewReservationCoordinator(s, s, s.bookingStore(), 2, nil)
	one := []Allocation{{RoomID: "r1", GuestCount: 1, Amount: decimal.NewFromInt(500)}}

	cases := []struct {
		name   string
		guest  GuestInfo
		allocs []Allocation
	}{
		{"no allocations", testGuest, nil},
		{"too many rooms", testGuest, []Allocation{
			{RoomID: "a", GuestCount: 1, Amount: decimal.NewFromInt(1)},
			{RoomID: "b", GuestCount: 1, Amount: decimal.NewFromInt(1)},
			{RoomID: "c", GuestCount: 1, Amount: decimal.NewFromInt(1)},
		}},
		{"duplicate room", testGuest, []Allocation{
			{RoomID: "r1", GuestCount: 1, Amount: decimal.NewFromInt(1)},
			{RoomID: "r1", GuestCount: 1, Amount: decimal.NewFromInt(1)},
		}},
		{"missing guest name", GuestInfo{Phone: "9", IDProofRef: "x"}, one},
		{"missing phone", GuestInfo{Name: "A", IDProofRef: "x"}, one},
		{"missing id proof", GuestInfo{Name: "A", Phone: "9"}, one},
		{"zero guest count", testGuest, []Allocation{{RoomID: "r1", Amount: decimal.NewFromInt(1)}}},
		{"negative amount", testGuest, []Allocation{{RoomID: "r1", GuestCount: 1, Amount: decimal.NewFromInt(-5)}}},
	}
	for _, c2 := range cases {
		if _, err := c.Reserve(context.Background(), c2.guest, c2.allocs); !errors.Is(err, repository.ErrValidation) {
			t.Errorf("%s: Reserve returned %v, want ErrValidation", c2.name, err)
		}
	}
	if len(s.bookings) != 0 {
		t.Errorf("validation failures must not persist bookings, found %d", len(s.bookings))
	}
	if s.rooms["r1"].Status != model.RoomAvailable {
		t.Errorf("room r1 status = %q, want Available", s.rooms["r1"].Status)
	}
}

func TestReserve_ZeroAmountAllowed(t *testing.T) {
	s := newMemStore()
	s.addRoom("r1", "101", "AC", model.RoomAvailable)
	c := NewReservationCoordinator(s, s, s.bookingStore(), 0, nil)
	created, err := c.Reserve(context.Background(), testGuest, []Allocation{
		{RoomID: "r1", GuestCount: 1, Amount: decimal.Zero},
	})
	if err != nil {
		t.Fatalf("Reserve returned %v, want nil", err)
	}
	if !created[0].Amount.Equal(decimal.Zero) {
		t.Errorf("amount = %s, want 0", created[0].Amount)
	}
}
