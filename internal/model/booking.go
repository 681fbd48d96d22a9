package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking status values.  Active is an open stay, Extended is a stay that
// was closed at its cycle boundary in favour of a successor booking, and
// Completed is terminal.
const (
	BookingActive    = "Active"
	BookingExtended  = "Extended"
	BookingCompleted = "Completed"
)

// Booking records one billing cycle of a guest's stay in a single room.
// A continuous stay that spans several cycles forms a chain of bookings
// linked through PredecessorID; only the newest link in a chain has a
// null checkout.
//
// Fields:
//  ID            – opaque identifier assigned at creation.
//  RoomID        – room occupied by this booking.
//  RoomNo        – room label at booking time, denormalized for display.
//  GuestName     – name of the guest.
//  GuestPhone    – contact number of the guest.
//  GuestCount    – number of persons staying, at least 1.
//  IDProofRef    – opaque reference to the guest's identification document.
//  Amount        – agreed price for this cycle.
//  CheckIn       – instant the cycle opened, immutable.
//  CheckOut      – instant the cycle closed, nil while the stay is open.
//  Status        – Active, Extended or Completed.
//  PredecessorID – booking this one continues from, nil for fresh stays.
//  CreatedAt     – creation timestamp, used for history ordering.
type Booking struct {
	ID            string          `json:"id"`                       // bookings.id
	RoomID        string          `json:"room_id"`                  // bookings.room_id
	RoomNo        string          `json:"room_no"`                  // bookings.room_no
	GuestName     string          `json:"guest_name"`               // bookings.guest_name
	GuestPhone    string          `json:"guest_phone"`              // bookings.guest_phone
	GuestCount    uint32          `json:"guest_count"`              // bookings.guest_count
	IDProofRef    string          `json:"id_proof_ref"`             // bookings.id_proof_ref
	Amount        decimal.Decimal `json:"amount"`                   // bookings.amount
	CheckIn       time.Time       `json:"check_in"`                 // bookings.check_in
	CheckOut      *time.Time      `json:"check_out"`                // bookings.check_out (nullable)
	Status        string          `json:"status"`                   // bookings.status
	PredecessorID *string         `json:"predecessor_id,omitempty"` // bookings.predecessor_id (nullable)
	CreatedAt     time.Time       `json:"created_at"`               // bookings.created_at
}

// CanTransition reports whether a booking may move from one status to
// another.  The allowed set is Active→Extended, Active→Completed and
// Extended→Completed; Completed is terminal and nothing may re-enter a
// prior state.
func CanTransition(from, to string) bool {
	switch from {
	case BookingActive:
		return to == BookingExtended || to == BookingCompleted
	case BookingExtended:
		return to == BookingCompleted
	default:
		return false
	}
}

// TransitionSources returns the states a booking may currently be in
// for a move into the target state to be legal.  Derived from
// CanTransition so there is exactly one transition table.
func TransitionSources(to string) []string {
	var from []string
	for _, s := range []string{BookingActive, BookingExtended, BookingCompleted} {
		if CanTransition(s, to) {
			from = append(from, s)
		}
	}
	return from
}

// Open reports whether the booking still occupies its room, i.e. its
// status is Active or Extended.
func (b *Booking) Open() bool {
	return b.Status == BookingActive || b.Status == BookingExtended
}
