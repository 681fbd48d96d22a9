// Package queue defines message payloads exchanged over the message broker.
package queue

// Lifecycle event kinds carried in BookingEvent.Kind.
const (
	EventReserved   = "reserved"
	EventExtended   = "extended"
	EventCheckedOut = "checked_out"
)

// BookingEvent is published after a booking lifecycle transition commits.
// It carries enough information for downstream consumers to log, notify,
// or trigger analytics without querying the primary database.  Amount is
// the decimal string of the cycle amount; timestamps are RFC 3339.
type BookingEvent struct {
	Kind          string `json:"kind"`
	BookingID     string `json:"booking_id"`
	RoomID        string `json:"room_id"`
	RoomNo        string `json:"room_no"`
	GuestName     string `json:"guest_name"`
	GuestPhone    string `json:"guest_phone"`
	GuestCount    uint32 `json:"guest_count"`
	Amount        string `json:"amount"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out,omitempty"`
	PredecessorID string `json:"predecessor_id,omitempty"`
	OccurredAt    string `json:"occurred_at"`
}
