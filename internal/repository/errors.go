// Package repository owns persistence of the two record collections,
// rooms and bookings.  It defines the sentinel errors shared by the
// repositories so that coordinators and handlers can distinguish failure
// scenarios with errors.Is: missing records, occupancy conflicts and
// lifecycle transitions outside the allowed set.
package repository

import "errors"

// ErrRoomNotFound is returned when a referenced room does not exist.
var ErrRoomNotFound = errors.New("room not found")

// ErrBookingNotFound is returned when a referenced booking does not exist.
var ErrBookingNotFound = errors.New("booking not found")

// ErrRoomOccupied is returned when an operation requires a free room but
// the room is currently held by an open booking, e.g. deleting an
// occupied room or reserving a room that another transaction just took.
var ErrRoomOccupied = errors.New("room occupied")

// ErrInvalidTransition is returned when a booking state change is not in
// the allowed set (Active→Extended, Active→Completed, Extended→Completed).
// Callers should re-fetch the booking before deciding what to do next.
var ErrInvalidTransition = errors.New("invalid booking state transition")

// ErrValidation is returned for malformed caller input, such as an empty
// room number.  Validation failures are never retried.
var ErrValidation = errors.New("validation failed")
