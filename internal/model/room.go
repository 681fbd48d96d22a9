package model

import "time"

// Room status values.  A room is either free for allocation or currently
// held by exactly one open booking.  Status is only ever flipped inside a
// coordinator transaction together with the matching booking write.
const (
	RoomAvailable = "Available"
	RoomOccupied  = "Occupied"
)

// Room describes a single rentable room in the pool.  Rooms are created
// and edited by administrative actions; their occupancy status belongs to
// the coordinators and is never touched by plain CRUD.
//
// Fields:
//  ID        – opaque identifier assigned at creation, immutable.
//  RoomNo    – display label shown to staff, editable.
//  RoomType  – categorical tag such as "AC" or "Non-AC", informational.
//  Status    – Available or Occupied.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Room struct {
	ID        string    `json:"id"`         // rooms.id
	RoomNo    string    `json:"room_no"`    // rooms.room_no
	RoomType  string    `json:"room_type"`  // rooms.room_type
	Status    string    `json:"status"`     // rooms.status
	CreatedAt time.Time `json:"created_at"` // rooms.created_at
	UpdatedAt time.Time `json:"updated_at"` // rooms.updated_at
}
