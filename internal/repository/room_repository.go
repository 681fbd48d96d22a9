package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/prasadvy/hotel-room-booking/internal/model"
)

// RoomRepo provides CRUD operations for rooms plus the transactional
// accessors the coordinators use to flip occupancy.  Plain CRUD never
// touches the status column; only SetStatusTx does, and it is called
// exclusively from inside a coordinator transaction.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomColumns = `id, room_no, room_type, status, created_at, updated_at`

func scanRoom(row interface{ Scan(...any) error }, r *model.Room) error {
	return row.Scan(&r.ID, &r.RoomNo, &r.RoomType, &r.Status, &r.CreatedAt, &r.UpdatedAt)
}

// Create inserts a new room with a generated identifier and Available
// status.  An empty room number fails with ErrValidation.  The created
// room is read back so timestamps reflect what the database stored.
func (r *RoomRepo) Create(ctx context.Context, roomNo, roomType string) (*model.Room, error) {
	roomNo = strings.TrimSpace(roomNo)
	if roomNo == "" {
		return nil, fmt.Errorf("%w: room number is required", ErrValidation)
	}
	id := uuid.NewString()
	const q = `INSERT INTO rooms (id, room_no, room_type, status) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, id, roomNo, roomType, model.RoomAvailable); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Update changes a room's display label and type.  Status is deliberately
// untouched; occupancy belongs to the coordinators.  Returns
// ErrRoomNotFound when the id is unknown.
func (r *RoomRepo) Update(ctx context.Context, id, roomNo, roomType string) (*model.Room, error) {
	roomNo = strings.TrimSpace(roomNo)
	if roomNo == "" {
		return nil, fmt.Errorf("%w: room number is required", ErrValidation)
	}
	const q = `UPDATE rooms SET room_no = ?, room_type = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, roomNo, roomType, id)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Zero rows may also mean an identical write; confirm existence.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a room, permitted only while it is Available.  Returns
// ErrRoomOccupied when an open booking still holds the room and
// ErrRoomNotFound when the id is unknown.  The status guard lives in the
// DELETE itself so a concurrent reservation cannot slip in between a
// check and the delete.
func (r *RoomRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM rooms WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, id, model.RoomAvailable)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrRoomOccupied
	}
	return nil
}

// GetByID loads a single room.  Returns ErrRoomNotFound when absent.
func (r *RoomRepo) GetByID(ctx context.Context, id string) (*model.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
	var room model.Room
	if err := scanRoom(r.db.QueryRowContext(ctx, q, id), &room); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// ListAvailable returns every room currently free for allocation,
// ordered by room number for stable iteration.
func (r *RoomRepo) ListAvailable(ctx context.Context) ([]model.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms WHERE status = ? ORDER BY room_no`
	return r.list(ctx, q, model.RoomAvailable)
}

// ListAll returns the whole room pool ordered by room number.
func (r *RoomRepo) ListAll(ctx context.Context) ([]model.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms ORDER BY room_no`
	return r.list(ctx, q)
}

// Count returns the size of the room pool.  Used by the dashboard to
// derive occupancy rates.
func (r *RoomRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *RoomRepo) list(ctx context.Context, q string, args ...any) ([]model.Room, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Room, 0)
	for rows.Next() {
		var room model.Room
		if err := scanRoom(rows, &room); err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetForUpdateTx re-reads a room inside a transaction and locks the row
// until commit, serializing concurrent coordinators that want the same
// room.  Returns ErrRoomNotFound when absent.
func (r *RoomRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id string) (*model.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ? FOR UPDATE`
	var room model.Room
	if err := scanRoom(tx.QueryRowContext(ctx, q, id), &room); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// SetStatusTx flips a room's occupancy inside the calling transaction.
// Only coordinators call this, always together with the matching booking
// write, so the room/booking invariant holds at every commit.
func (r *RoomRepo) SetStatusTx(ctx context.Context, tx *sql.Tx, id, status string) error {
	const q = `UPDATE rooms SET status = ? WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrRoomNotFound
	}
	return nil
}
