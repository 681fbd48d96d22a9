package coordinator

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/prasadvy/hotel-room-booking/internal/model"
	"github.com/prasadvy/hotel-room-booking/internal/repository"
)

// memStore is an in-memory stand-in for the MySQL store used by the
// coordinator tests.  RunInTx stages a copy of both collections, runs
// the function against the copy, and only swaps it in when the function
// succeeds, mirroring commit/rollback semantics.  The same value doubles
// as RoomStore and BookingStore; the *sql.Tx parameter is ignored.
type memStore struct {
	rooms    map[string]model.Room
	bookings map[string]model.Booking
	staged   *memState
	nextID   int
}

type memState struct {
	rooms    map[string]model.Room
	bookings map[string]model.Booking
}

func newMemStore() *memStore {
	return &memStore{
		rooms:    make(map[string]model.Room),
		bookings: make(map[string]model.Booking),
	}
}

func (s *memStore) addRoom(id, roomNo, roomType, status string) {
	s.rooms[id] = model.Room{ID: id, RoomNo: roomNo, RoomType: roomType, Status: status}
}

func (s *memStore) addBooking(b model.Booking) {
	s.bookings[b.ID] = b
}

func (s *memStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	s.staged = &memState{
		rooms:    make(map[string]model.Room, len(s.rooms)),
		bookings: make(map[string]model.Booking, len(s.bookings)),
	}
	for k, v := range s.rooms {
		s.staged.rooms[k] = v
	}
	for k, v := range s.bookings {
		s.staged.bookings[k] = v
	}
	err := fn(ctx, nil)
	if err == nil {
		s.rooms = s.staged.rooms
		s.bookings = s.staged.bookings
	}
	s.staged = nil
	return err
}

func (s *memStore) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id string) (*model.Room, error) {
	room, ok := s.staged.rooms[id]
	if !ok {
		return nil, repository.ErrRoomNotFound
	}
	return &room, nil
}

func (s *memStore) SetStatusTx(ctx context.Context, tx *sql.Tx, id, status string) error {
	room, ok := s.staged.rooms[id]
	if !ok {
		return repository.ErrRoomNotFound
	}
	room.Status = status
	s.staged.rooms[id] = room
	return nil
}

func (s *memStore) InsertTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	if b.ID == "" {
		s.nextID++
		b.ID = fmt.Sprintf("bk-%d", s.nextID)
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	s.staged.bookings[b.ID] = *b
	return nil
}

// bookingGetForUpdate is split out so memStore can satisfy both store
// interfaces despite the clashing method name.
type bookingSide struct{ s *memStore }

func (bs bookingSide) InsertTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	return bs.s.InsertTx(ctx, tx, b)
}

func (bs bookingSide) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id string) (*model.Booking, error) {
	b, ok := bs.s.staged.bookings[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	return &b, nil
}

func (bs bookingSide) TransitionTx(ctx context.Context, tx *sql.Tx, id, newStatus string, checkOut *time.Time) error {
	b, ok := bs.s.staged.bookings[id]
	if !ok {
		return repository.ErrBookingNotFound
	}
	if !model.CanTransition(b.Status, newStatus) {
		return repository.ErrInvalidTransition
	}
	b.Status = newStatus
	b.CheckOut = checkOut
	bs.s.staged.bookings[id] = b
	return nil
}

func (s *memStore) bookingStore() BookingStore { return bookingSide{s: s} }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
