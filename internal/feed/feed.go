// Package feed gives read-side consumers live snapshots of the rooms and
// bookings collections.  Coordinator commits publish a change
// notification on a Redis channel; subscribers re-query the collection
// and receive a full current snapshot per notification.  Snapshots are
// eventually consistent and never feed a write path — every coordinator
// re-reads authoritative state inside its own transaction.
package feed

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/prasadvy/hotel-room-booking/internal/model"
)

// RoomLister and BookingLister are the read surfaces the feed re-queries
// on each change notification.  The repositories satisfy both.
type RoomLister interface {
	ListAll(ctx context.Context) ([]model.Room, error)
}

type BookingLister interface {
	ListAll(ctx context.Context) ([]model.Booking, error)
}

// Collection names one of the two record collections.
type Collection string

const (
	Rooms    Collection = "rooms"
	Bookings Collection = "bookings"
)

func (c Collection) channel() string { return "feed:" + string(c) }

// Snapshot is one full view of a collection at a point in time.  Exactly
// one of Rooms/Bookings is populated, matching the subscribed collection.
type Snapshot struct {
	Collection Collection      `json:"collection"`
	At         time.Time       `json:"at"`
	Rooms      []model.Room    `json:"rooms,omitempty"`
	Bookings   []model.Booking `json:"bookings,omitempty"`
}

// Feed publishes and serves collection change notifications.  A nil
// Redis client degrades gracefully: Notify becomes a no-op and Subscribe
// delivers a single snapshot and closes, so the service keeps working
// without live updates.
type Feed struct {
	rdb      *redis.Client
	rooms    RoomLister
	bookings BookingLister
}

// New returns a Feed over the given repositories.  rdb may be nil.
func New(rdb *redis.Client, rooms RoomLister, bookings BookingLister) *Feed {
	return &Feed{rdb: rdb, rooms: rooms, bookings: bookings}
}

// Notify signals that a collection changed.  Called by the handlers
// after a coordinator transaction commits.  Failures are logged and
// swallowed; a missed notification only delays a snapshot, it cannot
// corrupt state.
func (f *Feed) Notify(ctx context.Context, collections ...Collection) {
	if f == nil || f.rdb == nil {
		return
	}
	for _, c := range collections {
		if err := f.rdb.Publish(ctx, c.channel(), time.Now().UTC().Format(time.RFC3339Nano)).Err(); err != nil {
			log.Printf("feed: publish %s failed: %v", c, err)
		}
	}
}

// Subscribe returns a channel of snapshots for one collection.  The
// current snapshot is delivered first, then a fresh one per change
// notification.  The channel closes when ctx is cancelled or the
// underlying subscription ends; reconnecting is the caller's concern.
func (f *Feed) Subscribe(ctx context.Context, c Collection) (<-chan Snapshot, error) {
	out := make(chan Snapshot, 1)

	first, err := f.snapshot(ctx, c)
	if err != nil {
		close(out)
		return out, err
	}
	out <- first

	if f.rdb == nil {
		close(out)
		return out, nil
	}

	sub := f.rdb.Subscribe(ctx, c.channel())
	go func() {
		defer close(out)
		defer func() { _ = sub.Close() }()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				snap, err := f.snapshot(ctx, c)
				if err != nil {
					log.Printf("feed: snapshot %s failed: %v", c, err)
					continue
				}
				select {
				case out <- snap:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (f *Feed) snapshot(ctx context.Context, c Collection) (Snapshot, error) {
	snap := Snapshot{Collection: c, At: time.Now().UTC()}
	switch c {
	case Rooms:
		rooms, err := f.rooms.ListAll(ctx)
		if err != nil {
			return snap, err
		}
		snap.Rooms = rooms
	case Bookings:
		bookings, err := f.bookings.ListAll(ctx)
		if err != nil {
			return snap, err
		}
		snap.Bookings = bookings
	}
	return snap, nil
}
