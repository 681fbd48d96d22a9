package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prasadvy/hotel-room-booking/internal/model"
)

// BookingRepo provides record-level writes for the booking ledger and
// the read queries behind the history, active-stay and dashboard views.
// The write methods all take a *sql.Tx because they only ever run inside
// a coordinator transaction together with the room-status write.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, room_id, room_no, guest_name, guest_phone, guest_count,
       id_proof_ref, amount, check_in, check_out, status, predecessor_id, created_at`

func scanBooking(row interface{ Scan(...any) error }, b *model.Booking) error {
	var checkOut sql.NullTime
	var pred sql.NullString
	err := row.Scan(&b.ID, &b.RoomID, &b.RoomNo, &b.GuestName, &b.GuestPhone, &b.GuestCount,
		&b.IDProofRef, &b.Amount, &b.CheckIn, &checkOut, &b.Status, &pred, &b.CreatedAt)
	if err != nil {
		return err
	}
	if checkOut.Valid {
		t := checkOut.Time
		b.CheckOut = &t
	}
	if pred.Valid {
		p := pred.String
		b.PredecessorID = &p
	}
	return nil
}

// InsertTx writes a new booking within the calling transaction and
// assigns its identifier.  CreatedAt is left to the database default and
// read back by the caller if needed.
func (r *BookingRepo) InsertTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	var checkOut sql.NullTime
	if b.CheckOut != nil {
		checkOut = sql.NullTime{Time: *b.CheckOut, Valid: true}
	}
	var pred sql.NullString
	if b.PredecessorID != nil {
		pred = sql.NullString{String: *b.PredecessorID, Valid: true}
	}
	const q = `INSERT INTO bookings
	       (id, room_id, room_no, guest_name, guest_phone, guest_count,
	        id_proof_ref, amount, check_in, check_out, status, predecessor_id)
	       VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, q, b.ID, b.RoomID, b.RoomNo, b.GuestName, b.GuestPhone,
		b.GuestCount, b.IDProofRef, b.Amount, b.CheckIn, checkOut, b.Status, pred)
	if err != nil {
		return err
	}
	if b.CreatedAt.IsZero() {
		const sel = `SELECT created_at FROM bookings WHERE id = ?`
		if err := tx.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt); err != nil {
			return err
		}
	}
	return nil
}

// GetForUpdateTx re-reads a booking inside a transaction and locks the
// row until commit.  Returns ErrBookingNotFound when absent.
func (r *BookingRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id string) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ? FOR UPDATE`
	var b model.Booking
	if err := scanBooking(tx.QueryRowContext(ctx, q, id), &b); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// TransitionTx moves a booking to a new lifecycle state inside the
// calling transaction, optionally setting its checkout instant.  The
// allowed set is enforced here: the UPDATE only matches rows whose
// current state may legally move to newStatus, and a miss is classified
// as either ErrBookingNotFound or ErrInvalidTransition by a follow-up
// read.
func (r *BookingRepo) TransitionTx(ctx context.Context, tx *sql.Tx, id, newStatus string, checkOut *time.Time) error {
	from := model.TransitionSources(newStatus)
	if len(from) == 0 {
		return ErrInvalidTransition
	}
	q := `UPDATE bookings SET status = ?, check_out = ? WHERE id = ? AND status IN (?` +
		strings.Repeat(", ?", len(from)-1) + `)`
	var co sql.NullTime
	if checkOut != nil {
		co = sql.NullTime{Time: *checkOut, Valid: true}
	}
	args := make([]any, 0, 3+len(from))
	args = append(args, newStatus, co, id)
	for _, f := range from {
		args = append(args, f)
	}
	res, err := tx.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetForUpdateTx(ctx, tx, id); err != nil {
			return err
		}
		return ErrInvalidTransition
	}
	return nil
}

// GetByID loads a single booking outside any transaction.  Returns
// ErrBookingNotFound when absent.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	var b model.Booking
	if err := scanBooking(r.db.QueryRowContext(ctx, q, id), &b); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ListActive returns every booking whose stay is currently open for
// occupancy display, ordered by room number the way the front desk lists
// rooms.  Only Active bookings appear: an Extended booking is frozen and
// represented by its Active successor.
func (r *BookingRepo) ListActive(ctx context.Context) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE status = ? ORDER BY room_no`
	return r.list(ctx, q, model.BookingActive)
}

// ListAll returns the full booking history, newest first.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`
	return r.list(ctx, q)
}

// ListCheckedInBetween returns bookings whose check-in falls inside the
// half-open range [from, to).  The dashboard aggregates over this set.
func (r *BookingRepo) ListCheckedInBetween(ctx context.Context, from, to time.Time) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings
	       WHERE check_in >= ? AND check_in < ? ORDER BY check_in`
	return r.list(ctx, q, from, to)
}

// Chain returns the full extension chain that the given booking belongs
// to, oldest first.  It walks predecessor links back to the first cycle
// and successor links forward to the newest.  Chains are short (one entry
// per extended cycle), so walking row by row is fine.
func (r *BookingRepo) Chain(ctx context.Context, id string) ([]model.Booking, error) {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	chain := []model.Booking{*b}
	// Walk backwards to the first booking of the stay.
	for cur := b; cur.PredecessorID != nil; {
		prev, err := r.GetByID(ctx, *cur.PredecessorID)
		if err != nil {
			return nil, err
		}
		chain = append([]model.Booking{*prev}, chain...)
		cur = prev
	}
	// Walk forwards through successors.
	const succQ = `SELECT ` + bookingColumns + ` FROM bookings WHERE predecessor_id = ?`
	for cur := chain[len(chain)-1]; ; {
		var next model.Booking
		err := scanBooking(r.db.QueryRowContext(ctx, succQ, cur.ID), &next)
		if err == sql.ErrNoRows {
			break
		}
		if err != nil {
			return nil, err
		}
		chain = append(chain, next)
		cur = next
	}
	return chain, nil
}

func (r *BookingRepo) list(ctx context.Context, q string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
