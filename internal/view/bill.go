package view

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/prasadvy/hotel-room-booking/internal/model"
)

// BillItem is one billing cycle on a bill, in chain order.
type BillItem struct {
	BookingID string          `json:"booking_id"`
	CheckIn   time.Time       `json:"check_in"`
	CheckOut  *time.Time      `json:"check_out"`
	Amount    decimal.Decimal `json:"amount"`
}

// Bill is the read-only export of a stay: every cycle in the extension
// chain with the summed amount.  It is assembled from booking records
// alone and never written back.
type Bill struct {
	GuestName  string          `json:"guest_name"`
	GuestPhone string          `json:"guest_phone"`
	RoomNo     string          `json:"room_no"`
	CheckIn    time.Time       `json:"check_in"`
	CheckOut   *time.Time      `json:"check_out"`
	Settled    bool            `json:"settled"`
	Items      []BillItem      `json:"items"`
	Total      decimal.Decimal `json:"total"`
}

// BuildBill assembles a bill from a stay's extension chain, which must
// be ordered oldest first (as repository.Chain returns it).  CheckIn is
// the first cycle's check-in, CheckOut the last cycle's checkout, and
// Settled reports whether the stay has fully completed.
func BuildBill(chain []model.Booking) Bill {
	bill := Bill{Total: decimal.Zero, Items: make([]BillItem, 0, len(chain))}
	if len(chain) == 0 {
		return bill
	}
	first, last := chain[0], chain[len(chain)-1]
	bill.GuestName = last.GuestName
	bill.GuestPhone = last.GuestPhone
	bill.RoomNo = last.RoomNo
	bill.CheckIn = first.CheckIn
	bill.CheckOut = last.CheckOut
	bill.Settled = last.Status == model.BookingCompleted
	for _, b := range chain {
		bill.Items = append(bill.Items, BillItem{
			BookingID: b.ID,
			CheckIn:   b.CheckIn,
			CheckOut:  b.CheckOut,
			Amount:    b.Amount,
		})
		bill.Total = bill.Total.Add(b.Amount)
	}
	return bill
}
