package view

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prasadvy/hotel-room-booking/internal/model"
)

func day(d, hour int) time.Time {
	return time.Date(2025, 3, d, hour, 0, 0, 0, time.UTC)
}

func TestBuildDashboard_Empty(t *testing.T) {
	d := BuildDashboard(nil, 5, day(1, 0), day(7, 0))
	if !d.TotalRevenue.Equal(decimal.Zero) || d.TotalBookings != 0 {
		t.Errorf("empty dashboard = %+v, want zeroes", d)
	}
	if len(d.RevenueByDay) != 0 || len(d.RoomPerformance) != 0 {
		t.Errorf("empty dashboard has series data: %+v", d)
	}
}

func TestBuildDashboard_Aggregates(t *testing.T) {
	bookings := []model.Booking{
		{RoomNo: "101", Amount: decimal.NewFromInt(1000), CheckIn: day(1, 10)},
		{RoomNo: "102", Amount: decimal.NewFromInt(1200), CheckIn: day(1, 11)},
		{RoomNo: "101", Amount: decimal.NewFromInt(800), CheckIn: day(2, 15)},
	}
	d := BuildDashboard(bookings, 3, day(1, 0), day(2, 23))

	if !d.TotalRevenue.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("TotalRevenue = %s, want 3000", d.TotalRevenue)
	}
	if d.TotalBookings != 3 {
		t.Errorf("TotalBookings = %d, want 3", d.TotalBookings)
	}
	if !d.AverageDailyRate.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("AverageDailyRate = %s, want 1000", d.AverageDailyRate)
	}
	// 3 bookings over 3 rooms * 2 days = 50%.
	if !d.OccupancyRate.Equal(decimal.NewFromInt(50)) {
		t.Errorf("OccupancyRate = %s, want 50", d.OccupancyRate)
	}

	if len(d.RevenueByDay) != 2 {
		t.Fatalf("RevenueByDay has %d entries, want 2", len(d.RevenueByDay))
	}
	if d.RevenueByDay[0].Date != "2025-03-01" || !d.RevenueByDay[0].Revenue.Equal(decimal.NewFromInt(2200)) {
		t.Errorf("RevenueByDay[0] = %+v, want 2025-03-01/2200", d.RevenueByDay[0])
	}
	if d.RevenueByDay[1].Date != "2025-03-02" || !d.RevenueByDay[1].Revenue.Equal(decimal.NewFromInt(800)) {
		t.Errorf("RevenueByDay[1] = %+v, want 2025-03-02/800", d.RevenueByDay[1])
	}

	if len(d.RoomPerformance) != 2 {
		t.Fatalf("RoomPerformance has %d entries, want 2", len(d.RoomPerformance))
	}
	if d.RoomPerformance[0].RoomNo != "101" || d.RoomPerformance[0].Bookings != 2 ||
		!d.RoomPerformance[0].Revenue.Equal(decimal.NewFromInt(1800)) {
		t.Errorf("RoomPerformance[0] = %+v, want 101 with 2 bookings and 1800", d.RoomPerformance[0])
	}
}

func TestDaysInRange(t *testing.T) {
	cases := []struct {
		from, to time.Time
		want     int
	}{
		{day(1, 0), day(1, 23), 1},
		{day(1, 9), day(3, 2), 3},
		{day(3, 0), day(1, 0), 0},
	}
	for _, c := range cases {
		if got := daysInRange(c.from, c.to); got != c.want {
			t.Errorf("daysInRange(%v, %v) = %d, want %d", c.from, c.to, got, c.want)
		}
	}
}

func TestBuildBill(t *testing.T) {
	out1 := day(2, 12)
	out2 := day(3, 9)
	pred := "b1"
	chain := []model.Booking{
		{ID: "b1", RoomNo: "101", GuestName: "A", GuestPhone: "9", Amount: decimal.NewFromInt(1000),
			CheckIn: day(1, 14), CheckOut: &out1, Status: model.BookingExtended},
		{ID: "b2", RoomNo: "101", GuestName: "A", GuestPhone: "9", Amount: decimal.NewFromInt(500),
			CheckIn: out1, CheckOut: &out2, Status: model.BookingCompleted, PredecessorID: &pred},
	}
	bill := BuildBill(chain)
	if !bill.Total.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("Total = %s, want 1500", bill.Total)
	}
	if len(bill.Items) != 2 {
		t.Fatalf("Items = %d, want 2", len(bill.Items))
	}
	if !bill.CheckIn.Equal(day(1, 14)) {
		t.Errorf("CheckIn = %v, want first cycle check-in", bill.CheckIn)
	}
	if bill.CheckOut == nil || !bill.CheckOut.Equal(out2) {
		t.Errorf("CheckOut = %v, want last cycle checkout", bill.CheckOut)
	}
	if !bill.Settled {
		t.Error("Settled = false, want true for completed chain")
	}
}

func TestBuildBill_OpenStayNotSettled(t *testing.T) {
	chain := []model.Booking{
		{ID: "b1", GuestName: "A", Amount: decimal.NewFromInt(1000), CheckIn: day(1, 14), Status: model.BookingActive},
	}
	bill := BuildBill(chain)
	if bill.Settled {
		t.Error("Settled = true, want false for open stay")
	}
	if bill.CheckOut != nil {
		t.Errorf("CheckOut = %v, want nil", bill.CheckOut)
	}
}
