// Package view builds the derived, read-only projections over the two
// record collections: dashboard aggregates and bill exports.  Nothing in
// here is authoritative; every value is recomputed from booking records
// on each read and none of it feeds a write path.
package view

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prasadvy/hotel-room-booking/internal/model"
)

// DayRevenue is the revenue booked on one calendar day.
type DayRevenue struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Revenue decimal.Decimal `json:"revenue"`
}

// RoomPerformance aggregates bookings and revenue per room label.
type RoomPerformance struct {
	RoomNo   string          `json:"room_no"`
	Bookings int             `json:"bookings"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// Dashboard is the aggregate snapshot shown to staff for a date range.
type Dashboard struct {
	From             time.Time         `json:"from"`
	To               time.Time         `json:"to"`
	TotalRevenue     decimal.Decimal   `json:"total_revenue"`
	TotalBookings    int               `json:"total_bookings"`
	AverageDailyRate decimal.Decimal   `json:"average_daily_rate"`
	OccupancyRate    decimal.Decimal   `json:"occupancy_rate"` // percent
	RevenueByDay     []DayRevenue      `json:"revenue_by_day"`
	RoomPerformance  []RoomPerformance `json:"room_performance"`
}

// BuildDashboard aggregates the bookings checked in within [from, to]
// against a room pool of roomCount rooms.  Occupancy is booked
// room-nights over available room-nights across the range, as a
// percentage.  An empty booking set yields a zeroed dashboard.
func BuildDashboard(bookings []model.Booking, roomCount int, from, to time.Time) Dashboard {
	d := Dashboard{
		From:             from,
		To:               to,
		TotalRevenue:     decimal.Zero,
		AverageDailyRate: decimal.Zero,
		OccupancyRate:    decimal.Zero,
		RevenueByDay:     []DayRevenue{},
		RoomPerformance:  []RoomPerformance{},
	}
	if len(bookings) == 0 {
		return d
	}

	byDay := make(map[string]decimal.Decimal)
	byRoom := make(map[string]*RoomPerformance)
	for _, b := range bookings {
		d.TotalRevenue = d.TotalRevenue.Add(b.Amount)
		d.TotalBookings++

		day := b.CheckIn.Format("2006-01-02")
		byDay[day] = byDay[day].Add(b.Amount)

		perf, ok := byRoom[b.RoomNo]
		if !ok {
			perf = &RoomPerformance{RoomNo: b.RoomNo, Revenue: decimal.Zero}
			byRoom[b.RoomNo] = perf
		}
		perf.Bookings++
		perf.Revenue = perf.Revenue.Add(b.Amount)
	}

	d.AverageDailyRate = d.TotalRevenue.Div(decimal.NewFromInt(int64(d.TotalBookings))).Round(2)

	if nights := int64(roomCount) * int64(daysInRange(from, to)); nights > 0 {
		d.OccupancyRate = decimal.NewFromInt(int64(d.TotalBookings)).
			Div(decimal.NewFromInt(nights)).
			Mul(decimal.NewFromInt(100)).Round(2)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		d.RevenueByDay = append(d.RevenueByDay, DayRevenue{Date: day, Revenue: byDay[day]})
	}

	for _, perf := range byRoom {
		d.RoomPerformance = append(d.RoomPerformance, *perf)
	}
	sort.Slice(d.RoomPerformance, func(i, j int) bool {
		if !d.RoomPerformance[i].Revenue.Equal(d.RoomPerformance[j].Revenue) {
			return d.RoomPerformance[i].Revenue.GreaterThan(d.RoomPerformance[j].Revenue)
		}
		return d.RoomPerformance[i].RoomNo < d.RoomPerformance[j].RoomNo
	})
	return d
}

// daysInRange counts calendar days covered by [from, to], inclusive of
// both endpoints' days.
func daysInRange(from, to time.Time) int {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
