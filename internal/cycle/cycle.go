// Package cycle computes billing-cycle boundaries for guest stays.  A stay
// is billed in daily cycles that roll over at a fixed cutover hour rather
// than at midnight: a guest who checks in before the cutover is due the
// same day, a guest who checks in at or after it is due the next day.
// All functions here are pure; the cutover hour is passed in from
// configuration.
package cycle

import "time"

// DefaultCutoverHour is the hour of day at which billing cycles roll over
// when no explicit configuration is provided.
const DefaultCutoverHour = 12

// End returns the instant at which the current billing cycle of a stay
// closes, given the stay's check-in time and the cutover hour.  The
// boundary is the cutover hour on the check-in's calendar day; check-ins
// at or after the cutover push the boundary to the following day.  A
// check-in at exactly the cutover hour rolls forward.  The calendar day
// is taken in the check-in's own location.
func End(checkIn time.Time, cutoverHour int) time.Time {
	end := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(),
		cutoverHour, 0, 0, 0, checkIn.Location())
	if checkIn.Hour() >= cutoverHour {
		end = end.AddDate(0, 0, 1)
	}
	return end
}

// Overdue reports whether a stay whose cycle closes at cycleEnd has
// passed its boundary at the given instant.  A stay exactly at its
// boundary is not yet overdue.
func Overdue(cycleEnd, now time.Time) bool {
	return now.After(cycleEnd)
}
