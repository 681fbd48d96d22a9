package cycle

import (
	"testing"
	"time"
)

func TestEnd_BeforeCutover(t *testing.T) {
	checkIn := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	want := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	if got := End(checkIn, 12); !got.Equal(want) {
		t.Errorf("End(%v, 12) = %v, want %v", checkIn, got, want)
	}
}

func TestEnd_AfterCutover(t *testing.T) {
	checkIn := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)
	want := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)
	if got := End(checkIn, 12); !got.Equal(want) {
		t.Errorf("End(%v, 12) = %v, want %v", checkIn, got, want)
	}
}

func TestEnd_ExactlyAtCutoverRollsForward(t *testing.T) {
	checkIn := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	want := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)
	if got := End(checkIn, 12); !got.Equal(want) {
		t.Errorf("End(%v, 12) = %v, want %v", checkIn, got, want)
	}
}

func TestEnd_MinutesAndSecondsZeroed(t *testing.T) {
	checkIn := time.Date(2025, 3, 1, 9, 45, 31, 120, time.UTC)
	got := End(checkIn, 12)
	if got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("End(%v, 12) = %v, want zeroed minutes/seconds", checkIn, got)
	}
}

func TestEnd_CrossesMonthBoundary(t *testing.T) {
	checkIn := time.Date(2025, 1, 31, 23, 10, 0, 0, time.UTC)
	want := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	if got := End(checkIn, 12); !got.Equal(want) {
		t.Errorf("End(%v, 12) = %v, want %v", checkIn, got, want)
	}
}

func TestEnd_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	checkIn := time.Date(2025, 3, 1, 14, 0, 0, 0, loc)
	got := End(checkIn, 12)
	if got.Location() != loc {
		t.Errorf("End location = %v, want %v", got.Location(), loc)
	}
	if got.Hour() != 12 || got.Day() != 2 {
		t.Errorf("End(%v, 12) = %v, want day 2 at 12:00 local", checkIn, got)
	}
}

func TestOverdue(t *testing.T) {
	end := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		now  time.Time
		want bool
	}{
		{end.Add(-time.Minute), false},
		{end, false},
		{end.Add(time.Second), true},
	}
	for _, c := range cases {
		if got := Overdue(end, c.now); got != c.want {
			t.Errorf("Overdue(%v, %v) = %v, want %v", end, c.now, got, c.want)
		}
	}
}
