package model

import (
	"reflect"
	"testing"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{BookingActive, BookingExtended, true},
		{BookingActive, BookingCompleted, true},
		{BookingExtended, BookingCompleted, true},
		{BookingExtended, BookingActive, false},
		{BookingExtended, BookingExtended, false},
		{BookingCompleted, BookingActive, false},
		{BookingCompleted, BookingExtended, false},
		{BookingCompleted, BookingCompleted, false},
		{BookingActive, BookingActive, false},
		{"", BookingCompleted, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestTransitionSources(t *testing.T) {
	cases := []struct {
		to   string
		want []string
	}{
		{BookingExtended, []string{BookingActive}},
		{BookingCompleted, []string{BookingActive, BookingExtended}},
		{BookingActive, nil},
		{"", nil},
	}
	for _, c := range cases {
		if got := TransitionSources(c.to); !reflect.DeepEqual(got, c.want) {
			t.Errorf("TransitionSources(%q) = %v, want %v", c.to, got, c.want)
		}
	}
	// Round-trip: every source listed for a target must satisfy
	// CanTransition, so the two views cannot disagree.
	for _, to := range []string{BookingActive, BookingExtended, BookingCompleted} {
		for _, from := range TransitionSources(to) {
			if !CanTransition(from, to) {
				t.Errorf("TransitionSources(%q) lists %q but CanTransition rejects it", to, from)
			}
		}
	}
}

func TestOpen(t *testing.T) {
	for status, want := range map[string]bool{
		BookingActive:    true,
		BookingExtended:  true,
		BookingCompleted: false,
	} {
		b := Booking{Status: status}
		if got := b.Open(); got != want {
			t.Errorf("Open() with status %q = %v, want %v", status, got, want)
		}
	}
}
