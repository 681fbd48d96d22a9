package store

import (
	"context"
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"deadlock", &mysql.MySQLError{Number: 1213}, true},
		{"lock wait timeout", &mysql.MySQLError{Number: 1205}, true},
		{"duplicate key", &mysql.MySQLError{Number: 1062}, false},
		{"plain error", errors.New("boom"), false},
		{"wrapped deadlock", errors.Join(errors.New("ctx"), &mysql.MySQLError{Number: 1213}), true},
	}
	for _, c := range cases {
		if got := isRetryable(c.err); got != c.want {
			t.Errorf("%s: isRetryable = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestWithRetry_SucceedsAfterConflicts(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), 4, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return &mysql.MySQLError{Number: 1213}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("withRetry returned %v, want nil", err)
	}
	if calls != 3 {
		t.Errorf("attempts = %d, want 3", calls)
	}
}

func TestWithRetry_ExhaustionSurfacesConflict(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), 3, func(ctx context.Context) error {
		calls++
		return &mysql.MySQLError{Number: 1205}
	})
	if !errors.Is(err, ErrTxConflict) {
		t.Fatalf("withRetry returned %v, want ErrTxConflict", err)
	}
	if calls != 3 {
		t.Errorf("attempts = %d, want 3", calls)
	}
}

func TestWithRetry_DomainErrorNotRetried(t *testing.T) {
	calls := 0
	boom := errors.New("validation failed")
	err := withRetry(context.Background(), 4, func(ctx context.Context) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("withRetry returned %v, want original error", err)
	}
	if calls != 1 {
		t.Errorf("attempts = %d, want 1", calls)
	}
}

func TestNew_AttemptBoundDefaulted(t *testing.T) {
	s := New(nil, 0)
	if s.maxAttempts != DefaultMaxAttempts {
		t.Errorf("maxAttempts = %d, want %d", s.maxAttempts, DefaultMaxAttempts)
	}
}
