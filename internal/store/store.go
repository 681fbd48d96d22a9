// Package store wraps the database in the single primitive the
// coordinators are allowed to call: an atomic multi-record transaction
// with bounded retry on commit conflicts.  Every coordinator re-reads the
// records it cares about inside the transaction, so a retry simply reruns
// the whole function against fresh state.
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
)

// ErrTxConflict is returned when a transaction could not commit within
// the configured number of attempts because concurrent writers kept
// touching the same rows.  Callers may re-attempt the whole user-level
// action; no partial effect has been applied.
var ErrTxConflict = errors.New("transaction conflict")

// DefaultMaxAttempts bounds how often a conflicting transaction is
// retried before ErrTxConflict is surfaced.
const DefaultMaxAttempts = 4

// TxRunner executes a function inside one atomic transaction.  The
// function either commits as a whole or leaves no trace.  Validation and
// domain errors returned by fn abort the transaction and are passed
// through unchanged; only serialization conflicts are retried.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error
}

// Store is the MySQL-backed TxRunner used in production.
type Store struct {
	db          *sql.DB
	maxAttempts int
}

// New returns a Store bound to the given database.  maxAttempts values
// below 1 fall back to DefaultMaxAttempts.
func New(db *sql.DB, maxAttempts int) *Store {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Store{db: db, maxAttempts: maxAttempts}
}

// DB exposes the underlying handle for read-only queries that do not
// need transactional isolation.
func (s *Store) DB() *sql.DB { return s.db }

// RunInTx begins a transaction, runs fn and commits.  On a deadlock or
// lock-wait timeout the whole transaction is retried from the beginning
// up to the attempt bound; afterwards ErrTxConflict is returned.  Any
// other error from fn rolls back and is returned as-is.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	return withRetry(ctx, s.maxAttempts, func(ctx context.Context) error {
		return s.attempt(ctx, fn)
	})
}

func (s *Store) attempt(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// withRetry reruns attempt while it fails with a retryable conflict,
// waiting briefly between attempts.  Non-retryable errors are returned
// immediately and never consume attempts.
func withRetry(ctx context.Context, maxAttempts int, attempt func(ctx context.Context) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		lastErr = attempt(ctx)
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) {
			return lastErr
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(i+1) * 25 * time.Millisecond):
		}
	}
	return ErrTxConflict
}

// isRetryable reports whether the error is a serialization conflict that
// a fresh attempt can resolve: MySQL 1213 (deadlock victim) or 1205
// (lock wait timeout).
func isRetryable(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1213 || myErr.Number == 1205
	}
	return false
}
