package repository

import "context"

// Transactor runs fn inside a single database transaction. Repositories
// called with the ctx passed to fn take part in that transaction; returning
// an error from fn rolls everything back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CounterRepository hands out values from named monotonic counters
type CounterRepository interface {
	// Next locks the named counter and returns max(current, floor)+1, storing it.
	// Must be called inside a transaction.
	Next(ctx context.Context, name string, floor int64) (int64, error)
}
