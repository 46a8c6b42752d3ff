// Package store exposes the appointment collections behind the same four
// operations the original widget had against its document database: create,
// read-all, delete-by-id and subscribe. Subscribers always receive the
// complete current snapshot of a collection, never a diff, and receive one
// snapshot immediately on subscribing.
package store

import (
	"context"

	"github.com/ellucho77/HerbaBeauty/internal/model"
)

// Collection names one of the two logical collections.
type Collection string

const (
	// Active holds appointments that are still pending.
	Active Collection = "appointments"
	// History holds completed appointments.
	History Collection = "historical_appointments"
)

// Valid reports whether c names a known collection.
func (c Collection) Valid() bool { return c == Active || c == History }

// Store is the contract the booking and completion workflows, the views and
// the stream handler are written against.
type Store interface {
	// Create inserts a record into the collection and returns its new ID.
	Create(ctx context.Context, col Collection, a model.Appointment) (uint64, error)
	// ReadAll returns the complete current snapshot of the collection.
	ReadAll(ctx context.Context, col Collection) ([]model.Appointment, error)
	// DeleteByID removes one record. repository.ErrNotFound is returned
	// when the ID is absent.
	DeleteByID(ctx context.Context, col Collection, id uint64) error
	// Subscribe registers fn to be called with the current snapshot now and
	// with a fresh snapshot after every subsequent mutation of the
	// collection, by this instance or any other.
	Subscribe(col Collection, fn func([]model.Appointment)) (*Subscription, error)
}

// Subscription is a cancellable handle returned by Subscribe.
type Subscription struct {
	cancel func()
}

// Cancel stops further snapshot deliveries. Safe to call more than once and
// on a nil subscription.
func (s *Subscription) Cancel() {
	if s != nil && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
