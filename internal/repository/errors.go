// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrNotFound indicates that a delete targeted an appointment
// that no longer exists (typically already cancelled or completed from
// another session), while ErrConflict signals that a slot is already
// taken.
package repository

import "errors"

// ErrNotFound is returned when an appointment with the requested
// identifier does not exist in the collection. Handlers should translate
// this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert would violate the one active
// appointment per (date, time) rule. Handlers should translate this into
// an HTTP 409 response.
var ErrConflict = errors.New("conflict")
