// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as
// services and handlers to distinguish between failure scenarios.  For
// example, ErrForbidden indicates that the current user is not authorized
// to operate on a resource owned by someone else, while ErrNotPending
// signals that a reservation decision was attempted on a record that has
// already left the PENDING state.
package repository

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.  Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot be performed
// because of conflicting state, such as deleting an entity that still has
// pending reservations.  Handlers should translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrNotPending is returned when an approval or rejection targets a
// reservation whose status is no longer PENDING.  The decision is not
// applied; handlers should translate this into HTTP 409.
var ErrNotPending = errors.New("reservation is not pending")

// ErrEmailExists is returned by UserRepo.Create when the email address is
// already registered.
var ErrEmailExists = errors.New("email already exists")

// isDuplicateKey reports whether err is a MySQL duplicate-key violation
// (error code 1062).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
