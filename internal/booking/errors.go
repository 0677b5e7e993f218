// Package booking implements the conflict and retrieval engine behind the
// event API: the access scope resolver, the time-window classifier, the
// overlap detector and the booking lifecycle service. The package talks to
// persistence, attachment storage and notification delivery only through
// the narrow interfaces declared in service.go, so every rule in here is
// testable without MySQL, a disk or a broker.
package booking

import (
	"errors"
	"fmt"
)

// Sentinel errors form the taxonomy the transport layer maps onto HTTP
// statuses. All of them mean the operation left no persisted state behind.
var (
	// ErrNotFound is returned when a category, event or user identity
	// referenced by a request does not exist.
	ErrNotFound = errors.New("booking: not found")

	// ErrOverlap is returned when a create or reschedule would intersect
	// an existing booking in the same category.
	ErrOverlap = errors.New("booking: time slot unavailable")

	// ErrForbidden is returned when the principal lacks access to the
	// specific resource, including any guest list/read attempt.
	ErrForbidden = errors.New("booking: forbidden")

	// ErrInvalidArgument is returned for malformed requests: an unknown
	// window kind, a day query without a reference date, or a booking
	// email that does not match the authenticated identity.
	ErrInvalidArgument = errors.New("booking: invalid argument")
)

// DependencyError wraps a failure of an external collaborator (attachment
// store or notifier). During attachment handling it aborts the mutation;
// during notification it is reported alongside an already committed
// booking.
type DependencyError struct {
	Op  string // collaborator operation, e.g. "store attachment"
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("booking: %s failed: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }

func dependencyErr(op string, err error) error {
	return &DependencyError{Op: op, Err: err}
}
