// Package repository contains the MySQL data access layer, separated from
// HTTP handlers and from the booking core. Missing rows are reported by
// wrapping booking.ErrNotFound so the service and handlers work against a
// single error taxonomy; errors specific to storage constraints live here.
package repository

import "errors"

// ErrNameTaken is returned when an insert or update would violate the
// unique category name constraint. Handlers should translate this into an
// HTTP 400 response on the name field.
var ErrNameTaken = errors.New("name already in use")
