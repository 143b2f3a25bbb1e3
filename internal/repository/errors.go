// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific errors.
package repository

import "errors"

// ErrReservationNotFound is returned when a reservation id does not
// resolve to a row. Handlers should translate this into an HTTP 404
// response.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrMemberNotFound is returned when a member lookup (by name or LINE
// user id) matches no row.
var ErrMemberNotFound = errors.New("member not found")

// ErrSpecialEventNotFound is returned when a special-event id does not
// resolve to a row. Handlers should translate this into an HTTP 404
// response.
var ErrSpecialEventNotFound = errors.New("special event not found")
