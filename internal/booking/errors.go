// Package booking implements the booking allocation engine: the
// eligibility and capacity rules that decide whether an attendee may
// hold a given hotel room.  It sits between the HTTP handlers and the
// persistence layer and holds no state of its own; all reads and
// writes go through the injected Store.
package booking

import "errors"

// ErrNotFound is returned when a referenced entity (enrollment,
// ticket, room or booking) does not exist.  Handlers should translate
// this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the entities exist but a business
// rule disallows the action: wrong ticket type or status, room at
// capacity, or an invalid booking reference.  Handlers should
// translate this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")
