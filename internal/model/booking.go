package model

import "time"

// Booking assigns one user to one room, as stored in the `bookings`
// table.  A room may be referenced by multiple bookings up to its
// capacity; in the normal flow a user holds at most one booking at a
// time, though the schema does not enforce that.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who holds the booking.
//  RoomID    – room being occupied.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type Booking struct {
	ID        uint64    // bookings.id
	UserID    uint64    // bookings.user_id
	RoomID    uint64    // bookings.room_id
	CreatedAt time.Time // bookings.created_at
	UpdatedAt time.Time // bookings.updated_at
}

// BookingWithRoom pairs a booking identifier with the full record of
// the room it occupies.  It is the shape returned when an attendee
// views their current booking.
type BookingWithRoom struct {
	ID   uint64 `json:"id"`
	Room Room   `json:"room"`
}
