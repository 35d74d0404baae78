package model

import "time"

// Room is a bookable hotel room as stored in the `rooms` table.
// Capacity is the hard ceiling on simultaneous bookings referencing
// the room; occupancy is counted at booking time rather than cached.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – room label (e.g. "101").
//  Capacity  – maximum number of simultaneous occupants.
//  HotelID   – hotel the room belongs to.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type Room struct {
	ID        uint64    `json:"id"`         // rooms.id
	Name      string    `json:"name"`       // rooms.name
	Capacity  int       `json:"capacity"`   // rooms.capacity
	HotelID   uint64    `json:"hotel_id"`   // rooms.hotel_id
	CreatedAt time.Time `json:"created_at"` // rooms.created_at
	UpdatedAt time.Time `json:"updated_at"` // rooms.updated_at
}
