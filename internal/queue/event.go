// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published when a room is successfully
// allocated to an attendee.  It carries enough information for
// downstream consumers to log, notify, or feed analytics without
// querying the primary database.
type BookingCreatedEvent struct {
	BookingID uint64 `json:"booking_id"`
	UserID    uint64 `json:"user_id"`
	RoomID    uint64 `json:"room_id"`
	RoomName  string `json:"room_name"`
	HotelID   uint64 `json:"hotel_id"`
	Capacity  int    `json:"capacity"`
	CreatedAt string `json:"created_at"`
}

// BookingRoomChangedEvent is published when an existing booking is
// repointed at a different room.
type BookingRoomChangedEvent struct {
	BookingID uint64 `json:"booking_id"`
	RoomID    uint64 `json:"room_id"`
	RoomName  string `json:"room_name"`
	HotelID   uint64 `json:"hotel_id"`
	ChangedAt string `json:"changed_at"`
}
