package model

import "time"

// Hotel is a partner hotel offering rooms to attendees, as stored in
// the `hotels` table.  The catalog is managed out of band; this
// application only reads it.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – hotel display name.
//  Image     – URL of the hotel's cover image.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type Hotel struct {
	ID        uint64    // hotels.id
	Name      string    // hotels.name
	Image     string    // hotels.image
	CreatedAt time.Time // hotels.created_at
	UpdatedAt time.Time // hotels.updated_at
}
