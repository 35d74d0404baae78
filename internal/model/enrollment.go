package model

import "time"

// Enrollment records a user's registration for the conference as
// stored in the `enrollments` table.  Its existence is what marks a
// user as a participant; a user who never enrolled cannot buy a
// ticket or book a room.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who enrolled (one enrollment per user).
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type Enrollment struct {
	ID        uint64    // enrollments.id
	UserID    uint64    // enrollments.user_id
	CreatedAt time.Time // enrollments.created_at
	UpdatedAt time.Time // enrollments.updated_at
}
