package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/conference-hotel-booking/internal/model"
)

// RoomRepo provides read access to hotel rooms.  Room occupancy is
// derived from the bookings table at query time; no counter column is
// maintained.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// GetByID returns a single room.  When no room with the given id
// exists, sql.ErrNoRows is returned.
func (r *RoomRepo) GetByID(ctx context.Context, roomID uint64) (*model.Room, error) {
	const q = `SELECT id, name, capacity, hotel_id, created_at, updated_at FROM rooms WHERE id = ? LIMIT 1`
	var rm model.Room
	err := r.db.QueryRowContext(ctx, q, roomID).Scan(
		&rm.ID, &rm.Name, &rm.Capacity, &rm.HotelID, &rm.CreatedAt, &rm.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

// GetByIDTx is GetByID within an existing transaction, locking the
// room row for update so concurrent capacity checks against the same
// room serialize.
func (r *RoomRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, roomID uint64) (*model.Room, error) {
	const q = `SELECT id, name, capacity, hotel_id, created_at, updated_at FROM rooms WHERE id = ? FOR UPDATE`
	var rm model.Room
	err := tx.QueryRowContext(ctx, q, roomID).Scan(
		&rm.ID, &rm.Name, &rm.Capacity, &rm.HotelID, &rm.CreatedAt, &rm.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

// RoomWithOccupancy is a room together with its current number of
// bookings.  It is returned by ListByHotel for the browse endpoint.
type RoomWithOccupancy struct {
	model.Room
	Occupied int
}

// ListByHotel returns all rooms of one hotel ordered by name, each
// with its current occupancy.
func (r *RoomRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]RoomWithOccupancy, error) {
	const q = `SELECT rm.id, rm.name, rm.capacity, rm.hotel_id, rm.created_at, rm.updated_at,
	                  (SELECT COUNT(*) FROM bookings b WHERE b.room_id = rm.id)
	           FROM rooms rm
	           WHERE rm.hotel_id = ?
	           ORDER BY rm.name`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []RoomWithOccupancy{}
	for rows.Next() {
		var rw RoomWithOccupancy
		if err := rows.Scan(&rw.ID, &rw.Name, &rw.Capacity, &rw.HotelID, &rw.CreatedAt, &rw.UpdatedAt, &rw.Occupied); err != nil {
			return nil, err
		}
		out = append(out, rw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
