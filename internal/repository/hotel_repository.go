package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/conference-hotel-booking/internal/model"
)

// HotelRepo provides read access to the partner hotel catalog.  The
// catalog itself is managed out of band; this service only lists it
// for attendees browsing where to stay.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo returns a new HotelRepo bound to the given database.
func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

// HotelSummary is a hotel together with the number of rooms it
// offers.  It is returned by List for the public browse endpoint.
type HotelSummary struct {
	model.Hotel
	RoomCount int
}

// List returns all hotels ordered by name, each with its room count.
func (r *HotelRepo) List(ctx context.Context) ([]HotelSummary, error) {
	const q = `SELECT h.id, h.name, h.image, h.created_at, h.updated_at,
	                  (SELECT COUNT(*) FROM rooms rm WHERE rm.hotel_id = h.id)
	           FROM hotels h
	           ORDER BY h.name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hotels := []HotelSummary{}
	for rows.Next() {
		var h HotelSummary
		if err := rows.Scan(&h.ID, &h.Name, &h.Image, &h.CreatedAt, &h.UpdatedAt, &h.RoomCount); err != nil {
			return nil, err
		}
		hotels = append(hotels, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return hotels, nil
}

// Exists reports whether a hotel with the given id is in the catalog.
func (r *HotelRepo) Exists(ctx context.Context, hotelID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM hotels WHERE id = ? LIMIT 1`, hotelID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
