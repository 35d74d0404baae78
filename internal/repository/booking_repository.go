package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/conference-hotel-booking/internal/model"
)

// BookingRepo provides CRUD operations for room bookings.  Writes
// that must hold the room's capacity ceiling run inside a caller
// supplied transaction; the Tx variants assume the room row has
// already been locked via RoomRepo.GetByIDTx.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions
// spanning multiple repositories.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// CountByRoom returns the number of bookings currently referencing
// the room.
func (r *BookingRepo) CountByRoom(ctx context.Context, roomID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE room_id = ?`, roomID).Scan(&n)
	return n, err
}

// CountByRoomTx is CountByRoom within an existing transaction.
func (r *BookingRepo) CountByRoomTx(ctx context.Context, tx *sql.Tx, roomID uint64) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE room_id = ?`, roomID).Scan(&n)
	return n, err
}

// CreateTx inserts a new booking within the scope of an existing
// transaction and returns the generated id.  The caller must commit
// or rollback the transaction.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, userID, roomID uint64) (uint64, error) {
	res, err := tx.ExecContext(ctx, `INSERT INTO bookings (user_id, room_id) VALUES (?, ?)`, userID, roomID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetWithRoomByUser returns the user's most recent booking joined
// with the full room record.  When the user holds no booking,
// sql.ErrNoRows is returned.
func (r *BookingRepo) GetWithRoomByUser(ctx context.Context, userID uint64) (*model.BookingWithRoom, error) {
	const q = `SELECT b.id, rm.id, rm.name, rm.capacity, rm.hotel_id, rm.created_at, rm.updated_at
	           FROM bookings b
	           JOIN rooms rm ON rm.id = b.room_id
	           WHERE b.user_id = ?
	           ORDER BY b.id DESC
	           LIMIT 1`
	var bk model.BookingWithRoom
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&bk.ID, &bk.Room.ID, &bk.Room.Name, &bk.Room.Capacity, &bk.Room.HotelID,
		&bk.Room.CreatedAt, &bk.Room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bk, nil
}

// UpdateRoomTx repoints an existing booking at a different room
// within the scope of an existing transaction.  When no booking with
// the given id exists, sql.ErrNoRows is returned.  RowsAffected alone
// cannot distinguish a missing row from an unchanged one, so absence
// is verified explicitly.
func (r *BookingRepo) UpdateRoomTx(ctx context.Context, tx *sql.Tx, bookingID, roomID uint64) error {
	res, err := tx.ExecContext(ctx, `UPDATE bookings SET room_id = ? WHERE id = ?`, roomID, bookingID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var one int
		if err := tx.QueryRowContext(ctx, `SELECT 1 FROM bookings WHERE id = ? LIMIT 1`, bookingID).Scan(&one); err != nil {
			return err // sql.ErrNoRows when the booking does not exist
		}
	}
	return nil
}
