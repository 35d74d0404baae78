package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/conference-hotel-booking/internal/booking"
	"github.com/iliyamo/conference-hotel-booking/internal/model"
)

// Store bundles the entity repositories into the persistence port the
// booking engine is constructed with.  The write paths re-verify the
// capacity ceiling inside a transaction that locks the room row, so
// two concurrent bookings against the last free slot cannot both
// succeed even though the engine's own check-then-write is not
// atomic.  In the non-racing case the observable behavior is the
// same as the engine's plain checks.
type Store struct {
	db          *sql.DB
	Enrollments *EnrollmentRepo
	Tickets     *TicketRepo
	Rooms       *RoomRepo
	Bookings    *BookingRepo
}

// NewStore returns a Store wiring all repositories to the given database.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:          db,
		Enrollments: NewEnrollmentRepo(db),
		Tickets:     NewTicketRepo(db),
		Rooms:       NewRoomRepo(db),
		Bookings:    NewBookingRepo(db),
	}
}

// FindEnrollmentByUser resolves a user to their enrollment record.
func (s *Store) FindEnrollmentByUser(ctx context.Context, userID uint64) (*model.Enrollment, error) {
	return s.Enrollments.GetByUserID(ctx, userID)
}

// FindTicketByEnrollment resolves an enrollment to its ticket with
// the ticket type joined in.
func (s *Store) FindTicketByEnrollment(ctx context.Context, enrollmentID uint64) (*model.Ticket, error) {
	return s.Tickets.GetByEnrollmentID(ctx, enrollmentID)
}

// FindRoom resolves a room id to the full room record.
func (s *Store) FindRoom(ctx context.Context, roomID uint64) (*model.Room, error) {
	return s.Rooms.GetByID(ctx, roomID)
}

// CountBookingsForRoom returns the room's current occupancy.
func (s *Store) CountBookingsForRoom(ctx context.Context, roomID uint64) (int, error) {
	return s.Bookings.CountByRoom(ctx, roomID)
}

// FindBookingWithRoomByUser returns the user's current booking joined
// with its room.
func (s *Store) FindBookingWithRoomByUser(ctx context.Context, userID uint64) (*model.BookingWithRoom, error) {
	return s.Bookings.GetWithRoomByUser(ctx, userID)
}

// CreateBooking inserts a booking after locking the room row and
// re-checking occupancy inside one transaction.  When a concurrent
// booking filled the room first, booking.ErrForbidden is returned.
func (s *Store) CreateBooking(ctx context.Context, userID, roomID uint64) (uint64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	room, err := s.Rooms.GetByIDTx(ctx, tx, roomID)
	if err != nil {
		return 0, err
	}
	count, err := s.Bookings.CountByRoomTx(ctx, tx, roomID)
	if err != nil {
		return 0, err
	}
	if count >= room.Capacity {
		return 0, booking.ErrForbidden
	}
	id, err := s.Bookings.CreateTx(ctx, tx, userID, roomID)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return id, nil
}

// UpdateBookingRoom repoints a booking at a new room using the same
// lock-and-recount discipline as CreateBooking.  Absence of the
// booking surfaces as sql.ErrNoRows; the engine masks every update
// failure as forbidden.
func (s *Store) UpdateBookingRoom(ctx context.Context, bookingID, roomID uint64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	room, err := s.Rooms.GetByIDTx(ctx, tx, roomID)
	if err != nil {
		return err
	}
	count, err := s.Bookings.CountByRoomTx(ctx, tx, roomID)
	if err != nil {
		return err
	}
	if count >= room.Capacity {
		return booking.ErrForbidden
	}
	if err := s.Bookings.UpdateRoomTx(ctx, tx, bookingID, roomID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
