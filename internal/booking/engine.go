package booking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/conference-hotel-booking/internal/model"
)

// Store is the persistence port the engine depends on.  Lookups
// report absence with sql.ErrNoRows, matching the repository layer.
// CreateBooking and UpdateBookingRoom may return ErrForbidden when a
// concurrent booking fills the room between the engine's capacity
// check and the write.
type Store interface {
	FindEnrollmentByUser(ctx context.Context, userID uint64) (*model.Enrollment, error)
	FindTicketByEnrollment(ctx context.Context, enrollmentID uint64) (*model.Ticket, error)
	FindRoom(ctx context.Context, roomID uint64) (*model.Room, error)
	CountBookingsForRoom(ctx context.Context, roomID uint64) (int, error)
	CreateBooking(ctx context.Context, userID, roomID uint64) (uint64, error)
	FindBookingWithRoomByUser(ctx context.Context, userID uint64) (*model.BookingWithRoom, error)
	UpdateBookingRoom(ctx context.Context, bookingID, roomID uint64) error
}

// Engine evaluates booking eligibility and room capacity and
// orchestrates booking reads and writes.  Each operation is a short
// sequential pipeline; every failed step short-circuits the rest, so
// a failed operation never leaves a new booking or an altered room
// reference behind.
type Engine struct {
	store Store
}

// NewEngine returns an Engine backed by the given store.
func NewEngine(store Store) *Engine {
	if store == nil {
		panic("nil store passed to NewEngine")
	}
	return &Engine{store: store}
}

// checkEligibility decides whether the user is currently allowed to
// book a hotel room.  The user must be enrolled, must hold a ticket,
// and that ticket must be PAID for an in-person, hotel-inclusive
// type.  Missing enrollment or ticket is ErrNotFound; a ticket that
// exists but fails the rules is ErrForbidden.
func (e *Engine) checkEligibility(ctx context.Context, userID uint64) error {
	enrollment, err := e.store.FindEnrollmentByUser(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	ticket, err := e.store.FindTicketByEnrollment(ctx, enrollment.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if ticket.Type.IsRemote || !ticket.Type.IncludesHotel || ticket.Status == model.TicketStatusReserved {
		return ErrForbidden
	}
	return nil
}

// checkCapacity decides whether the room has a free slot.  Occupancy
// is recounted on every call; capacity N refuses the (N+1)th booking,
// so count >= capacity means full.
func (e *Engine) checkCapacity(ctx context.Context, room *model.Room) error {
	count, err := e.store.CountBookingsForRoom(ctx, room.ID)
	if err != nil {
		return err
	}
	if count >= room.Capacity {
		return ErrForbidden
	}
	return nil
}

// findRoom resolves a room id, translating absence into ErrNotFound.
func (e *Engine) findRoom(ctx context.Context, roomID uint64) (*model.Room, error) {
	room, err := e.store.FindRoom(ctx, roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return room, nil
}

// Room resolves a room id, reporting absence as ErrNotFound.  The
// transport layer uses it to enrich event payloads after a
// successful allocation.
func (e *Engine) Room(ctx context.Context, roomID uint64) (*model.Room, error) {
	return e.findRoom(ctx, roomID)
}

// InsertNewBooking allocates a room to the user and returns the new
// booking's id.  It runs the eligibility rules, verifies the room
// exists and has a free slot, then creates the booking.
func (e *Engine) InsertNewBooking(ctx context.Context, userID, roomID uint64) (uint64, error) {
	if err := e.checkEligibility(ctx, userID); err != nil {
		return 0, err
	}
	room, err := e.findRoom(ctx, roomID)
	if err != nil {
		return 0, err
	}
	if err := e.checkCapacity(ctx, room); err != nil {
		return 0, err
	}
	return e.store.CreateBooking(ctx, userID, roomID)
}

// GetUserBooking returns the user's current booking joined with the
// full room record, or ErrNotFound when the user holds none.  When a
// user somehow holds several bookings the most recent one is
// returned.
func (e *Engine) GetUserBooking(ctx context.Context, userID uint64) (*model.BookingWithRoom, error) {
	bk, err := e.store.FindBookingWithRoomByUser(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return bk, nil
}

// AlterRoomBooked repoints an existing booking at a different room,
// subject to the same capacity check on the new room.  A zero booking
// id (the default when the path parameter is missing or garbage) is
// rejected with ErrForbidden before touching persistence.  Any
// failure of the update itself, including the booking not existing,
// is reported as ErrForbidden rather than ErrNotFound; callers depend
// on that mapping.  Eligibility is deliberately not re-checked here:
// an attendee who booked while eligible may move rooms even if their
// ticket state changed since.
func (e *Engine) AlterRoomBooked(ctx context.Context, bookingID, roomID uint64) error {
	if bookingID == 0 {
		return ErrForbidden
	}
	room, err := e.findRoom(ctx, roomID)
	if err != nil {
		return err
	}
	if err := e.checkCapacity(ctx, room); err != nil {
		return err
	}
	if err := e.store.UpdateBookingRoom(ctx, bookingID, roomID); err != nil {
		return ErrForbidden
	}
	return nil
}
