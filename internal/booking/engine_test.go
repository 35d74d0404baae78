package booking_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/conference-hotel-booking/internal/booking"
	"github.com/iliyamo/conference-hotel-booking/internal/model"
)

// fakeStore is an in-memory implementation of booking.Store.  Lookups
// report absence with sql.ErrNoRows exactly like the MySQL-backed
// store.  The calls counter records every store invocation so tests
// can assert that short-circuit paths never touch persistence.
type fakeStore struct {
	enrollments map[uint64]model.Enrollment // keyed by user id
	tickets     map[uint64]model.Ticket     // keyed by enrollment id
	rooms       map[uint64]model.Room       // keyed by room id
	bookings    map[uint64]model.Booking    // keyed by booking id
	nextID      uint64
	calls       int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		enrollments: map[uint64]model.Enrollment{},
		tickets:     map[uint64]model.Ticket{},
		rooms:       map[uint64]model.Room{},
		bookings:    map[uint64]model.Booking{},
	}
}

func (s *fakeStore) FindEnrollmentByUser(_ context.Context, userID uint64) (*model.Enrollment, error) {
	s.calls++
	e, ok := s.enrollments[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &e, nil
}

func (s *fakeStore) FindTicketByEnrollment(_ context.Context, enrollmentID uint64) (*model.Ticket, error) {
	s.calls++
	t, ok := s.tickets[enrollmentID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &t, nil
}

func (s *fakeStore) FindRoom(_ context.Context, roomID uint64) (*model.Room, error) {
	s.calls++
	r, ok := s.rooms[roomID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &r, nil
}

func (s *fakeStore) CountBookingsForRoom(_ context.Context, roomID uint64) (int, error) {
	s.calls++
	n := 0
	for _, b := range s.bookings {
		if b.RoomID == roomID {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) CreateBooking(_ context.Context, userID, roomID uint64) (uint64, error) {
	s.calls++
	s.nextID++
	s.bookings[s.nextID] = model.Booking{ID: s.nextID, UserID: userID, RoomID: roomID}
	return s.nextID, nil
}

func (s *fakeStore) FindBookingWithRoomByUser(_ context.Context, userID uint64) (*model.BookingWithRoom, error) {
	s.calls++
	var latest *model.Booking
	for id := range s.bookings {
		b := s.bookings[id]
		if b.UserID == userID && (latest == nil || b.ID > latest.ID) {
			latest = &b
		}
	}
	if latest == nil {
		return nil, sql.ErrNoRows
	}
	room := s.rooms[latest.RoomID]
	return &model.BookingWithRoom{ID: latest.ID, Room: room}, nil
}

func (s *fakeStore) UpdateBookingRoom(_ context.Context, bookingID, roomID uint64) error {
	s.calls++
	b, ok := s.bookings[bookingID]
	if !ok {
		return sql.ErrNoRows
	}
	b.RoomID = roomID
	s.bookings[bookingID] = b
	return nil
}

// seedEligibleUser registers an enrollment and a PAID, in-person,
// hotel-inclusive ticket for the user.
func (s *fakeStore) seedEligibleUser(userID uint64) {
	enrollmentID := userID + 100
	s.enrollments[userID] = model.Enrollment{ID: enrollmentID, UserID: userID}
	s.tickets[enrollmentID] = model.Ticket{
		ID:           userID + 200,
		EnrollmentID: enrollmentID,
		Status:       model.TicketStatusPaid,
		Type:         model.TicketType{IncludesHotel: true},
	}
}

func (s *fakeStore) seedRoom(id uint64, capacity int) model.Room {
	room := model.Room{
		ID:        id,
		Name:      "101",
		Capacity:  capacity,
		HotelID:   7,
		CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
	}
	s.rooms[id] = room
	return room
}

func TestInsertNewBookingEligibility(t *testing.T) {
	ctx := context.Background()

	t.Run("user without enrollment is not found", func(t *testing.T) {
		store := newFakeStore()
		store.seedRoom(1, 3)
		engine := booking.NewEngine(store)

		_, err := engine.InsertNewBooking(ctx, 42, 1)
		require.ErrorIs(t, err, booking.ErrNotFound)
	})

	t.Run("enrolled user without ticket is not found", func(t *testing.T) {
		store := newFakeStore()
		store.seedRoom(1, 3)
		store.enrollments[42] = model.Enrollment{ID: 9, UserID: 42}
		engine := booking.NewEngine(store)

		_, err := engine.InsertNewBooking(ctx, 42, 1)
		require.ErrorIs(t, err, booking.ErrNotFound)
	})

	ineligible := []struct {
		name   string
		ticket model.Ticket
	}{
		{
			name:   "remote ticket type",
			ticket: model.Ticket{Status: model.TicketStatusPaid, Type: model.TicketType{IsRemote: true, IncludesHotel: true}},
		},
		{
			name:   "ticket type without hotel",
			ticket: model.Ticket{Status: model.TicketStatusPaid, Type: model.TicketType{IncludesHotel: false}},
		},
		{
			name:   "unpaid ticket",
			ticket: model.Ticket{Status: model.TicketStatusReserved, Type: model.TicketType{IncludesHotel: true}},
		},
	}
	for _, tc := range ineligible {
		t.Run(tc.name+" is forbidden", func(t *testing.T) {
			store := newFakeStore()
			store.seedRoom(1, 3)
			store.enrollments[42] = model.Enrollment{ID: 9, UserID: 42}
			store.tickets[9] = tc.ticket
			engine := booking.NewEngine(store)

			_, err := engine.InsertNewBooking(ctx, 42, 1)
			require.ErrorIs(t, err, booking.ErrForbidden)
		})
	}
}

func TestInsertNewBookingRoomAndCapacity(t *testing.T) {
	ctx := context.Background()

	t.Run("missing room is not found", func(t *testing.T) {
		store := newFakeStore()
		store.seedEligibleUser(42)
		engine := booking.NewEngine(store)

		_, err := engine.InsertNewBooking(ctx, 42, 999)
		require.ErrorIs(t, err, booking.ErrNotFound)
	})

	t.Run("room at capacity is forbidden", func(t *testing.T) {
		store := newFakeStore()
		store.seedEligibleUser(42)
		store.seedRoom(1, 2)
		store.bookings[1] = model.Booking{ID: 1, UserID: 7, RoomID: 1}
		store.bookings[2] = model.Booking{ID: 2, UserID: 8, RoomID: 1}
		engine := booking.NewEngine(store)

		_, err := engine.InsertNewBooking(ctx, 42, 1)
		require.ErrorIs(t, err, booking.ErrForbidden)
	})

	t.Run("one slot below capacity succeeds", func(t *testing.T) {
		store := newFakeStore()
		store.seedEligibleUser(42)
		store.seedRoom(1, 2)
		store.bookings[1] = model.Booking{ID: 1, UserID: 7, RoomID: 1}
		engine := booking.NewEngine(store)

		id, err := engine.InsertNewBooking(ctx, 42, 1)
		require.NoError(t, err)
		assert.Positive(t, id)
	})

	t.Run("capacity one room refuses the second attendee", func(t *testing.T) {
		store := newFakeStore()
		store.seedEligibleUser(42)
		store.seedEligibleUser(43)
		store.seedRoom(1, 1)
		engine := booking.NewEngine(store)

		first, err := engine.InsertNewBooking(ctx, 42, 1)
		require.NoError(t, err)
		assert.Positive(t, first)

		_, err = engine.InsertNewBooking(ctx, 43, 1)
		require.ErrorIs(t, err, booking.ErrForbidden)
	})
}

func TestGetUserBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("no booking is not found", func(t *testing.T) {
		store := newFakeStore()
		engine := booking.NewEngine(store)

		_, err := engine.GetUserBooking(ctx, 42)
		require.ErrorIs(t, err, booking.ErrNotFound)
	})

	t.Run("booking is returned with the stored room fields", func(t *testing.T) {
		store := newFakeStore()
		store.seedEligibleUser(42)
		room := store.seedRoom(1, 4)
		engine := booking.NewEngine(store)

		id, err := engine.InsertNewBooking(ctx, 42, 1)
		require.NoError(t, err)

		got, err := engine.GetUserBooking(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, room, got.Room)
	})
}

func TestAlterRoomBooked(t *testing.T) {
	ctx := context.Background()

	t.Run("zero booking id is forbidden without touching the store", func(t *testing.T) {
		store := newFakeStore()
		store.seedRoom(1, 3)
		engine := booking.NewEngine(store)

		err := engine.AlterRoomBooked(ctx, 0, 1)
		require.ErrorIs(t, err, booking.ErrForbidden)
		assert.Zero(t, store.calls)
	})

	t.Run("missing target room is not found", func(t *testing.T) {
		store := newFakeStore()
		store.bookings[5] = model.Booking{ID: 5, UserID: 42, RoomID: 1}
		engine := booking.NewEngine(store)

		err := engine.AlterRoomBooked(ctx, 5, 999)
		require.ErrorIs(t, err, booking.ErrNotFound)
	})

	t.Run("full target room is forbidden", func(t *testing.T) {
		store := newFakeStore()
		store.seedRoom(1, 5)
		store.seedRoom(2, 1)
		store.bookings[5] = model.Booking{ID: 5, UserID: 42, RoomID: 1}
		store.bookings[6] = model.Booking{ID: 6, UserID: 7, RoomID: 2}
		engine := booking.NewEngine(store)

		err := engine.AlterRoomBooked(ctx, 5, 2)
		require.ErrorIs(t, err, booking.ErrForbidden)
	})

	t.Run("missing booking is forbidden rather than not found", func(t *testing.T) {
		store := newFakeStore()
		store.seedRoom(1, 3)
		engine := booking.NewEngine(store)

		err := engine.AlterRoomBooked(ctx, 999, 1)
		require.ErrorIs(t, err, booking.ErrForbidden)
		require.NotErrorIs(t, err, booking.ErrNotFound)
	})

	t.Run("valid move repoints the booking", func(t *testing.T) {
		store := newFakeStore()
		store.seedRoom(1, 3)
		target := store.seedRoom(2, 3)
		store.bookings[5] = model.Booking{ID: 5, UserID: 42, RoomID: 1}
		engine := booking.NewEngine(store)

		require.NoError(t, engine.AlterRoomBooked(ctx, 5, 2))

		got, err := engine.GetUserBooking(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, uint64(5), got.ID)
		assert.Equal(t, target, got.Room)
	})
}
