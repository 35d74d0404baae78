package handler_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/conference-hotel-booking/internal/booking"
	"github.com/iliyamo/conference-hotel-booking/internal/handler"
	"github.com/iliyamo/conference-hotel-booking/internal/model"
)

// memStore is a minimal booking.Store used to drive the handler
// through the engine without a database.
type memStore struct {
	enrollment *model.Enrollment
	ticket     *model.Ticket
	rooms      map[uint64]model.Room
	bookings   map[uint64]model.Booking
	nextID     uint64
	failWith   error // when set, every call fails with this error
}

func (s *memStore) FindEnrollmentByUser(context.Context, uint64) (*model.Enrollment, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	if s.enrollment == nil {
		return nil, sql.ErrNoRows
	}
	return s.enrollment, nil
}

func (s *memStore) FindTicketByEnrollment(context.Context, uint64) (*model.Ticket, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	if s.ticket == nil {
		return nil, sql.ErrNoRows
	}
	return s.ticket, nil
}

func (s *memStore) FindRoom(_ context.Context, roomID uint64) (*model.Room, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	r, ok := s.rooms[roomID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &r, nil
}

func (s *memStore) CountBookingsForRoom(_ context.Context, roomID uint64) (int, error) {
	n := 0
	for _, b := range s.bookings {
		if b.RoomID == roomID {
			n++
		}
	}
	return n, nil
}

func (s *memStore) CreateBooking(_ context.Context, userID, roomID uint64) (uint64, error) {
	s.nextID++
	if s.bookings == nil {
		s.bookings = map[uint64]model.Booking{}
	}
	s.bookings[s.nextID] = model.Booking{ID: s.nextID, UserID: userID, RoomID: roomID}
	return s.nextID, nil
}

func (s *memStore) FindBookingWithRoomByUser(_ context.Context, userID uint64) (*model.BookingWithRoom, error) {
	for _, b := range s.bookings {
		if b.UserID == userID {
			return &model.BookingWithRoom{ID: b.ID, Room: s.rooms[b.RoomID]}, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *memStore) UpdateBookingRoom(_ context.Context, bookingID, roomID uint64) error {
	b, ok := s.bookings[bookingID]
	if !ok {
		return sql.ErrNoRows
	}
	b.RoomID = roomID
	s.bookings[bookingID] = b
	return nil
}

// eligibleStore returns a store where user 42 may book.
func eligibleStore() *memStore {
	return &memStore{
		enrollment: &model.Enrollment{ID: 9, UserID: 42},
		ticket: &model.Ticket{
			ID:           1,
			EnrollmentID: 9,
			Status:       model.TicketStatusPaid,
			Type:         model.TicketType{IncludesHotel: true},
		},
		rooms: map[uint64]model.Room{
			1: {ID: 1, Name: "101", Capacity: 2, HotelID: 7},
		},
		bookings: map[uint64]model.Booking{},
	}
}

// call runs one request through the handler method as the given user.
func call(t *testing.T, h *handler.BookingHandler, method, target, body string, userID any, fn echo.HandlerFunc, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != nil {
		c.Set("user_id", userID)
	}
	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(params[i])
		c.SetParamValues(params[i+1])
	}
	require.NoError(t, fn(c))
	return rec
}

func TestInsertBooking(t *testing.T) {
	t.Run("missing body is a bad request", func(t *testing.T) {
		h := handler.NewBookingHandler(booking.NewEngine(eligibleStore()), nil)
		rec := call(t, h, http.MethodPost, "/v1/booking", "", float64(42), h.InsertBooking)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no enrollment maps to 404", func(t *testing.T) {
		store := eligibleStore()
		store.enrollment = nil
		h := handler.NewBookingHandler(booking.NewEngine(store), nil)
		rec := call(t, h, http.MethodPost, "/v1/booking", `{"room_id":1}`, float64(42), h.InsertBooking)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unpaid ticket maps to 403", func(t *testing.T) {
		store := eligibleStore()
		store.ticket.Status = model.TicketStatusReserved
		h := handler.NewBookingHandler(booking.NewEngine(store), nil)
		rec := call(t, h, http.MethodPost, "/v1/booking", `{"room_id":1}`, float64(42), h.InsertBooking)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("full room maps to 403", func(t *testing.T) {
		store := eligibleStore()
		store.bookings[1] = model.Booking{ID: 1, UserID: 7, RoomID: 1}
		store.bookings[2] = model.Booking{ID: 2, UserID: 8, RoomID: 1}
		h := handler.NewBookingHandler(booking.NewEngine(store), nil)
		rec := call(t, h, http.MethodPost, "/v1/booking", `{"room_id":1}`, float64(42), h.InsertBooking)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("store failure maps to 500", func(t *testing.T) {
		store := eligibleStore()
		store.failWith = errors.New("connection reset")
		h := handler.NewBookingHandler(booking.NewEngine(store), nil)
		rec := call(t, h, http.MethodPost, "/v1/booking", `{"room_id":1}`, float64(42), h.InsertBooking)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("success returns the booking id", func(t *testing.T) {
		h := handler.NewBookingHandler(booking.NewEngine(eligibleStore()), nil)
		rec := call(t, h, http.MethodPost, "/v1/booking", `{"room_id":1}`, float64(42), h.InsertBooking)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]uint64
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, uint64(1), resp["booking_id"])
	})
}

func TestGetBooking(t *testing.T) {
	t.Run("no booking maps to 404", func(t *testing.T) {
		h := handler.NewBookingHandler(booking.NewEngine(eligibleStore()), nil)
		rec := call(t, h, http.MethodGet, "/v1/booking", "", float64(42), h.GetBooking)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("existing booking returns id and room", func(t *testing.T) {
		store := eligibleStore()
		store.bookings[3] = model.Booking{ID: 3, UserID: 42, RoomID: 1}
		h := handler.NewBookingHandler(booking.NewEngine(store), nil)
		rec := call(t, h, http.MethodGet, "/v1/booking", "", float64(42), h.GetBooking)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			ID   uint64     `json:"id"`
			Room model.Room `json:"room"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, uint64(3), resp.ID)
		assert.Equal(t, store.rooms[1], resp.Room)
	})
}

func TestAlterBookedRoom(t *testing.T) {
	t.Run("garbage booking id parses to zero and maps to 403", func(t *testing.T) {
		h := handler.NewBookingHandler(booking.NewEngine(eligibleStore()), nil)
		rec := call(t, h, http.MethodPut, "/v1/booking/abc", `{"room_id":1}`, float64(42), h.AlterBookedRoom, "bookingId", "abc")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing booking maps to 403 not 404", func(t *testing.T) {
		h := handler.NewBookingHandler(booking.NewEngine(eligibleStore()), nil)
		rec := call(t, h, http.MethodPut, "/v1/booking/999", `{"room_id":1}`, float64(42), h.AlterBookedRoom, "bookingId", "999")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing target room maps to 404", func(t *testing.T) {
		store := eligibleStore()
		store.bookings[3] = model.Booking{ID: 3, UserID: 42, RoomID: 1}
		h := handler.NewBookingHandler(booking.NewEngine(store), nil)
		rec := call(t, h, http.MethodPut, "/v1/booking/3", `{"room_id":999}`, float64(42), h.AlterBookedRoom, "bookingId", "3")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("success echoes the booking id", func(t *testing.T) {
		store := eligibleStore()
		store.rooms[2] = model.Room{ID: 2, Name: "102", Capacity: 1, HotelID: 7}
		store.bookings[3] = model.Booking{ID: 3, UserID: 42, RoomID: 1}
		h := handler.NewBookingHandler(booking.NewEngine(store), nil)
		rec := call(t, h, http.MethodPut, "/v1/booking/3", `{"room_id":2}`, float64(42), h.AlterBookedRoom, "bookingId", "3")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]uint64
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, uint64(3), resp["booking_id"])
		assert.Equal(t, uint64(2), store.bookings[3].RoomID)
	})
}
