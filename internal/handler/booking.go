package handler

import (
	"context"  // detached contexts for fire-and-forget event publishing
	"errors"   // errors.Is comparisons against engine sentinels
	"net/http" // HTTP status codes
	"strconv"  // parsing path parameters
	"time"     // timeouts and event timestamps

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/conference-hotel-booking/internal/booking"
	"github.com/iliyamo/conference-hotel-booking/internal/model"
	"github.com/iliyamo/conference-hotel-booking/internal/queue"
)

// EventPublisher emits booking lifecycle events to the message
// broker.  Implementations must be safe to call concurrently.
type EventPublisher interface {
	BookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error
	BookingRoomChanged(ctx context.Context, ev queue.BookingRoomChangedEvent) error
}

// BookingHandler exposes the booking allocation engine over HTTP.
// All routes assume JWT authentication has already run, so the
// caller's user id is available from the context.  The handler owns
// request-shape validation (the room id must be a positive number)
// and the mapping of engine failures to status codes: ErrNotFound to
// 404, ErrForbidden to 403, anything else to 500.
type BookingHandler struct {
	Engine *booking.Engine // the allocation engine
	Events EventPublisher  // broker publisher; nil disables eventing
}

// NewBookingHandler constructs a BookingHandler and panics if the
// engine is nil.  Events may be nil.
func NewBookingHandler(engine *booking.Engine, events EventPublisher) *BookingHandler {
	if engine == nil {
		panic("nil engine passed to NewBookingHandler")
	}
	return &BookingHandler{Engine: engine, Events: events}
}

// bookingReq is the JSON body for creating or altering a booking.
type bookingReq struct {
	RoomID uint64 `json:"room_id"`
}

// InsertBooking handles POST /v1/booking.  It allocates the requested
// room to the authenticated attendee and responds with the new
// booking's id.  On success a booking.created event is published
// without blocking the response.
func (h *BookingHandler) InsertBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil || req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookingID, err := h.Engine.InsertNewBooking(ctx, userID, req.RoomID)
	if err != nil {
		return bookingError(c, err)
	}

	h.publishCreated(ctx, bookingID, userID, req.RoomID)
	return c.JSON(http.StatusOK, echo.Map{"booking_id": bookingID})
}

// GetBooking handles GET /v1/booking.  It returns the attendee's
// current booking joined with the full room record, or 404 when they
// hold none.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bk, err := h.Engine.GetUserBooking(ctx, userID)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, bk)
}

// AlterBookedRoom handles PUT /v1/booking/:bookingId.  A missing or
// non-numeric path parameter parses to 0, which the engine rejects
// with 403.  On success a booking.room_changed event is published
// without blocking the response.
func (h *BookingHandler) AlterBookedRoom(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, _ := strconv.ParseUint(c.Param("bookingId"), 10, 64)
	var req bookingReq
	if err := c.Bind(&req); err != nil || req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Engine.AlterRoomBooked(ctx, bookingID, req.RoomID); err != nil {
		return bookingError(c, err)
	}

	h.publishRoomChanged(ctx, bookingID, req.RoomID)
	return c.JSON(http.StatusOK, echo.Map{"booking_id": bookingID})
}

// bookingError translates engine failures into HTTP responses.
func bookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, booking.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}

// publishCreated emits a booking.created event in the background.
// Broker failures are logged by the publisher and never fail the
// request.
func (h *BookingHandler) publishCreated(ctx context.Context, bookingID, userID, roomID uint64) {
	if h.Events == nil {
		return
	}
	room, err := h.Engine.Room(ctx, roomID)
	if err != nil {
		room = &model.Room{ID: roomID}
	}
	ev := queue.BookingCreatedEvent{
		BookingID: bookingID,
		UserID:    userID,
		RoomID:    roomID,
		RoomName:  room.Name,
		HotelID:   room.HotelID,
		Capacity:  room.Capacity,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		pctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.Events.BookingCreated(pctx, ev)
	}()
}

// publishRoomChanged emits a booking.room_changed event in the background.
func (h *BookingHandler) publishRoomChanged(ctx context.Context, bookingID, roomID uint64) {
	if h.Events == nil {
		return
	}
	room, err := h.Engine.Room(ctx, roomID)
	if err != nil {
		room = &model.Room{ID: roomID}
	}
	ev := queue.BookingRoomChangedEvent{
		BookingID: bookingID,
		RoomID:    roomID,
		RoomName:  room.Name,
		HotelID:   room.HotelID,
		ChangedAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		pctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.Events.BookingRoomChanged(pctx, ev)
	}()
}
