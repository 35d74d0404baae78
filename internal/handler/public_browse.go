package handler

import (
	"net/http" // HTTP status codes
	"strconv"  // parsing path parameters

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/conference-hotel-booking/internal/repository" // repository layer
)

// PublicHandler exposes read-only catalog endpoints so guests can
// browse partner hotels and their rooms before booking.  Catalog
// management happens out of band; nothing here writes.
type PublicHandler struct {
	HotelRepo *repository.HotelRepo // access to the hotel catalog
	RoomRepo  *repository.RoomRepo  // access to rooms and their occupancy
}

// NewPublicHandler constructs a PublicHandler and panics if any
// dependency is nil.
func NewPublicHandler(hotelRepo *repository.HotelRepo, roomRepo *repository.RoomRepo) *PublicHandler {
	if hotelRepo == nil || roomRepo == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{HotelRepo: hotelRepo, RoomRepo: roomRepo}
}

// GetHotels handles GET /v1/hotels.  It returns every partner hotel
// with its room count.
func (p *PublicHandler) GetHotels(c echo.Context) error {
	hotels, err := p.HotelRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]echo.Map, 0, len(hotels))
	for _, h := range hotels {
		out = append(out, echo.Map{
			"id":         h.ID,
			"name":       h.Name,
			"image":      h.Image,
			"room_count": h.RoomCount,
			"created_at": h.CreatedAt,
			"updated_at": h.UpdatedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// GetHotelRooms handles GET /v1/hotels/:id/rooms.  It returns the
// rooms of one hotel together with each room's current occupancy so
// clients can show which rooms still have free slots.
func (p *PublicHandler) GetHotelRooms(c echo.Context) error {
	hotelID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || hotelID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	ctx := c.Request().Context()
	exists, err := p.HotelRepo.Exists(ctx, hotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !exists {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
	}
	rooms, err := p.RoomRepo.ListByHotel(ctx, hotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]echo.Map, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, echo.Map{
			"id":         r.ID,
			"name":       r.Name,
			"capacity":   r.Capacity,
			"hotel_id":   r.HotelID,
			"occupied":   r.Occupied,
			"created_at": r.CreatedAt,
			"updated_at": r.UpdatedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}
