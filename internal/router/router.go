package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/conference-hotel-booking/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/conference-hotel-booking/internal/middleware" // import middleware for JWT authentication
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance.  Currently it exposes only a health
// check, used by load balancers and monitoring to verify the service
// is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes.
// Unauthenticated operations live under /v1/auth, while protected
// endpoints live under /v1 behind the JWTAuth middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session: register,
	// login and the two refresh variants.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token; refresh-access issues a new
	// access token while reusing the existing refresh token.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout does not require JWT authentication: the handler accepts
	// either an Authorization header or a refresh_token in the body.
	g.POST("/logout", a.Logout)
	e.POST("/v1/logout", a.Logout)

	// Protected endpoints require a valid access token.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterBooking registers the room booking endpoints.  All three
// operate on behalf of the authenticated attendee, so the group
// applies the JWTAuth middleware before any handler runs.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group("/v1/booking")
	g.Use(middleware.JWTAuth(jwtSecret))
	// Create a booking for the caller: body carries the room id.
	g.POST("", b.InsertBooking)
	// View the caller's current booking joined with its room.
	g.GET("", b.GetBooking)
	// Move an existing booking to a different room.
	g.PUT("/:bookingId", b.AlterBookedRoom)
}

// RegisterPublic registers unauthenticated browse endpoints on the
// provided Echo instance.  The PublicHandler exposes read-only hotel
// and room listings for guests deciding where to stay; no JWT
// middleware is applied.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler) {
	// Expose the list of all partner hotels
	e.GET("/v1/hotels", p.GetHotels)
	// List rooms of a specific hotel with current occupancy
	e.GET("/v1/hotels/:id/rooms", p.GetHotelRooms)
}
