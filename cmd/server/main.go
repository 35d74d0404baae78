package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/conference-hotel-booking/internal/booking"    // booking allocation engine
	"github.com/iliyamo/conference-hotel-booking/internal/config"     // internal config loader
	"github.com/iliyamo/conference-hotel-booking/internal/database"   // MySQL connector
	"github.com/iliyamo/conference-hotel-booking/internal/handler"    // HTTP handlers
	"github.com/iliyamo/conference-hotel-booking/internal/middleware" // rate limiting middleware
	"github.com/iliyamo/conference-hotel-booking/internal/queue"      // booking event consumer
	"github.com/iliyamo/conference-hotel-booking/internal/repository" // data access layer
	"github.com/iliyamo/conference-hotel-booking/internal/router"     // route registration
	queue_publisher "github.com/iliyamo/conference-hotel-booking/internal/service" // broker event publisher
)

func main() {
	// Load .env if present; in production the variables come from the
	// environment and the file is simply absent.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories and the booking engine.  The engine receives the
	// MySQL-backed store as its persistence port.
	store := repository.NewStore(db)
	engine := booking.NewEngine(store)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	hotels := repository.NewHotelRepo(db)

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	bookingHandler := handler.NewBookingHandler(engine, queue_publisher.Publisher{})
	publicHandler := handler.NewPublicHandler(hotels, store.Rooms)

	e := echo.New()

	// Redis is optional: when unavailable, rate limiting and response
	// caching are disabled and the API still works.
	if rdb := config.NewRedisClient(); rdb != nil {
		e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
		e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	} else {
		log.Println("redis unavailable; rate limiting and caching disabled")
	}

	router.RegisterRoutes(e)                               // health check
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)     // auth endpoints
	router.RegisterBooking(e, bookingHandler, cfg.JWTSecret) // booking endpoints
	router.RegisterPublic(e, publicHandler)                // hotel browse endpoints

	// Consume booking events in the background; the consumer runs its
	// own reconnect loop and never takes the server down.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
