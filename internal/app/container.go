package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bevisngo/booksan-sub000/internal/api"
	"github.com/bevisngo/booksan-sub000/internal/auth"
	"github.com/bevisngo/booksan-sub000/internal/booking"
	bookingHttp "github.com/bevisngo/booksan-sub000/internal/booking/http"
	"github.com/bevisngo/booksan-sub000/internal/court"
	"github.com/bevisngo/booksan-sub000/internal/db"
	"github.com/bevisngo/booksan-sub000/internal/player"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       zerolog.Logger
	DBPool       *pgxpool.Pool
	// Redis enables the court lookup cache when non-nil.
	Redis          *redis.Client
	CourtCacheTTL  time.Duration
	JWTSecret      string
	JWTTTL         time.Duration
	Location       *time.Location
	PreventOverlap bool
	RateLimitRPS   float64
	RateLimitBurst int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	JWTManager     *auth.JWTManager
	BookingService booking.Service
	RateLimiter    *api.RateLimiter
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	health := api.NewHealthChecker(cfg.Logger, 2*time.Second).Add("postgres", cfg.DBPool)

	// Reference lookups
	var courts court.Lookup = court.NewPgxRepository(cfg.DBPool)
	if cfg.Redis != nil {
		courts = court.NewCachedLookup(courts, cfg.Redis, cfg.CourtCacheTTL, cfg.Logger)
		health.Add("redis", api.PingFunc(func(ctx context.Context) error {
			return cfg.Redis.Ping(ctx).Err()
		}))
	}
	players := player.NewPgxRepository(cfg.DBPool)

	// Booking module
	bookingService := booking.NewService(
		booking.NewPgxBookingStore(cfg.DBPool),
		booking.NewPgxSlotStore(cfg.DBPool),
		db.NewTxManager(cfg.DBPool),
		courts,
		players,
		cfg.Logger,
		booking.Options{PreventOverlap: cfg.PreventOverlap},
	)

	rateLimiter := api.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 3*time.Minute)

	router, err := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		Logger:         cfg.Logger,
		RateLimiter:    rateLimiter,
		Health:         health,
		BookingHandler: bookingHttp.NewHandler(bookingService, cfg.Location),
		JWTManager:     jwtManager,
	})
	if err != nil {
		return nil, err
	}

	return &Container{
		Router:         router,
		JWTManager:     jwtManager,
		BookingService: bookingService,
		RateLimiter:    rateLimiter,
	}, nil
}
