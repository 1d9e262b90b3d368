package api

import (
	"fmt"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/bevisngo/booksan-sub000/internal/auth"
	bookingHttp "github.com/bevisngo/booksan-sub000/internal/booking/http"
	"github.com/bevisngo/booksan-sub000/internal/pkg/logger"
	"github.com/bevisngo/booksan-sub000/internal/pkg/metrics"
)

// Config holds what the router needs to assemble middleware and handlers.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	Logger         zerolog.Logger
	RateLimiter    *RateLimiter
	Health         *HealthChecker
	BookingHandler *bookingHttp.Handler
	JWTManager     *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
func NewRouter(cfg Config) (*gin.Engine, error) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := bookingHttp.RegisterValidators(v); err != nil {
			return nil, fmt.Errorf("register validators: %w", err)
		}
	}

	r := gin.New()
	r.Use(gin.Recovery(), logger.GinMiddleware(cfg.Logger), metrics.GinMiddleware())
	if cfg.IsProduction && strings.TrimSpace(cfg.ProdOrigins) == "" {
		return nil, fmt.Errorf("PROD_ORIGINS is required in production")
	}
	r.Use(cors.New(corsConfig(cfg)))

	r.GET("/healthz", cfg.Health.Handle)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	if cfg.RateLimiter != nil {
		v1.Use(cfg.RateLimiter.Middleware())
	}
	{
		bookingHttp.RegisterRoutes(v1, cfg.BookingHandler, auth.AuthRequired(cfg.JWTManager))
	}

	return r, nil
}

// corsConfig allows any origin outside production; production allows only the
// comma-separated ProdOrigins.
func corsConfig(cfg Config) cors.Config {
	config := cors.DefaultConfig()
	config.AllowAllOrigins = !cfg.IsProduction
	if cfg.IsProduction {
		for _, o := range strings.Split(cfg.ProdOrigins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				config.AllowOrigins = append(config.AllowOrigins, o)
			}
		}
	}
	config.AllowMethods = []string{"GET", "POST", "PATCH", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	return config
}
