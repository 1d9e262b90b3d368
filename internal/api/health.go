package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Pinger is a dependency whose reachability gates readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthChecker reports whether every registered dependency answers a ping.
type HealthChecker struct {
	deps    map[string]Pinger
	timeout time.Duration
	log     zerolog.Logger
}

func NewHealthChecker(log zerolog.Logger, timeout time.Duration) *HealthChecker {
	return &HealthChecker{deps: map[string]Pinger{}, timeout: timeout, log: log}
}

// Add registers a named dependency.
func (h *HealthChecker) Add(name string, p Pinger) *HealthChecker {
	h.deps[name] = p
	return h
}

func (h *HealthChecker) Handle(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	checks := make(map[string]string, len(h.deps))
	status := http.StatusOK
	for name, p := range h.deps {
		if err := p.Ping(ctx); err != nil {
			h.log.Warn().Err(err).Str("dependency", name).Msg("health check failed")
			checks[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "up"
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}
	c.JSON(status, gin.H{"status": state, "checks": checks})
}
