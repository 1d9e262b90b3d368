package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booksan_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "booksan_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booksan_bookings_created_total",
			Help: "Total number of bookings created",
		},
	)

	BookedSlotsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booksan_booked_slots_total",
			Help: "Total number of slots persisted with new bookings",
		},
	)

	SlotCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booksan_slot_cancellations_total",
			Help: "Total number of slot cancellations",
		},
	)

	BookingCascadesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booksan_booking_cascade_cancellations_total",
			Help: "Bookings cancelled because every slot was cancelled",
		},
	)

	BookingConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booksan_booking_conflicts_total",
			Help: "Booking attempts rejected for overlapping an existing slot",
		},
	)

	CourtCacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booksan_court_cache_requests_total",
			Help: "Court lookup cache requests by result",
		},
		[]string{"result"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBookingCreated(slots int) {
	BookingsCreatedTotal.Inc()
	BookedSlotsTotal.Add(float64(slots))
}

func RecordSlotCancellation(cascaded bool) {
	SlotCancellationsTotal.Inc()
	if cascaded {
		BookingCascadesTotal.Inc()
	}
}

func RecordBookingConflict() {
	BookingConflictsTotal.Inc()
}

func RecordCourtCache(result string) {
	CourtCacheRequestsTotal.WithLabelValues(result).Inc()
}

// GinMiddleware records request count and latency per route template.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
