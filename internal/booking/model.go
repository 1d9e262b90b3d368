package booking

import (
	"strings"
	"time"

	"github.com/bevisngo/booksan-sub000/internal/pkg/apperror"
)

var (
	ErrNotFound       = apperror.NotFound("booking not found")
	ErrSlotNotFound   = apperror.NotFound("slot not found")
	ErrCourtNotFound  = apperror.NotFound("court not found")
	ErrPlayerNotFound = apperror.NotFound("player not found")

	ErrNoSlots            = apperror.Validation("at least one slot is required")
	ErrInvalidSlotRange   = apperror.Validation("slot end time must be after its start time")
	ErrSlotsOutOfOrder    = apperror.Validation("slots must be chronological and must not overlap")
	ErrNegativePrice      = apperror.Validation("prices must not be negative")
	ErrInvalidSlotMinutes = apperror.Validation("slot minutes must be positive")
	ErrReasonRequired     = apperror.Validation("cancellation reason is required")
	ErrInvalidStatus      = apperror.Validation("invalid booking status")
	ErrInvalidDateRange   = apperror.Validation("start date must not be after end date")
	ErrInvalidView        = apperror.Validation("invalid view type")

	ErrTimeConflict = apperror.Conflict("time slot already booked")
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
	StatusNoShow    Status = "NO_SHOW"
	StatusExpired   Status = "EXPIRED"
	StatusRefunded  Status = "REFUNDED"
)

var validStatuses = []Status{
	StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted,
	StatusNoShow, StatusExpired, StatusRefunded,
}

// ParseStatus parses a status name case-insensitively.
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	for _, v := range validStatuses {
		if st == v {
			return st, true
		}
	}
	return "", false
}

// Booking is a reservation of one court by one player, made of one or more slots.
// StartAt and EndAt span the slots it was created with.
type Booking struct {
	ID           string
	PlayerID     string
	PlayerName   string
	FacilityID   string
	CourtID      string
	CourtName    string
	Status       Status
	StartAt      time.Time
	EndAt        time.Time
	SlotMinutes  int
	UnitPrice    int64
	TotalPrice   int64
	IsRecurrence bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Slots        []*Slot
}

// AllSlotsCancelled reports whether the booking has slots and every one is cancelled.
func (b *Booking) AllSlotsCancelled() bool {
	if len(b.Slots) == 0 {
		return false
	}
	for _, s := range b.Slots {
		if s.Status != StatusCancelled {
			return false
		}
	}
	return true
}

// Slot is the smallest bookable unit of time within a booking.
type Slot struct {
	ID           string
	BookingID    string
	CourtID      string
	StartTime    time.Time
	EndTime      time.Time
	Status       Status
	CancelReason *string
	CancelledBy  *string
	CancelledAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SlotInput is a requested time slot.
type SlotInput struct {
	Start time.Time
	End   time.Time
}

// Pagination selects one page of a result set. Page is 1-based.
type Pagination struct {
	Page  int
	Limit int
}

// Offset is the number of rows skipped before this page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is one page of bookings.
type Page struct {
	Items []*Booking
	Total int
	Page  int
	Limit int
}

// Aggregate holds raw counters computed by the store.
type Aggregate struct {
	Total      int
	Confirmed  int
	Cancelled  int
	Pending    int
	Revenue    int64
	NetRevenue int64
}

// Stats summarizes bookings of a facility.
// TotalRevenue includes cancelled bookings; NetRevenue excludes them.
type Stats struct {
	TotalBookings       int
	ConfirmedBookings   int
	CancelledBookings   int
	PendingBookings     int
	TotalRevenue        int64
	NetRevenue          int64
	AverageBookingValue float64
}
