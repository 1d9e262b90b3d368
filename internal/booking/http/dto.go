package http

import (
	"time"

	"github.com/bevisngo/booksan-sub000/internal/booking"
	"github.com/bevisngo/booksan-sub000/internal/pkg/request"
)

type FacilityURI struct {
	FacilityID string `uri:"facilityId" binding:"required,uuid"`
}

type BookingURI struct {
	FacilityURI
	ID string `uri:"id" binding:"required,uuid"`
}

type CourtURI struct {
	FacilityURI
	CourtID string `uri:"courtId" binding:"required,uuid"`
}

type SlotURI struct {
	FacilityURI
	SlotID string `uri:"slotId" binding:"required,uuid"`
}

type SlotRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

type CreateBookingRequest struct {
	CourtID      string        `json:"court_id" binding:"required,uuid"`
	PlayerID     string        `json:"player_id" binding:"required,uuid"`
	Slots        []SlotRequest `json:"slots" binding:"required,min=1,dive"`
	UnitPrice    int64         `json:"unit_price" binding:"min=0"`
	TotalPrice   int64         `json:"total_price" binding:"min=0"`
	SlotMinutes  *int          `json:"slot_minutes" binding:"omitempty,min=1"`
	IsRecurrence bool          `json:"is_recurrence"`
}

// CourtBookingsRequest defines query parameters for a court's calendar.
// Date is YYYY-MM-DD in the facility timezone or an RFC 3339 timestamp.
type CourtBookingsRequest struct {
	View string `form:"view" binding:"required,viewtype"`
	Date string `form:"date" binding:"required"`
}

// ListBookingsRequest defines query parameters for listing a facility's bookings.
// View restricts to day or week and overrides start_date and end_date.
type ListBookingsRequest struct {
	request.ListParams
	CourtID   string `form:"court_id" binding:"omitempty,uuid"`
	Status    string `form:"status" binding:"omitempty,bookingstatus"`
	Search    string `form:"search" binding:"omitempty,max=100"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	View      string `form:"view" binding:"omitempty,facilityview"`
	Date      string `form:"date"`
}

type StatsRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type CancelSlotRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type PlayerTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CourtTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SlotResponse struct {
	ID           string     `json:"id"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      time.Time  `json:"end_time"`
	Status       string     `json:"status"`
	CancelReason *string    `json:"cancel_reason,omitempty"`
	CancelledBy  *string    `json:"cancelled_by,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
}

type BookingResponse struct {
	ID           string         `json:"id"`
	FacilityID   string         `json:"facility_id"`
	Player       PlayerTag      `json:"player"`
	Court        CourtTag       `json:"court"`
	Status       string         `json:"status"`
	StartAt      time.Time      `json:"start_at"`
	EndAt        time.Time      `json:"end_at"`
	SlotMinutes  int            `json:"slot_minutes"`
	UnitPrice    int64          `json:"unit_price"`
	TotalPrice   int64          `json:"total_price"`
	IsRecurrence bool           `json:"is_recurrence"`
	Slots        []SlotResponse `json:"slots"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	slots := make([]SlotResponse, len(b.Slots))
	for i, s := range b.Slots {
		slots[i] = SlotResponse{
			ID:           s.ID,
			StartTime:    s.StartTime,
			EndTime:      s.EndTime,
			Status:       string(s.Status),
			CancelReason: s.CancelReason,
			CancelledBy:  s.CancelledBy,
			CancelledAt:  s.CancelledAt,
		}
	}
	return BookingResponse{
		ID:           b.ID,
		FacilityID:   b.FacilityID,
		Player:       PlayerTag{ID: b.PlayerID, Name: b.PlayerName},
		Court:        CourtTag{ID: b.CourtID, Name: b.CourtName},
		Status:       string(b.Status),
		StartAt:      b.StartAt,
		EndAt:        b.EndAt,
		SlotMinutes:  b.SlotMinutes,
		UnitPrice:    b.UnitPrice,
		TotalPrice:   b.TotalPrice,
		IsRecurrence: b.IsRecurrence,
		Slots:        slots,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func NewBookingResponses(bookings []*booking.Booking) []BookingResponse {
	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	return items
}

type StatsResponse struct {
	TotalBookings       int     `json:"total_bookings"`
	ConfirmedBookings   int     `json:"confirmed_bookings"`
	CancelledBookings   int     `json:"cancelled_bookings"`
	PendingBookings     int     `json:"pending_bookings"`
	TotalRevenue        int64   `json:"total_revenue"`
	NetRevenue          int64   `json:"net_revenue"`
	AverageBookingValue float64 `json:"average_booking_value"`
}

func NewStatsResponse(s *booking.Stats) StatsResponse {
	return StatsResponse{
		TotalBookings:       s.TotalBookings,
		ConfirmedBookings:   s.ConfirmedBookings,
		CancelledBookings:   s.CancelledBookings,
		PendingBookings:     s.PendingBookings,
		TotalRevenue:        s.TotalRevenue,
		NetRevenue:          s.NetRevenue,
		AverageBookingValue: s.AverageBookingValue,
	}
}
