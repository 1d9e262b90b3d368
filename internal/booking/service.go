package booking

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bevisngo/booksan-sub000/internal/calendar"
	"github.com/bevisngo/booksan-sub000/internal/court"
	"github.com/bevisngo/booksan-sub000/internal/player"
)

// Transactor runs fn in a transaction carried by the context it passes to fn.
type Transactor interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// CourtLookup resolves a court within a facility.
type CourtLookup interface {
	FindInFacility(ctx context.Context, courtID, facilityID string) (*court.Court, bool, error)
}

// PlayerLookup resolves an active user holding the player role.
type PlayerLookup interface {
	FindPlayer(ctx context.Context, playerID string) (*player.Player, bool, error)
}

type CreateRequest struct {
	FacilityID   string
	CourtID      string
	PlayerID     string
	Slots        []SlotInput
	UnitPrice    int64
	TotalPrice   int64
	SlotMinutes  *int
	IsRecurrence bool
}

// CourtQuery selects the bookings of one court within a calendar view.
type CourtQuery struct {
	FacilityID string
	CourtID    string
	View       calendar.ViewType
	Anchor     time.Time
}

// FacilityQuery selects a page of bookings of one facility. When View is set it
// takes precedence over StartDate and EndDate.
type FacilityQuery struct {
	FacilityID string
	CourtID    string
	Status     Status
	Search     string
	StartDate  *time.Time
	EndDate    *time.Time
	View       calendar.ViewType
	Anchor     time.Time
	Pagination Pagination
}

type CancelRequest struct {
	FacilityID  string
	SlotID      string
	Reason      string
	CancelledBy string
}

type StatsQuery struct {
	FacilityID string
	StartDate  *time.Time
	EndDate    *time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, facilityID, id string) (*Booking, error)
	ListByCourt(ctx context.Context, q CourtQuery) ([]*Booking, error)
	ListByFacility(ctx context.Context, q FacilityQuery) (*Page, error)
	CancelSlot(ctx context.Context, req CancelRequest) (*Booking, error)
	Stats(ctx context.Context, q StatsQuery) (*Stats, error)
}

type Options struct {
	// PreventOverlap rejects bookings whose slots intersect live slots on the same court.
	PreventOverlap bool
	// Now defaults to time.Now.
	Now func() time.Time
}

type service struct {
	bookings BookingStore
	slots    SlotStore
	tx       Transactor
	courts   CourtLookup
	players  PlayerLookup
	log      zerolog.Logger
	opts     Options
}

func NewService(bookings BookingStore, slots SlotStore, tx Transactor, courts CourtLookup, players PlayerLookup, log zerolog.Logger, opts Options) Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &service{
		bookings: bookings,
		slots:    slots,
		tx:       tx,
		courts:   courts,
		players:  players,
		log:      log.With().Str("component", "booking").Logger(),
		opts:     opts,
	}
}

// attachSlots distributes slots to their bookings, keeping slot order.
func attachSlots(bookings []*Booking, slots []*Slot) {
	byID := make(map[string]*Booking, len(bookings))
	for _, b := range bookings {
		b.Slots = []*Slot{}
		byID[b.ID] = b
	}
	for _, s := range slots {
		if b, ok := byID[s.BookingID]; ok {
			b.Slots = append(b.Slots, s)
		}
	}
}

func bookingIDs(bookings []*Booking) []string {
	ids := make([]string, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
	}
	return ids
}
