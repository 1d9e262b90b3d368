package booking

import "github.com/bevisngo/booksan-sub000/internal/calendar"

// Filter is a typed query predicate. Stores compile the variants they support
// and reject the rest.
type Filter interface {
	isFilter()
}

type FacilityIDFilter struct{ FacilityID string }

type CourtIDFilter struct{ CourtID string }

type StatusFilter struct{ Status Status }

type BookingIDsFilter struct{ IDs []string }

// DateRangeFilter matches slots intersecting the range; on bookings it matches
// when at least one slot does. A zero bound leaves that side open.
type DateRangeFilter struct{ Range calendar.Range }

// SlotStartFilter matches slots starting within the inclusive range; on
// bookings it matches when at least one slot does. A zero bound leaves that side open.
type SlotStartFilter struct{ Range calendar.Range }

// PlayerNameFilter is a case-insensitive substring match on the player's full name.
type PlayerNameFilter struct{ Term string }

// CourtNameFilter is a case-insensitive substring match on the court name.
type CourtNameFilter struct{ Term string }

// And matches when every member matches. An empty And matches everything.
type And []Filter

// Or matches when any member matches. An empty Or matches nothing.
type Or []Filter

func (FacilityIDFilter) isFilter() {}
func (CourtIDFilter) isFilter()    {}
func (StatusFilter) isFilter()     {}
func (BookingIDsFilter) isFilter() {}
func (DateRangeFilter) isFilter()  {}
func (SlotStartFilter) isFilter()  {}
func (PlayerNameFilter) isFilter() {}
func (CourtNameFilter) isFilter()  {}
func (And) isFilter()              {}
func (Or) isFilter()               {}

// SearchFilter matches the term against the player name or the court name.
func SearchFilter(term string) Filter {
	return Or{PlayerNameFilter{Term: term}, CourtNameFilter{Term: term}}
}
