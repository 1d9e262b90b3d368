package booking

import (
	"context"
	"strings"

	"github.com/bevisngo/booksan-sub000/internal/calendar"
)

func (s *service) GetByID(ctx context.Context, facilityID, id string) (*Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.FacilityID != facilityID {
		return nil, ErrNotFound
	}

	slots, err := s.slots.Find(ctx, BookingIDsFilter{IDs: []string{b.ID}})
	if err != nil {
		return nil, err
	}
	b.Slots = slots
	return b, nil
}

func (s *service) ListByCourt(ctx context.Context, q CourtQuery) ([]*Booking, error) {
	anchor := q.Anchor
	if anchor.IsZero() {
		anchor = s.opts.Now()
	}
	window := DateRangeFilter{Range: calendar.Resolve(q.View, anchor)}

	bookings, _, err := s.bookings.Find(ctx, And{
		FacilityIDFilter{FacilityID: q.FacilityID},
		CourtIDFilter{CourtID: q.CourtID},
		window,
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return bookings, nil
	}

	slots, err := s.slots.Find(ctx, And{BookingIDsFilter{IDs: bookingIDs(bookings)}, window})
	if err != nil {
		return nil, err
	}
	attachSlots(bookings, slots)
	return bookings, nil
}

func (s *service) ListByFacility(ctx context.Context, q FacilityQuery) (*Page, error) {
	filters := And{FacilityIDFilter{FacilityID: q.FacilityID}}
	if q.CourtID != "" {
		filters = append(filters, CourtIDFilter{CourtID: q.CourtID})
	}
	if q.Status != "" {
		st, ok := ParseStatus(string(q.Status))
		if !ok {
			return nil, ErrInvalidStatus
		}
		filters = append(filters, StatusFilter{Status: st})
	}
	if term := strings.TrimSpace(q.Search); term != "" {
		filters = append(filters, SearchFilter(term))
	}

	window, ok, err := s.facilityWindow(q)
	if err != nil {
		return nil, err
	}
	if ok {
		filters = append(filters, window)
	}

	page := q.Pagination
	if page.Page < 1 {
		page.Page = 1
	}
	if page.Limit < 1 {
		page.Limit = 20
	}

	items, total, err := s.bookings.Find(ctx, filters, &page)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		var slotFilter Filter = BookingIDsFilter{IDs: bookingIDs(items)}
		if ok {
			slotFilter = And{slotFilter, window}
		}
		slots, err := s.slots.Find(ctx, slotFilter)
		if err != nil {
			return nil, err
		}
		attachSlots(items, slots)
	}

	return &Page{Items: items, Total: total, Page: page.Page, Limit: page.Limit}, nil
}

// facilityWindow picks the date window of a facility listing. A view wins over
// explicit dates; either explicit date alone leaves the other side open.
func (s *service) facilityWindow(q FacilityQuery) (DateRangeFilter, bool, error) {
	if q.View != "" {
		anchor := q.Anchor
		if anchor.IsZero() {
			anchor = s.opts.Now()
		}
		return DateRangeFilter{Range: calendar.Resolve(q.View, anchor)}, true, nil
	}
	if q.StartDate == nil && q.EndDate == nil {
		return DateRangeFilter{}, false, nil
	}

	var r calendar.Range
	if q.StartDate != nil {
		r.Start = *q.StartDate
	}
	if q.EndDate != nil {
		r.End = *q.EndDate
	}
	if q.StartDate != nil && q.EndDate != nil && r.Start.After(r.End) {
		return DateRangeFilter{}, false, ErrInvalidDateRange
	}
	return DateRangeFilter{Range: r}, true, nil
}
