package booking

import (
	"context"

	"github.com/bevisngo/booksan-sub000/internal/calendar"
)

// Stats counts the facility's bookings having a slot that starts within the
// optional date range. TotalRevenue covers every status.
func (s *service) Stats(ctx context.Context, q StatsQuery) (*Stats, error) {
	filters := And{FacilityIDFilter{FacilityID: q.FacilityID}}
	if q.StartDate != nil || q.EndDate != nil {
		var r calendar.Range
		if q.StartDate != nil {
			r.Start = *q.StartDate
		}
		if q.EndDate != nil {
			r.End = *q.EndDate
		}
		if q.StartDate != nil && q.EndDate != nil && r.Start.After(r.End) {
			return nil, ErrInvalidDateRange
		}
		filters = append(filters, SlotStartFilter{Range: r})
	}

	agg, err := s.bookings.Aggregate(ctx, filters)
	if err != nil {
		return nil, err
	}

	st := &Stats{
		TotalBookings:     agg.Total,
		ConfirmedBookings: agg.Confirmed,
		CancelledBookings: agg.Cancelled,
		PendingBookings:   agg.Pending,
		TotalRevenue:      agg.Revenue,
		NetRevenue:        agg.NetRevenue,
	}
	if agg.Total > 0 {
		st.AverageBookingValue = float64(agg.Revenue) / float64(agg.Total)
	}
	return st, nil
}
