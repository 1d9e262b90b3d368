package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bevisngo/booksan-sub000/internal/calendar"
)

func TestStatsAverageIncludesCancelled(t *testing.T) {
	f := newFixture(Options{})
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)
	f.bookings.On("Aggregate", mock.Anything, And{
		FacilityIDFilter{FacilityID: "fac-1"},
		SlotStartFilter{Range: calendar.Range{Start: start, End: end}},
	}).Return(Aggregate{Total: 3, Confirmed: 2, Cancelled: 1, Revenue: 250, NetRevenue: 150}, nil)

	st, err := f.svc.Stats(context.Background(), StatsQuery{FacilityID: "fac-1", StartDate: &start, EndDate: &end})
	require.NoError(t, err)

	assert.Equal(t, 3, st.TotalBookings)
	assert.Equal(t, 2, st.ConfirmedBookings)
	assert.Equal(t, 1, st.CancelledBookings)
	assert.Equal(t, 0, st.PendingBookings)
	assert.Equal(t, int64(250), st.TotalRevenue)
	assert.Equal(t, int64(150), st.NetRevenue)
	assert.InDelta(t, 83.333, st.AverageBookingValue, 0.001)
}

func TestStatsEmpty(t *testing.T) {
	f := newFixture(Options{})
	f.bookings.On("Aggregate", mock.Anything, And{FacilityIDFilter{FacilityID: "fac-1"}}).Return(Aggregate{}, nil)

	st, err := f.svc.Stats(context.Background(), StatsQuery{FacilityID: "fac-1"})

	require.NoError(t, err)
	assert.Zero(t, st.TotalBookings)
	assert.Zero(t, st.AverageBookingValue)
}

func TestStatsRejectsInvertedRange(t *testing.T) {
	f := newFixture(Options{})
	start := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.svc.Stats(context.Background(), StatsQuery{FacilityID: "fac-1", StartDate: &start, EndDate: &end})

	assert.ErrorIs(t, err, ErrInvalidDateRange)
	f.bookings.AssertNotCalled(t, "Aggregate", mock.Anything, mock.Anything)
}
