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

func TestListByCourtFiltersSlotsToWindow(t *testing.T) {
	f := newFixture(Options{})
	anchor := time.Date(2024, time.March, 13, 15, 0, 0, 0, time.UTC)
	window := DateRangeFilter{Range: calendar.Resolve(calendar.ViewWeek, anchor)}

	newer := &Booking{ID: "b2", FacilityID: "fac-1", CourtID: "court-1"}
	older := &Booking{ID: "b1", FacilityID: "fac-1", CourtID: "court-1"}
	f.bookings.On("Find", mock.Anything, And{
		FacilityIDFilter{FacilityID: "fac-1"},
		CourtIDFilter{CourtID: "court-1"},
		window,
	}, (*Pagination)(nil)).Return([]*Booking{newer, older}, 2, nil)

	slots := []*Slot{
		{ID: "s1", BookingID: "b1", StartTime: time.Date(2024, time.March, 11, 9, 0, 0, 0, time.UTC)},
		{ID: "s3", BookingID: "b2", StartTime: time.Date(2024, time.March, 12, 9, 0, 0, 0, time.UTC)},
		{ID: "s2", BookingID: "b1", StartTime: time.Date(2024, time.March, 14, 9, 0, 0, 0, time.UTC)},
	}
	f.slots.On("Find", mock.Anything, And{BookingIDsFilter{IDs: []string{"b2", "b1"}}, window}).Return(slots, nil)

	got, err := f.svc.ListByCourt(context.Background(), CourtQuery{
		FacilityID: "fac-1",
		CourtID:    "court-1",
		View:       calendar.ViewWeek,
		Anchor:     anchor,
	})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "b2", got[0].ID)
	require.Len(t, got[0].Slots, 1)
	assert.Equal(t, "s3", got[0].Slots[0].ID)
	require.Len(t, got[1].Slots, 2)
	assert.Equal(t, "s1", got[1].Slots[0].ID)
	assert.Equal(t, "s2", got[1].Slots[1].ID)
}

func TestListByCourtEmpty(t *testing.T) {
	f := newFixture(Options{})
	f.bookings.On("Find", mock.Anything, mock.Anything, (*Pagination)(nil)).Return([]*Booking{}, 0, nil)

	got, err := f.svc.ListByCourt(context.Background(), CourtQuery{FacilityID: "fac-1", CourtID: "court-1", View: calendar.ViewDay})

	require.NoError(t, err)
	assert.Empty(t, got)
	f.slots.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestListByFacilityViewTakesPrecedence(t *testing.T) {
	f := newFixture(Options{})
	anchor := time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC)
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
	window := DateRangeFilter{Range: calendar.Resolve(calendar.ViewDay, anchor)}

	f.bookings.On("Find", mock.Anything, And{
		FacilityIDFilter{FacilityID: "fac-1"},
		CourtIDFilter{CourtID: "court-1"},
		StatusFilter{Status: StatusConfirmed},
		SearchFilter("alice"),
		window,
	}, &Pagination{Page: 3, Limit: 20}).Return([]*Booking{{ID: "b1"}}, 45, nil)
	f.slots.On("Find", mock.Anything, And{BookingIDsFilter{IDs: []string{"b1"}}, window}).Return([]*Slot{}, nil)

	page, err := f.svc.ListByFacility(context.Background(), FacilityQuery{
		FacilityID: "fac-1",
		CourtID:    "court-1",
		Status:     "confirmed",
		Search:     "  alice ",
		StartDate:  &start,
		EndDate:    &end,
		View:       calendar.ViewDay,
		Anchor:     anchor,
		Pagination: Pagination{Page: 3},
	})
	require.NoError(t, err)

	assert.Equal(t, 45, page.Total)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 20, page.Limit)
	require.Len(t, page.Items, 1)
	assert.NotNil(t, page.Items[0].Slots)
}

func TestListByFacilityExplicitDates(t *testing.T) {
	f := newFixture(Options{})
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	f.bookings.On("Find", mock.Anything, And{
		FacilityIDFilter{FacilityID: "fac-1"},
		DateRangeFilter{Range: calendar.Range{Start: start}},
	}, &Pagination{Page: 1, Limit: 10}).Return([]*Booking{}, 0, nil)

	page, err := f.svc.ListByFacility(context.Background(), FacilityQuery{
		FacilityID: "fac-1",
		StartDate:  &start,
		Pagination: Pagination{Page: 1, Limit: 10},
	})
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	assert.Zero(t, page.Total)
	f.slots.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestListByFacilityRejectsBadInput(t *testing.T) {
	start := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		q    FacilityQuery
		want error
	}{
		{"unknown status", FacilityQuery{FacilityID: "fac-1", Status: "PAID"}, ErrInvalidStatus},
		{"inverted dates", FacilityQuery{FacilityID: "fac-1", StartDate: &start, EndDate: &end}, ErrInvalidDateRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(Options{})

			_, err := f.svc.ListByFacility(context.Background(), tt.q)

			assert.ErrorIs(t, err, tt.want)
			f.bookings.AssertNotCalled(t, "Find", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestGetByID(t *testing.T) {
	t.Run("attaches slots", func(t *testing.T) {
		f := newFixture(Options{})
		f.bookings.On("GetByID", mock.Anything, "b1").Return(&Booking{ID: "b1", FacilityID: "fac-1"}, nil)
		f.slots.On("Find", mock.Anything, BookingIDsFilter{IDs: []string{"b1"}}).
			Return([]*Slot{{ID: "s1", BookingID: "b1"}}, nil)

		b, err := f.svc.GetByID(context.Background(), "fac-1", "b1")

		require.NoError(t, err)
		assert.Len(t, b.Slots, 1)
	})

	t.Run("other facility is not found", func(t *testing.T) {
		f := newFixture(Options{})
		f.bookings.On("GetByID", mock.Anything, "b1").Return(&Booking{ID: "b1", FacilityID: "fac-2"}, nil)

		_, err := f.svc.GetByID(context.Background(), "fac-1", "b1")

		assert.ErrorIs(t, err, ErrNotFound)
		f.slots.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	})
}
