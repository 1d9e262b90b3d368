package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bevisngo/booksan-sub000/internal/calendar"
)

func TestBookingPredicate(t *testing.T) {
	start := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 10, 23, 59, 59, 999_000_000, time.UTC)

	tests := []struct {
		name     string
		filter   Filter
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name:     "facility and court",
			filter:   And{FacilityIDFilter{FacilityID: "f1"}, CourtIDFilter{CourtID: "c1"}},
			wantSQL:  "(b.facility_id = ? AND b.court_id = ?)",
			wantArgs: []interface{}{"f1", "c1"},
		},
		{
			name:     "status",
			filter:   StatusFilter{Status: StatusPending},
			wantSQL:  "b.status = ?",
			wantArgs: []interface{}{StatusPending},
		},
		{
			name:     "search escapes wildcards",
			filter:   SearchFilter("50%_off"),
			wantSQL:  "(u.full_name ILIKE ? OR c.name ILIKE ?)",
			wantArgs: []interface{}{`%50\%\_off%`, `%50\%\_off%`},
		},
		{
			name:     "slot intersects range",
			filter:   DateRangeFilter{Range: calendar.Range{Start: start, End: end}},
			wantSQL:  "EXISTS (SELECT 1 FROM public.booking_slots s WHERE s.booking_id = b.id AND (s.start_time <= ? AND s.end_time > ?))",
			wantArgs: []interface{}{end, start},
		},
		{
			name:     "slot starts in range",
			filter:   SlotStartFilter{Range: calendar.Range{Start: start, End: end}},
			wantSQL:  "EXISTS (SELECT 1 FROM public.booking_slots s WHERE s.booking_id = b.id AND (s.start_time >= ? AND s.start_time <= ?))",
			wantArgs: []interface{}{start, end},
		},
		{
			name:     "open ended start filter",
			filter:   SlotStartFilter{Range: calendar.Range{Start: start}},
			wantSQL:  "EXISTS (SELECT 1 FROM public.booking_slots s WHERE s.booking_id = b.id AND (s.start_time >= ?))",
			wantArgs: []interface{}{start},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := bookingPredicate(tt.filter)
			require.NoError(t, err)

			sql, args, err := pred.ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestSlotPredicate(t *testing.T) {
	t.Run("booking ids", func(t *testing.T) {
		pred, err := slotPredicate(BookingIDsFilter{IDs: []string{"b1", "b2"}})
		require.NoError(t, err)

		sql, args, err := pred.ToSql()
		require.NoError(t, err)
		assert.Equal(t, "s.booking_id IN (?,?)", sql)
		assert.Equal(t, []interface{}{"b1", "b2"}, args)
	})

	t.Run("empty ids match nothing", func(t *testing.T) {
		pred, err := slotPredicate(BookingIDsFilter{})
		require.NoError(t, err)

		sql, _, err := pred.ToSql()
		require.NoError(t, err)
		assert.Equal(t, "(1=0)", sql)
	})

	t.Run("name filters are rejected", func(t *testing.T) {
		_, err := slotPredicate(And{BookingIDsFilter{IDs: []string{"b1"}}, PlayerNameFilter{Term: "x"}})
		assert.ErrorIs(t, err, errUnsupportedFilter)
	})
}
