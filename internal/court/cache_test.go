package court

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLookup struct{ mock.Mock }

func (m *MockLookup) FindInFacility(ctx context.Context, courtID, facilityID string) (*Court, bool, error) {
	args := m.Called(ctx, courtID, facilityID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*Court), args.Bool(1), args.Error(2)
}

func sampleCourt() *Court {
	return &Court{
		ID:          "court-1",
		FacilityID:  "fac-1",
		Name:        "Court A",
		Sport:       "badminton",
		SlotMinutes: 30,
		IsActive:    true,
		CreatedAt:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCachedLookupMissThenStore(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()
	next := new(MockLookup)
	ctx := context.Background()
	c := sampleCourt()
	payload, _ := json.Marshal(c)
	key := cacheKey("fac-1", "court-1")

	rmock.ExpectGet(key).RedisNil()
	next.On("FindInFacility", ctx, "court-1", "fac-1").Return(c, true, nil).Once()
	rmock.ExpectSet(key, string(payload), time.Minute).SetVal("OK")

	lookup := NewCachedLookup(next, rdb, time.Minute, zerolog.Nop())
	got, found, err := lookup.FindInFacility(ctx, "court-1", "fac-1")

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, c, got)
	next.AssertExpectations(t)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestCachedLookupHit(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()
	next := new(MockLookup)
	c := sampleCourt()
	payload, _ := json.Marshal(c)

	rmock.ExpectGet(cacheKey("fac-1", "court-1")).SetVal(string(payload))

	lookup := NewCachedLookup(next, rdb, time.Minute, zerolog.Nop())
	got, found, err := lookup.FindInFacility(context.Background(), "court-1", "fac-1")

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, c.Name, got.Name)
	assert.Equal(t, 30, got.SlotMinutes)
	next.AssertNotCalled(t, "FindInFacility", mock.Anything, mock.Anything, mock.Anything)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestCachedLookupDoesNotCacheAbsence(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()
	next := new(MockLookup)
	ctx := context.Background()

	rmock.ExpectGet(cacheKey("fac-1", "ghost")).RedisNil()
	next.On("FindInFacility", ctx, "ghost", "fac-1").Return(nil, false, nil).Once()

	lookup := NewCachedLookup(next, rdb, time.Minute, zerolog.Nop())
	got, found, err := lookup.FindInFacility(ctx, "ghost", "fac-1")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestCachedLookupFallsBackOnRedisError(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()
	next := new(MockLookup)
	ctx := context.Background()
	c := sampleCourt()
	payload, _ := json.Marshal(c)
	key := cacheKey("fac-1", "court-1")

	rmock.ExpectGet(key).SetErr(errors.New("connection refused"))
	next.On("FindInFacility", ctx, "court-1", "fac-1").Return(c, true, nil).Once()
	rmock.ExpectSet(key, string(payload), time.Minute).SetErr(errors.New("connection refused"))

	lookup := NewCachedLookup(next, rdb, time.Minute, zerolog.Nop())
	got, found, err := lookup.FindInFacility(ctx, "court-1", "fac-1")

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, c, got)
}

func TestCachedLookupPropagatesStoreError(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()
	next := new(MockLookup)
	ctx := context.Background()
	storeErr := errors.New("db down")

	rmock.ExpectGet(cacheKey("fac-1", "court-1")).RedisNil()
	next.On("FindInFacility", ctx, "court-1", "fac-1").Return(nil, false, storeErr).Once()

	lookup := NewCachedLookup(next, rdb, time.Minute, zerolog.Nop())
	_, _, err := lookup.FindInFacility(ctx, "court-1", "fac-1")

	assert.ErrorIs(t, err, storeErr)
}
