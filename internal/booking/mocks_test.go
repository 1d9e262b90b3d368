package booking

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bevisngo/booksan-sub000/internal/court"
	"github.com/bevisngo/booksan-sub000/internal/player"
)

type MockBookingStore struct{ mock.Mock }

func (m *MockBookingStore) GetByID(ctx context.Context, id string) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockBookingStore) GetByIDForUpdate(ctx context.Context, id string) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockBookingStore) Find(ctx context.Context, f Filter, page *Pagination) ([]*Booking, int, error) {
	args := m.Called(ctx, f, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*Booking), args.Int(1), args.Error(2)
}

func (m *MockBookingStore) CreateWithSlots(ctx context.Context, b *Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBookingStore) UpdateStatus(ctx context.Context, id string, status Status) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockBookingStore) HasOverlap(ctx context.Context, courtID string, slots []SlotInput) (bool, error) {
	args := m.Called(ctx, courtID, slots)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingStore) LockCourt(ctx context.Context, courtID string) error {
	return m.Called(ctx, courtID).Error(0)
}

func (m *MockBookingStore) Aggregate(ctx context.Context, f Filter) (Aggregate, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(Aggregate), args.Error(1)
}

type MockSlotStore struct{ mock.Mock }

func (m *MockSlotStore) GetByID(ctx context.Context, id string) (*Slot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Slot), args.Error(1)
}

func (m *MockSlotStore) Find(ctx context.Context, f Filter) ([]*Slot, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Slot), args.Error(1)
}

func (m *MockSlotStore) Cancel(ctx context.Context, s *Slot) (bool, error) {
	args := m.Called(ctx, s)
	return args.Bool(0), args.Error(1)
}

type MockCourtLookup struct{ mock.Mock }

func (m *MockCourtLookup) FindInFacility(ctx context.Context, courtID, facilityID string) (*court.Court, bool, error) {
	args := m.Called(ctx, courtID, facilityID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*court.Court), args.Bool(1), args.Error(2)
}

type MockPlayerLookup struct{ mock.Mock }

func (m *MockPlayerLookup) FindPlayer(ctx context.Context, playerID string) (*player.Player, bool, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*player.Player), args.Bool(1), args.Error(2)
}

// inlineTx runs fn directly and counts invocations.
type inlineTx struct{ calls int }

func (t *inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}
