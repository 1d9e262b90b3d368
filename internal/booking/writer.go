package booking

import (
	"context"
	"fmt"

	"github.com/bevisngo/booksan-sub000/internal/pkg/metrics"
)

func validateCreate(req CreateRequest) error {
	if len(req.Slots) == 0 {
		return ErrNoSlots
	}
	if req.UnitPrice < 0 || req.TotalPrice < 0 {
		return ErrNegativePrice
	}
	if req.SlotMinutes != nil && *req.SlotMinutes <= 0 {
		return ErrInvalidSlotMinutes
	}
	for i, s := range req.Slots {
		if !s.End.After(s.Start) {
			return ErrInvalidSlotRange.Detail(fmt.Sprintf("slot %d", i))
		}
		if i > 0 && s.Start.Before(req.Slots[i-1].End) {
			return ErrSlotsOutOfOrder.Detail(fmt.Sprintf("slot %d", i))
		}
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	c, found, err := s.courts.FindInFacility(ctx, req.CourtID, req.FacilityID)
	if err != nil {
		return nil, fmt.Errorf("lookup court: %w", err)
	}
	// An inactive court takes no new bookings.
	if !found || !c.IsActive {
		return nil, ErrCourtNotFound
	}

	p, found, err := s.players.FindPlayer(ctx, req.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("lookup player: %w", err)
	}
	if !found {
		return nil, ErrPlayerNotFound
	}

	slotMinutes := c.SlotMinutes
	if req.SlotMinutes != nil {
		slotMinutes = *req.SlotMinutes
	}

	b := &Booking{
		PlayerID:     p.ID,
		PlayerName:   p.FullName,
		FacilityID:   req.FacilityID,
		CourtID:      c.ID,
		CourtName:    c.Name,
		Status:       StatusConfirmed,
		StartAt:      req.Slots[0].Start,
		EndAt:        req.Slots[len(req.Slots)-1].End,
		SlotMinutes:  slotMinutes,
		UnitPrice:    req.UnitPrice,
		TotalPrice:   req.TotalPrice,
		IsRecurrence: req.IsRecurrence,
		Slots:        make([]*Slot, 0, len(req.Slots)),
	}
	for _, in := range req.Slots {
		b.Slots = append(b.Slots, &Slot{
			CourtID:   c.ID,
			StartTime: in.Start,
			EndTime:   in.End,
			Status:    StatusConfirmed,
		})
	}

	err = s.tx.Do(ctx, func(ctx context.Context) error {
		if s.opts.PreventOverlap {
			if err := s.bookings.LockCourt(ctx, c.ID); err != nil {
				return err
			}
			overlap, err := s.bookings.HasOverlap(ctx, c.ID, req.Slots)
			if err != nil {
				return err
			}
			if overlap {
				metrics.RecordBookingConflict()
				return ErrTimeConflict
			}
		}
		return s.bookings.CreateWithSlots(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordBookingCreated(len(b.Slots))
	s.log.Info().
		Str("booking_id", b.ID).
		Str("facility_id", b.FacilityID).
		Str("court_id", b.CourtID).
		Int("slots", len(b.Slots)).
		Msg("booking created")
	return b, nil
}
