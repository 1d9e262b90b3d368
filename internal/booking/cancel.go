package booking

import (
	"context"
	"strings"

	"github.com/bevisngo/booksan-sub000/internal/pkg/metrics"
)

// CancelSlot cancels one slot and cascades the cancellation to its booking once
// every slot of the booking is cancelled. The parent booking row stays locked for
// the whole transaction so concurrent cancellations on one booking serialize.
func (s *service) CancelSlot(ctx context.Context, req CancelRequest) (*Booking, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	var (
		result   *Booking
		changed  bool
		cascaded bool
	)
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		slot, err := s.slots.GetByID(ctx, req.SlotID)
		if err != nil {
			return err
		}

		b, err := s.bookings.GetByIDForUpdate(ctx, slot.BookingID)
		if err != nil {
			return err
		}
		if b.FacilityID != req.FacilityID {
			return ErrSlotNotFound
		}

		// The slot was read before the booking lock, so its status may be stale.
		// Cancel only writes when the stored row is still active.
		if slot.Status != StatusCancelled {
			now := s.opts.Now()
			slot.CancelReason = &reason
			if req.CancelledBy != "" {
				by := req.CancelledBy
				slot.CancelledBy = &by
			}
			slot.CancelledAt = &now
			if changed, err = s.slots.Cancel(ctx, slot); err != nil {
				return err
			}
		}

		b.Slots, err = s.slots.Find(ctx, BookingIDsFilter{IDs: []string{b.ID}})
		if err != nil {
			return err
		}

		if b.AllSlotsCancelled() && b.Status != StatusCancelled {
			if err := s.bookings.UpdateStatus(ctx, b.ID, StatusCancelled); err != nil {
				return err
			}
			b.Status = StatusCancelled
			cascaded = true
		}

		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		metrics.RecordSlotCancellation(cascaded)
		s.log.Info().
			Str("booking_id", result.ID).
			Str("slot_id", req.SlotID).
			Bool("booking_cancelled", cascaded).
			Msg("slot cancelled")
	}
	return result, nil
}
