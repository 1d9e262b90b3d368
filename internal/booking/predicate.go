package booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
)

var errUnsupportedFilter = errors.New("unsupported filter")

const slotExists = "EXISTS (SELECT 1 FROM public.booking_slots s WHERE s.booking_id = b.id AND "

// bookingPredicate compiles f against bookings b joined with users u and courts c.
func bookingPredicate(f Filter) (squirrel.Sqlizer, error) {
	switch v := f.(type) {
	case FacilityIDFilter:
		return squirrel.Eq{"b.facility_id": v.FacilityID}, nil
	case CourtIDFilter:
		return squirrel.Eq{"b.court_id": v.CourtID}, nil
	case StatusFilter:
		return squirrel.Eq{"b.status": v.Status}, nil
	case BookingIDsFilter:
		return squirrel.Eq{"b.id": v.IDs}, nil
	case DateRangeFilter:
		return existsSlot(overlapConds("s", v))
	case SlotStartFilter:
		return existsSlot(startConds("s", v))
	case PlayerNameFilter:
		return squirrel.ILike{"u.full_name": containsPattern(v.Term)}, nil
	case CourtNameFilter:
		return squirrel.ILike{"c.name": containsPattern(v.Term)}, nil
	case And:
		return compileAll(v, bookingPredicate, func(p []squirrel.Sqlizer) squirrel.Sqlizer { return squirrel.And(p) })
	case Or:
		return compileAll(v, bookingPredicate, func(p []squirrel.Sqlizer) squirrel.Sqlizer { return squirrel.Or(p) })
	}
	return nil, fmt.Errorf("booking store: %w: %T", errUnsupportedFilter, f)
}

// slotPredicate compiles f against booking_slots s.
func slotPredicate(f Filter) (squirrel.Sqlizer, error) {
	switch v := f.(type) {
	case BookingIDsFilter:
		return squirrel.Eq{"s.booking_id": v.IDs}, nil
	case CourtIDFilter:
		return squirrel.Eq{"s.court_id": v.CourtID}, nil
	case StatusFilter:
		return squirrel.Eq{"s.status": v.Status}, nil
	case DateRangeFilter:
		return squirrel.And(overlapConds("s", v)), nil
	case SlotStartFilter:
		return squirrel.And(startConds("s", v)), nil
	case And:
		return compileAll(v, slotPredicate, func(p []squirrel.Sqlizer) squirrel.Sqlizer { return squirrel.And(p) })
	case Or:
		return compileAll(v, slotPredicate, func(p []squirrel.Sqlizer) squirrel.Sqlizer { return squirrel.Or(p) })
	}
	return nil, fmt.Errorf("slot store: %w: %T", errUnsupportedFilter, f)
}

func compileAll(fs []Filter, compile func(Filter) (squirrel.Sqlizer, error), join func([]squirrel.Sqlizer) squirrel.Sqlizer) (squirrel.Sqlizer, error) {
	parts := make([]squirrel.Sqlizer, 0, len(fs))
	for _, f := range fs {
		p, err := compile(f)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return join(parts), nil
}

func overlapConds(alias string, f DateRangeFilter) []squirrel.Sqlizer {
	var conds []squirrel.Sqlizer
	if !f.Range.End.IsZero() {
		conds = append(conds, squirrel.LtOrEq{alias + ".start_time": f.Range.End})
	}
	if !f.Range.Start.IsZero() {
		conds = append(conds, squirrel.Gt{alias + ".end_time": f.Range.Start})
	}
	return conds
}

func startConds(alias string, f SlotStartFilter) []squirrel.Sqlizer {
	var conds []squirrel.Sqlizer
	if !f.Range.Start.IsZero() {
		conds = append(conds, squirrel.GtOrEq{alias + ".start_time": f.Range.Start})
	}
	if !f.Range.End.IsZero() {
		conds = append(conds, squirrel.LtOrEq{alias + ".start_time": f.Range.End})
	}
	return conds
}

func existsSlot(conds []squirrel.Sqlizer) (squirrel.Sqlizer, error) {
	if len(conds) == 0 {
		return squirrel.Expr("EXISTS (SELECT 1 FROM public.booking_slots s WHERE s.booking_id = b.id)"), nil
	}
	sql, args, err := squirrel.And(conds).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build slot condition failed: %w", err)
	}
	return squirrel.Expr(slotExists+sql+")", args...), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
