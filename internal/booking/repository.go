package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bevisngo/booksan-sub000/internal/db"
)

// BookingStore persists bookings. Methods use the transaction carried by ctx when present.
type BookingStore interface {
	GetByID(ctx context.Context, id string) (*Booking, error)
	// GetByIDForUpdate locks the booking row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*Booking, error)
	// Find returns matching bookings ordered by creation time, newest first, and the
	// total match count. A nil page returns every match.
	Find(ctx context.Context, f Filter, page *Pagination) ([]*Booking, int, error)
	// CreateWithSlots inserts the booking and its slots atomically and fills in generated fields.
	CreateWithSlots(ctx context.Context, b *Booking) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	// HasOverlap reports whether any non-cancelled slot on the court intersects one of the inputs.
	HasOverlap(ctx context.Context, courtID string, slots []SlotInput) (bool, error)
	// LockCourt takes a transaction-scoped lock serializing writers of one court.
	LockCourt(ctx context.Context, courtID string) error
	Aggregate(ctx context.Context, f Filter) (Aggregate, error)
}

// SlotStore persists booking slots.
type SlotStore interface {
	GetByID(ctx context.Context, id string) (*Slot, error)
	// Find returns matching slots ordered by start time.
	Find(ctx context.Context, f Filter) ([]*Slot, error)
	// Cancel writes the slot's cancellation fields unless the stored slot is
	// already cancelled. It reports whether a row was written.
	Cancel(ctx context.Context, s *Slot) (bool, error)
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var bookingColumns = []string{
	"b.id", "b.player_id", "u.full_name", "b.facility_id", "b.court_id", "c.name",
	"b.status", "b.start_at", "b.end_at", "b.slot_minutes", "b.unit_price", "b.total_price",
	"b.is_recurrence", "b.created_at", "b.updated_at",
}

var slotColumns = []string{
	"s.id", "s.booking_id", "s.court_id", "s.start_time", "s.end_time", "s.status",
	"s.cancel_reason", "s.cancelled_by", "s.cancelled_at", "s.created_at", "s.updated_at",
}

type pgxBookingStore struct {
	pool *pgxpool.Pool
}

// NewPgxBookingStore creates a BookingStore backed by Postgres.
func NewPgxBookingStore(pool *pgxpool.Pool) BookingStore {
	return &pgxBookingStore{pool: pool}
}

func bookingSelect() squirrel.SelectBuilder {
	return psql.Select(bookingColumns...).
		From("public.bookings b").
		Join("public.users u ON u.id = b.player_id").
		Join("public.courts c ON c.id = b.court_id")
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.PlayerID, &b.PlayerName, &b.FacilityID, &b.CourtID, &b.CourtName,
		&b.Status, &b.StartAt, &b.EndAt, &b.SlotMinutes, &b.UnitPrice, &b.TotalPrice,
		&b.IsRecurrence, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxBookingStore) GetByID(ctx context.Context, id string) (*Booking, error) {
	return r.get(ctx, id, false)
}

func (r *pgxBookingStore) GetByIDForUpdate(ctx context.Context, id string) (*Booking, error) {
	return r.get(ctx, id, true)
}

func (r *pgxBookingStore) get(ctx context.Context, id string, lock bool) (*Booking, error) {
	q := bookingSelect().Where(squirrel.Eq{"b.id": id})
	if lock {
		q = q.Suffix("FOR UPDATE OF b")
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(db.Conn(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxBookingStore) Find(ctx context.Context, f Filter, page *Pagination) ([]*Booking, int, error) {
	pred, err := bookingPredicate(f)
	if err != nil {
		return nil, 0, err
	}
	conn := db.Conn(ctx, r.pool)

	q := bookingSelect().Where(pred).OrderBy("b.created_at DESC", "b.id")
	if page != nil {
		q = q.Limit(uint64(page.Limit)).Offset(uint64(page.Offset()))
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	bookings := []*Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}

	if page == nil {
		return bookings, len(bookings), nil
	}

	countQuery, countArgs, err := psql.Select("count(*)").
		From("public.bookings b").
		Join("public.users u ON u.id = b.player_id").
		Join("public.courts c ON c.id = b.court_id").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count bookings query failed: %w", err)
	}
	var total int
	if err := conn.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bookings failed: %w", err)
	}
	return bookings, total, nil
}

func (r *pgxBookingStore) CreateWithSlots(ctx context.Context, b *Booking) error {
	bookingQuery, bookingArgs, err := psql.Insert("public.bookings").
		Columns("player_id", "facility_id", "court_id", "status", "start_at", "end_at",
			"slot_minutes", "unit_price", "total_price", "is_recurrence").
		Values(b.PlayerID, b.FacilityID, b.CourtID, b.Status, b.StartAt, b.EndAt,
			b.SlotMinutes, b.UnitPrice, b.TotalPrice, b.IsRecurrence).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	return pgx.BeginFunc(ctx, db.Conn(ctx, r.pool), func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, bookingQuery, bookingArgs...).
			Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return mapWriteError(err)
		}

		batch := &pgx.Batch{}
		for _, s := range b.Slots {
			s.BookingID = b.ID
			query, args, err := psql.Insert("public.booking_slots").
				Columns("booking_id", "court_id", "start_time", "end_time", "status").
				Values(s.BookingID, s.CourtID, s.StartTime, s.EndTime, s.Status).
				Suffix("RETURNING id, created_at, updated_at").
				ToSql()
			if err != nil {
				return fmt.Errorf("build create slot query failed: %w", err)
			}
			batch.Queue(query, args...)
		}

		br := tx.SendBatch(ctx, batch)
		for _, s := range b.Slots {
			if err := br.QueryRow().Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
				_ = br.Close()
				return mapWriteError(err)
			}
		}
		if err := br.Close(); err != nil {
			return mapWriteError(err)
		}
		return nil
	})
}

// mapWriteError turns constraint violations into domain errors.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ForeignKeyViolation:
			switch {
			case strings.Contains(pgErr.ConstraintName, "player"):
				return ErrPlayerNotFound
			case strings.Contains(pgErr.ConstraintName, "court"):
				return ErrCourtNotFound
			}
		case pgerrcode.CheckViolation:
			switch {
			case strings.Contains(pgErr.ConstraintName, "price"):
				return ErrNegativePrice
			case strings.Contains(pgErr.ConstraintName, "slot_minutes"):
				return ErrInvalidSlotMinutes
			}
			return ErrInvalidSlotRange
		}
	}
	return fmt.Errorf("create booking failed: %w", err)
}

func (r *pgxBookingStore) UpdateStatus(ctx context.Context, id string, status Status) error {
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := db.Conn(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxBookingStore) HasOverlap(ctx context.Context, courtID string, slots []SlotInput) (bool, error) {
	if len(slots) == 0 {
		return false, nil
	}
	windows := make(squirrel.Or, 0, len(slots))
	for _, s := range slots {
		windows = append(windows, squirrel.And{
			squirrel.Lt{"start_time": s.End},
			squirrel.Gt{"end_time": s.Start},
		})
	}

	sub, args, err := psql.Select("1").
		From("public.booking_slots").
		Where(squirrel.Eq{"court_id": courtID}).
		Where(squirrel.NotEq{"status": StatusCancelled}).
		Where(windows).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	var exists bool
	if err := db.Conn(ctx, r.pool).QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}

func (r *pgxBookingStore) LockCourt(ctx context.Context, courtID string) error {
	if !db.InTx(ctx) {
		return errors.New("lock court: no transaction in context")
	}
	if _, err := db.Conn(ctx, r.pool).Exec(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", courtID); err != nil {
		return fmt.Errorf("lock court failed: %w", err)
	}
	return nil
}

func (r *pgxBookingStore) Aggregate(ctx context.Context, f Filter) (Aggregate, error) {
	var agg Aggregate
	pred, err := bookingPredicate(f)
	if err != nil {
		return agg, err
	}

	query, args, err := psql.Select(
		"count(*)",
		"count(*) FILTER (WHERE b.status = 'CONFIRMED')",
		"count(*) FILTER (WHERE b.status = 'CANCELLED')",
		"count(*) FILTER (WHERE b.status = 'PENDING')",
		"COALESCE(sum(b.total_price), 0)",
		"COALESCE(sum(b.total_price) FILTER (WHERE b.status <> 'CANCELLED'), 0)",
	).
		From("public.bookings b").
		Join("public.users u ON u.id = b.player_id").
		Join("public.courts c ON c.id = b.court_id").
		Where(pred).
		ToSql()
	if err != nil {
		return agg, fmt.Errorf("build booking stats query failed: %w", err)
	}

	err = db.Conn(ctx, r.pool).QueryRow(ctx, query, args...).
		Scan(&agg.Total, &agg.Confirmed, &agg.Cancelled, &agg.Pending, &agg.Revenue, &agg.NetRevenue)
	if err != nil {
		return agg, fmt.Errorf("booking stats failed: %w", err)
	}
	return agg, nil
}

type pgxSlotStore struct {
	pool *pgxpool.Pool
}

// NewPgxSlotStore creates a SlotStore backed by Postgres.
func NewPgxSlotStore(pool *pgxpool.Pool) SlotStore {
	return &pgxSlotStore{pool: pool}
}

func scanSlot(row pgx.Row) (*Slot, error) {
	var s Slot
	err := row.Scan(
		&s.ID, &s.BookingID, &s.CourtID, &s.StartTime, &s.EndTime, &s.Status,
		&s.CancelReason, &s.CancelledBy, &s.CancelledAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *pgxSlotStore) GetByID(ctx context.Context, id string) (*Slot, error) {
	query, args, err := psql.Select(slotColumns...).
		From("public.booking_slots s").
		Where(squirrel.Eq{"s.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get slot query failed: %w", err)
	}

	s, err := scanSlot(db.Conn(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("get slot failed: %w", err)
	}
	return s, nil
}

func (r *pgxSlotStore) Find(ctx context.Context, f Filter) ([]*Slot, error) {
	pred, err := slotPredicate(f)
	if err != nil {
		return nil, err
	}
	query, args, err := psql.Select(slotColumns...).
		From("public.booking_slots s").
		Where(pred).
		OrderBy("s.start_time ASC", "s.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list slots query failed: %w", err)
	}

	rows, err := db.Conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list slots failed: %w", err)
	}
	defer rows.Close()

	slots := []*Slot{}
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot failed: %w", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list slots failed: %w", err)
	}
	return slots, nil
}

func (r *pgxSlotStore) Cancel(ctx context.Context, s *Slot) (bool, error) {
	query, args, err := psql.Update("public.booking_slots").
		Set("status", StatusCancelled).
		Set("cancel_reason", s.CancelReason).
		Set("cancelled_by", s.CancelledBy).
		Set("cancelled_at", s.CancelledAt).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": s.ID}).
		Where(squirrel.NotEq{"status": StatusCancelled}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build cancel slot query failed: %w", err)
	}

	if err := db.Conn(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("cancel slot failed: %w", err)
	}
	s.Status = StatusCancelled
	return true, nil
}
