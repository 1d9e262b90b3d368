package court

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Lookup resolves courts by id within a facility.
// Absence is reported through the bool, never as an error.
type Lookup interface {
	FindInFacility(ctx context.Context, courtID, facilityID string) (*Court, bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a court lookup backed by Postgres.
func NewPgxRepository(pool *pgxpool.Pool) Lookup {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) FindInFacility(ctx context.Context, courtID, facilityID string) (*Court, bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "facility_id", "name", "sport", "slot_minutes", "is_active", "created_at").
		From("public.courts").
		Where(squirrel.Eq{"id": courtID, "facility_id": facilityID}).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("build find court query failed: %w", err)
	}

	var c Court
	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&c.ID, &c.FacilityID, &c.Name, &c.Sport, &c.SlotMinutes, &c.IsActive, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("find court failed: %w", err)
	}
	return &c, true, nil
}
