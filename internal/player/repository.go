package player

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Lookup resolves active users holding the player role.
// Absence is reported through the bool, never as an error.
type Lookup interface {
	FindPlayer(ctx context.Context, playerID string) (*Player, bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a player lookup backed by Postgres.
func NewPgxRepository(pool *pgxpool.Pool) Lookup {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) FindPlayer(ctx context.Context, playerID string) (*Player, bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "full_name", "role").
		From("public.users").
		Where(squirrel.Eq{"id": playerID, "role": RolePlayer, "is_active": true}).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("build find player query failed: %w", err)
	}

	var p Player
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&p.ID, &p.FullName, &p.Role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("find player failed: %w", err)
	}
	return &p, true, nil
}
