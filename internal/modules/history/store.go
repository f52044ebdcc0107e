// README: Estimate history store backed by PostgreSQL.
package history

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Insert(ctx context.Context, r Record) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO trip_estimates (
			id, provider, origin, destination, vehicle_type,
			distance_km, toll_total, fuel_total, extras_total, grand_total, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		r.ID, r.Provider, r.Origin, r.Destination, r.VehicleType,
		r.DistanceKm, r.TollTotal, r.FuelTotal, r.ExtrasTotal, r.GrandTotal, r.CreatedAt,
	)
	return err
}

func (s *Store) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, provider, origin, destination, vehicle_type,
		       distance_km, toll_total, fuel_total, extras_total, grand_total, created_at
		FROM trip_estimates
		ORDER BY created_at DESC
		LIMIT $1`, limit,
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Record])
}
