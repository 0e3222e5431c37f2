package favoritesrepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luwei/smart-travel/internal/domain/favorites"
	"github.com/luwei/smart-travel/internal/domain/outfit"
)

// PostgresRepository implements favorites.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert stores a favorite route row.
func (r *PostgresRepository) Insert(ctx context.Context, route favorites.Route) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO favorite_routes (
			id, device_id, name,
			origin_lng, origin_lat, origin_address,
			dest_lng, dest_lat, dest_address,
			transport_mode, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		route.ID, route.DeviceID, route.Name,
		route.Origin.Longitude, route.Origin.Latitude, route.Origin.Address,
		route.Destination.Longitude, route.Destination.Latitude, route.Destination.Address,
		string(route.Mode), route.CreatedAt,
	)
	return err
}

// ListByDevice returns the device's saved routes, newest first.
func (r *PostgresRepository) ListByDevice(ctx context.Context, deviceID string) ([]favorites.Route, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, device_id, name,
		       origin_lng, origin_lat, origin_address,
		       dest_lng, dest_lat, dest_address,
		       transport_mode, created_at
		FROM favorite_routes
		WHERE device_id = $1
		ORDER BY created_at DESC
	`, deviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []favorites.Route
	for rows.Next() {
		var (
			route favorites.Route
			mode  string
		)
		if err := rows.Scan(
			&route.ID, &route.DeviceID, &route.Name,
			&route.Origin.Longitude, &route.Origin.Latitude, &route.Origin.Address,
			&route.Destination.Longitude, &route.Destination.Latitude, &route.Destination.Address,
			&mode, &route.CreatedAt,
		); err != nil {
			return nil, err
		}
		route.Mode = outfit.TransportMode(mode)
		routes = append(routes, route)
	}
	return routes, rows.Err()
}

// Delete removes a route; returns false when nothing matched.
func (r *PostgresRepository) Delete(ctx context.Context, deviceID, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM favorite_routes
		WHERE device_id = $1 AND id = $2
	`, deviceID, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

var _ favorites.Repository = (*PostgresRepository)(nil)
