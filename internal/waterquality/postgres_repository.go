package waterquality

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
// The parameter block is stored as JSONB.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL water quality repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert stores a new reading.
func (r *PostgresRepository) Insert(ctx context.Context, reading *Reading) error {
	params, err := json.Marshal(reading.Parameters)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO water_quality_readings (
			id, city, state, lat, lon,
			wqi_value, wqi_category, parameters, safe_for_drinking,
			source, recorded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = r.pool.Exec(ctx, query,
		reading.ID,
		reading.City,
		reading.State,
		reading.Lat,
		reading.Lon,
		reading.WQI.Value,
		string(reading.WQI.Category),
		params,
		reading.SafeForDrinking,
		reading.Source,
		reading.RecordedAt,
	)
	return err
}

// Latest returns the newest reading for a city.
func (r *PostgresRepository) Latest(ctx context.Context, city string) (*Reading, error) {
	query := `
		SELECT id, city, state, lat, lon,
			wqi_value, wqi_category, parameters, safe_for_drinking,
			source, recorded_at
		FROM water_quality_readings
		WHERE lower(city) = lower($1)
		ORDER BY recorded_at DESC
		LIMIT 1
	`

	var reading Reading
	var category string
	var params []byte

	err := r.pool.QueryRow(ctx, query, city).Scan(
		&reading.ID,
		&reading.City,
		&reading.State,
		&reading.Lat,
		&reading.Lon,
		&reading.WQI.Value,
		&category,
		&params,
		&reading.SafeForDrinking,
		&reading.Source,
		&reading.RecordedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoReading
		}
		return nil, err
	}

	reading.WQI.Category = Category(category)
	if err := json.Unmarshal(params, &reading.Parameters); err != nil {
		return nil, err
	}
	return &reading, nil
}

// Ensure PostgresRepository implements Repository.
var _ Repository = (*PostgresRepository)(nil)
