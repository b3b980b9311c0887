package flood

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL flood repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert stores a new reading.
func (r *PostgresRepository) Insert(ctx context.Context, reading *Reading) error {
	query := `
		INSERT INTO flood_readings (
			id, city, state, lat, lon,
			risk_level, rainfall_mm, water_level_m, source, recorded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		reading.ID,
		reading.City,
		reading.State,
		reading.Lat,
		reading.Lon,
		string(reading.RiskLevel),
		reading.RainfallMM,
		reading.WaterLevel,
		reading.Source,
		reading.RecordedAt,
	)
	return err
}

// Latest returns the newest reading for a city.
func (r *PostgresRepository) Latest(ctx context.Context, city string) (*Reading, error) {
	query := `
		SELECT id, city, state, lat, lon,
			risk_level, rainfall_mm, water_level_m, source, recorded_at
		FROM flood_readings
		WHERE lower(city) = lower($1)
		ORDER BY recorded_at DESC
		LIMIT 1
	`

	var reading Reading
	var risk string

	err := r.pool.QueryRow(ctx, query, city).Scan(
		&reading.ID,
		&reading.City,
		&reading.State,
		&reading.Lat,
		&reading.Lon,
		&risk,
		&reading.RainfallMM,
		&reading.WaterLevel,
		&reading.Source,
		&reading.RecordedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoReading
		}
		return nil, err
	}

	reading.RiskLevel = RiskLevel(risk)
	return &reading, nil
}

// Ensure PostgresRepository implements Repository.
var _ Repository = (*PostgresRepository)(nil)
