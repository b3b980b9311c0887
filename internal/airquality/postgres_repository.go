package airquality

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
// The pollutant breakdown is stored as JSONB to keep the document shape
// of the original snapshots.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL air quality repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert stores a new reading.
func (r *PostgresRepository) Insert(ctx context.Context, reading *Reading) error {
	pollutants, err := json.Marshal(reading.Pollutants)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO air_quality_readings (
			id, city, state, lat, lon,
			aqi_value, aqi_category, pollutants, source, recorded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = r.pool.Exec(ctx, query,
		reading.ID,
		reading.City,
		reading.State,
		reading.Lat,
		reading.Lon,
		reading.AQI.Value,
		string(reading.AQI.Category),
		pollutants,
		reading.Source,
		reading.RecordedAt,
	)
	return err
}

// Latest returns the newest reading for a city.
func (r *PostgresRepository) Latest(ctx context.Context, city string) (*Reading, error) {
	query := `
		SELECT id, city, state, lat, lon,
			aqi_value, aqi_category, pollutants, source, recorded_at
		FROM air_quality_readings
		WHERE lower(city) = lower($1)
		ORDER BY recorded_at DESC
		LIMIT 1
	`

	reading, err := scanReading(r.pool.QueryRow(ctx, query, city))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoReading
		}
		return nil, err
	}
	return reading, nil
}

// History returns up to limit readings for a city, newest first.
func (r *PostgresRepository) History(ctx context.Context, city string, limit int) ([]*Reading, error) {
	if limit <= 0 {
		limit = 24
	}

	query := `
		SELECT id, city, state, lat, lon,
			aqi_value, aqi_category, pollutants, source, recorded_at
		FROM air_quality_readings
		WHERE lower(city) = lower($1)
		ORDER BY recorded_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, city, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []*Reading
	for rows.Next() {
		reading, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}
	return readings, rows.Err()
}

func scanReading(row pgx.Row) (*Reading, error) {
	var reading Reading
	var category string
	var pollutants []byte

	err := row.Scan(
		&reading.ID,
		&reading.City,
		&reading.State,
		&reading.Lat,
		&reading.Lon,
		&reading.AQI.Value,
		&category,
		&pollutants,
		&reading.Source,
		&reading.RecordedAt,
	)
	if err != nil {
		return nil, err
	}

	reading.AQI.Category = Category(category)
	if err := json.Unmarshal(pollutants, &reading.Pollutants); err != nil {
		return nil, err
	}
	return &reading, nil
}

// Ensure PostgresRepository implements Repository.
var _ Repository = (*PostgresRepository)(nil)
