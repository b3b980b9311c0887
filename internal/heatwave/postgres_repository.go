package heatwave

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

// NewPostgresRepository creates a new PostgreSQL heatwave repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const readingColumns = `
	id, city, state, lat, lon,
	temp_current, temp_feels, temp_min, temp_max,
	heat_index, humidity, alert_level, source, recorded_at
`

// Insert stores a new reading.
func (r *PostgresRepository) Insert(ctx context.Context, reading *Reading) error {
	query := `
		INSERT INTO heatwave_readings (` + readingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.pool.Exec(ctx, query,
		reading.ID,
		reading.City,
		reading.State,
		reading.Lat,
		reading.Lon,
		reading.Temperature.Current,
		reading.Temperature.FeelsLike,
		reading.Temperature.Min,
		reading.Temperature.Max,
		reading.HeatIndex,
		reading.Humidity,
		string(reading.AlertLevel),
		reading.Source,
		reading.RecordedAt,
	)
	return err
}

// Latest returns the newest reading for a city.
func (r *PostgresRepository) Latest(ctx context.Context, city string) (*Reading, error) {
	query := `
		SELECT ` + readingColumns + `
		FROM heatwave_readings
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
		SELECT ` + readingColumns + `
		FROM heatwave_readings
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
	var level string

	err := row.Scan(
		&reading.ID,
		&reading.City,
		&reading.State,
		&reading.Lat,
		&reading.Lon,
		&reading.Temperature.Current,
		&reading.Temperature.FeelsLike,
		&reading.Temperature.Min,
		&reading.Temperature.Max,
		&reading.HeatIndex,
		&reading.Humidity,
		&level,
		&reading.Source,
		&reading.RecordedAt,
	)
	if err != nil {
		return nil, err
	}

	reading.AlertLevel = AlertLevel(level)
	return &reading, nil
}

// Ensure PostgresRepository implements Repository.
var _ Repository = (*PostgresRepository)(nil)
