package heatwave

import "context"

// Repository persists heatwave readings.
// Inserts are append-only; there is no update or delete path.
type Repository interface {
	// Insert stores a new reading.
	Insert(ctx context.Context, reading *Reading) error

	// Latest returns the most recent reading for a city by recorded
	// time. City matching is case-insensitive. Returns ErrNoReading
	// when the city has never been ingested.
	Latest(ctx context.Context, city string) (*Reading, error)

	// History returns up to limit readings for a city, newest first.
	History(ctx context.Context, city string, limit int) ([]*Reading, error)
}
