package airquality

import "context"

// Repository persists air quality readings, append-only.
type Repository interface {
	// Insert stores a new reading.
	Insert(ctx context.Context, reading *Reading) error

	// Latest returns the most recent reading for a city. City matching
	// is case-insensitive. Returns ErrNoReading when none exists.
	Latest(ctx context.Context, city string) (*Reading, error)

	// History returns up to limit readings for a city, newest first.
	History(ctx context.Context, city string, limit int) ([]*Reading, error)
}
