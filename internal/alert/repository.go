package alert

import "context"

// Repository persists alerts. The pipeline only inserts; deactivation
// is an administrative concern outside this service.
type Repository interface {
	// Insert stores a new alert.
	Insert(ctx context.Context, a *Alert) error

	// Get returns an alert by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Alert, error)

	// ActiveForCity returns alerts for a city that satisfy the active
	// predicate, most severe first then newest. City matching is
	// case-insensitive. The filter narrows by type and severity.
	ActiveForCity(ctx context.Context, city string, f Filter) ([]*Alert, error)

	// HasActiveOverlap reports whether an active alert of the same city
	// and type with severity at or above the given one already exists.
	// The ingestion pipeline uses this to suppress duplicate alerts
	// across repeated runs during a sustained event.
	HasActiveOverlap(ctx context.Context, city string, t Type, s Severity) (bool, error)

	// History returns a page of alerts for a city regardless of the
	// active predicate, newest first.
	History(ctx context.Context, city string, t Type, page Page) (*HistoryResult, error)
}
