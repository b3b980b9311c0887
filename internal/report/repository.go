package report

import "context"

// Repository persists reports.
type Repository interface {
	// Insert stores a new report.
	Insert(ctx context.Context, r *Report) error

	// Get returns a report by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Report, error)

	// ListByCity returns a page of reports for a city, newest first.
	// City matching is case-insensitive.
	ListByCity(ctx context.Context, city string, f Filter) (*ListResult, error)

	// ListByUser returns a page of reports submitted by a user, newest
	// first.
	ListByUser(ctx context.Context, userID string, f Filter) (*ListResult, error)

	// UpdateStatus moves a report to a new status.
	UpdateStatus(ctx context.Context, id string, status Status) error
}
