package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service handles report submission and the verification lifecycle.
type Service struct {
	reports Repository
	logger  zerolog.Logger
}

// NewService creates a new report service.
func NewService(reports Repository, logger zerolog.Logger) *Service {
	return &Service{
		reports: reports,
		logger:  logger.With().Str("component", "report").Logger(),
	}
}

// Submit validates and stores a new report. New reports always start
// pending.
func (s *Service) Submit(ctx context.Context, userID string, in Input) (*Report, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	rep := &Report{
		ID:          uuid.NewString(),
		UserID:      userID,
		Type:        in.Type,
		Title:       in.Title,
		Description: in.Description,
		City:        in.City,
		State:       in.State,
		Lat:         in.Lat,
		Lon:         in.Lon,
		Severity:    in.Severity,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.reports.Insert(ctx, rep); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("report_id", rep.ID).
		Str("type", string(rep.Type)).
		Str("city", rep.City).
		Msg("report submitted")
	return rep, nil
}

// Get returns a report by ID.
func (s *Service) Get(ctx context.Context, id string) (*Report, error) {
	return s.reports.Get(ctx, id)
}

// ListByCity returns a page of reports for a city.
func (s *Service) ListByCity(ctx context.Context, city string, f Filter) (*ListResult, error) {
	return s.reports.ListByCity(ctx, city, f)
}

// ListByUser returns a page of the user's own reports.
func (s *Service) ListByUser(ctx context.Context, userID string, f Filter) (*ListResult, error) {
	return s.reports.ListByUser(ctx, userID, f)
}

// UpdateStatus moves a report along its lifecycle. Only transitions
// allowed by the status machine are accepted.
func (s *Service) UpdateStatus(ctx context.Context, id string, next Status) (*Report, error) {
	rep, err := s.reports.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !rep.Status.CanTransition(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, rep.Status, next)
	}

	if err := s.reports.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	rep.Status = next

	s.logger.Info().
		Str("report_id", id).
		Str("status", string(next)).
		Msg("report status updated")
	return rep, nil
}
