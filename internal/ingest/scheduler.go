package ingest

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// SchedulerConfig holds configuration for the periodic runner.
type SchedulerConfig struct {
	Pipeline *Pipeline
	Logger   zerolog.Logger

	// Interval between runs. Defaults to one hour.
	Interval time.Duration

	// RunOnStart triggers an immediate run before the first tick.
	RunOnStart bool

	// Clock defaults to the real clock.
	Clock clockwork.Clock
}

// Scheduler triggers pipeline runs on a fixed interval. A tick that
// lands while a run is still in progress is skipped, never queued.
type Scheduler struct {
	pipeline   *Pipeline
	interval   time.Duration
	runOnStart bool
	clock      clockwork.Clock
	logger     zerolog.Logger
}

// NewScheduler creates a scheduler from the given configuration.
func NewScheduler(cfg SchedulerConfig) *Scheduler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Hour
	}

	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Scheduler{
		pipeline:   cfg.Pipeline,
		interval:   interval,
		runOnStart: cfg.RunOnStart,
		clock:      clock,
		logger:     cfg.Logger.With().Str("component", "scheduler").Logger(),
	}
}

// Run blocks until the context is cancelled, triggering pipeline runs
// on the configured interval. Each run executes in a goroutine so a
// slow run never delays the ticker; overlapping ticks are dropped by
// the pipeline's run guard.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info().
		Dur("interval", s.interval).
		Bool("run_on_start", s.runOnStart).
		Msg("scheduler started")

	if s.runOnStart {
		go s.trigger(ctx)
	}

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("scheduler stopped")
			return
		case <-ticker.Chan():
			go s.trigger(ctx)
		}
	}
}

func (s *Scheduler) trigger(ctx context.Context) {
	_, err := s.pipeline.Run(ctx)
	switch {
	case errors.Is(err, ErrRunInProgress):
		s.pipeline.cfg.Metrics.IngestSkipped.Inc()
		s.logger.Warn().Msg("tick skipped, previous run still in progress")
	case err != nil && !errors.Is(err, context.Canceled):
		s.logger.Error().Err(err).Msg("scheduled run failed")
	}
}
