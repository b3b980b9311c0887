// Package ingest polls the upstream weather provider for every roster
// city, persists readings, and raises threshold alerts.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/climateguard/climateguard/internal/airquality"
	"github.com/climateguard/climateguard/internal/alert"
	"github.com/climateguard/climateguard/internal/heatwave"
	"github.com/climateguard/climateguard/internal/observability"
	"github.com/climateguard/climateguard/internal/provider/openweather"
)

// Validity windows for pipeline-raised alerts.
const (
	heatwaveAlertWindow   = 24 * time.Hour
	airQualityAlertWindow = 12 * time.Hour
)

// ErrRunInProgress is returned when Run is called while a previous run
// has not finished. Ticks and manual triggers both hit this guard.
var ErrRunInProgress = errors.New("ingestion run already in progress")

// Provider supplies current conditions for a coordinate. Both calls
// fail soft from the pipeline's perspective.
type Provider interface {
	CurrentWeather(ctx context.Context, coord openweather.Coordinate) (*openweather.Snapshot, error)
	AirPollution(ctx context.Context, coord openweather.Coordinate) (*openweather.Pollutants, error)
	Name() string
}

// Publisher emits created alerts to downstream consumers. Publish
// failures never fail the run.
type Publisher interface {
	PublishAlert(ctx context.Context, a *alert.Alert) error
}

// PipelineConfig holds the pipeline's dependencies.
type PipelineConfig struct {
	Provider   Provider
	Heatwaves  heatwave.Repository
	AirQuality airquality.Repository
	Alerts     alert.Repository

	// Publisher is optional; nil disables alert publishing.
	Publisher Publisher

	Metrics *observability.Metrics
	Logger  zerolog.Logger

	// Clock defaults to the real clock.
	Clock clockwork.Clock

	// Roster defaults to DefaultRoster.
	Roster []City

	// InterCityDelay spaces out provider calls to respect upstream rate
	// limits. Zero disables the delay.
	InterCityDelay time.Duration

	// Probe checks the backing store before a run starts. A failing
	// probe short-circuits the whole run. Optional.
	Probe func(ctx context.Context) error
}

// Pipeline walks the city roster, storing readings and raising alerts.
// At most one run executes at a time.
type Pipeline struct {
	cfg     PipelineConfig
	clock   clockwork.Clock
	roster  []City
	logger  zerolog.Logger
	running atomic.Bool
}

// NewPipeline creates a pipeline from the given configuration.
func NewPipeline(cfg PipelineConfig) *Pipeline {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	roster := cfg.Roster
	if len(roster) == 0 {
		roster = DefaultRoster()
	}

	if cfg.Metrics == nil {
		cfg.Metrics = observability.NewMetricsForTesting()
	}

	return &Pipeline{
		cfg:    cfg,
		clock:  clock,
		roster: roster,
		logger: cfg.Logger.With().Str("component", "ingest").Logger(),
	}
}

// Result summarizes one completed ingestion run.
type Result struct {
	StartedAt time.Time     `json:"startedAt"`
	Duration  time.Duration `json:"duration"`
	Cities    []CityResult  `json:"cities"`
}

// CityResult is the outcome for one roster city.
type CityResult struct {
	City             string `json:"city"`
	HeatwaveStored   bool   `json:"heatwaveStored"`
	AirQualityStored bool   `json:"airQualityStored"`
	AlertsCreated    int    `json:"alertsCreated"`
	AlertsSuppressed int    `json:"alertsSuppressed"`
	Error            string `json:"error,omitempty"`
}

// Outcome classifies the city result for metrics and logs.
func (r CityResult) Outcome() string {
	switch {
	case r.HeatwaveStored && r.AirQualityStored:
		return "success"
	case r.HeatwaveStored || r.AirQualityStored:
		return "partial"
	default:
		return "error"
	}
}

// Run executes one full roster pass. It returns ErrRunInProgress when a
// previous run is still active. A city failure is isolated; the run
// continues with the next city.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if !p.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer p.running.Store(false)
	return p.run(ctx)
}

// TryStart acquires the run guard synchronously, then executes the pass
// on a new goroutine, releasing the guard when it finishes. It returns
// ErrRunInProgress without starting anything when a run is already
// active, so a caller that gets nil back knows its run was the one
// admitted. done, if non-nil, receives the run's outcome.
func (p *Pipeline) TryStart(ctx context.Context, done func(*Result, error)) error {
	if !p.running.CompareAndSwap(false, true) {
		return ErrRunInProgress
	}
	go func() {
		defer p.running.Store(false)
		result, err := p.run(ctx)
		if done != nil {
			done(result, err)
		}
	}()
	return nil
}

// run executes the roster pass. The caller must hold the run guard.
func (p *Pipeline) run(ctx context.Context) (*Result, error) {
	p.cfg.Metrics.IngestRunning.Set(1)
	defer p.cfg.Metrics.IngestRunning.Set(0)

	if p.cfg.Probe != nil {
		if err := p.cfg.Probe(ctx); err != nil {
			return nil, fmt.Errorf("store probe failed: %w", err)
		}
	}

	start := p.clock.Now()
	p.logger.Info().Int("cities", len(p.roster)).Msg("starting ingestion run")

	result := &Result{StartedAt: start}
	for i, city := range p.roster {
		cityResult := p.processCity(ctx, city)
		result.Cities = append(result.Cities, cityResult)
		p.cfg.Metrics.CitiesProcessed.WithLabelValues(cityResult.Outcome()).Inc()

		if ctx.Err() != nil {
			break
		}
		if p.cfg.InterCityDelay > 0 && i < len(p.roster)-1 {
			select {
			case <-ctx.Done():
			case <-p.clock.After(p.cfg.InterCityDelay):
			}
		}
	}

	result.Duration = p.clock.Since(start)
	p.cfg.Metrics.IngestRuns.Inc()
	p.cfg.Metrics.IngestDuration.Observe(result.Duration.Seconds())
	p.logger.Info().
		Dur("duration", result.Duration).
		Int("cities", len(result.Cities)).
		Msg("ingestion run completed")

	return result, ctx.Err()
}

// Running reports whether a run is currently active.
func (p *Pipeline) Running() bool {
	return p.running.Load()
}

func (p *Pipeline) processCity(ctx context.Context, city City) CityResult {
	res := CityResult{City: city.Name}
	coord := openweather.Coordinate{Lat: city.Lat, Lon: city.Lon}
	logger := p.logger.With().Str("city", city.Name).Logger()

	var firstErr error
	record := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	snap, err := p.cfg.Provider.CurrentWeather(ctx, coord)
	if err != nil {
		p.cfg.Metrics.ProviderCalls.WithLabelValues("weather", "error").Inc()
		logger.Warn().Err(err).Msg("weather fetch failed")
		record(err)
	} else {
		p.cfg.Metrics.ProviderCalls.WithLabelValues("weather", "success").Inc()
		if err := p.storeHeatwave(ctx, city, snap, &res); err != nil {
			logger.Error().Err(err).Msg("storing heatwave reading failed")
			record(err)
		} else {
			res.HeatwaveStored = true
		}
	}

	pollutants, err := p.cfg.Provider.AirPollution(ctx, coord)
	if err != nil {
		p.cfg.Metrics.ProviderCalls.WithLabelValues("pollution", "error").Inc()
		logger.Warn().Err(err).Msg("pollution fetch failed")
		record(err)
	} else {
		p.cfg.Metrics.ProviderCalls.WithLabelValues("pollution", "success").Inc()
		if err := p.storeAirQuality(ctx, city, pollutants, &res); err != nil {
			logger.Error().Err(err).Msg("storing air quality reading failed")
			record(err)
		} else {
			res.AirQualityStored = true
		}
	}

	if firstErr != nil {
		res.Error = firstErr.Error()
	}
	return res
}

func (p *Pipeline) storeHeatwave(ctx context.Context, city City, snap *openweather.Snapshot, res *CityResult) error {
	now := p.clock.Now()
	heatIndex := heatwave.HeatIndex(snap.Temperature, snap.Humidity)
	level := heatwave.AlertLevelFor(snap.Temperature, heatIndex)

	reading := &heatwave.Reading{
		ID:    uuid.NewString(),
		City:  city.Name,
		State: city.State,
		Lat:   city.Lat,
		Lon:   city.Lon,
		Temperature: heatwave.Temperature{
			Current:   snap.Temperature,
			FeelsLike: snap.FeelsLike,
			Min:       snap.TempMin,
			Max:       snap.TempMax,
		},
		HeatIndex:  heatIndex,
		Humidity:   snap.Humidity,
		AlertLevel: level,
		Source:     p.cfg.Provider.Name(),
		RecordedAt: now,
	}
	if err := p.cfg.Heatwaves.Insert(ctx, reading); err != nil {
		return err
	}

	if level == heatwave.LevelRed || level == heatwave.LevelOrange {
		severity := alert.SeverityWarning
		title := fmt.Sprintf("Heatwave Warning - %s", city.Name)
		if level == heatwave.LevelRed {
			severity = alert.SeverityEmergency
			title = fmt.Sprintf("Heatwave Emergency - %s", city.Name)
		}
		p.raiseAlert(ctx, res, &alert.Alert{
			Type:     alert.TypeHeatwave,
			Severity: severity,
			Title:    title,
			Message:  fmt.Sprintf("Temperature: %.1f°C, Heat Index: %.1f°C", snap.Temperature, heatIndex),
			City:     city.Name,
			State:    city.State,
			Metadata: map[string]float64{"temperature": snap.Temperature},
		}, heatwaveAlertWindow)
	}
	return nil
}

func (p *Pipeline) storeAirQuality(ctx context.Context, city City, raw *openweather.Pollutants, res *CityResult) error {
	now := p.clock.Now()
	pollutants := airquality.Pollutants{
		PM25: raw.PM25,
		PM10: raw.PM10,
		NO2:  raw.NO2,
		SO2:  raw.SO2,
		CO:   raw.CO,
		O3:   raw.O3,
		NH3:  raw.NH3,
	}
	aqi := airquality.FromPollutants(pollutants)

	reading := &airquality.Reading{
		ID:         uuid.NewString(),
		City:       city.Name,
		State:      city.State,
		Lat:        city.Lat,
		Lon:        city.Lon,
		AQI:        aqi,
		Pollutants: pollutants,
		Source:     p.cfg.Provider.Name(),
		RecordedAt: now,
	}
	if err := p.cfg.AirQuality.Insert(ctx, reading); err != nil {
		return err
	}

	var severity alert.Severity
	switch aqi.Category {
	case airquality.CategorySevere:
		severity = alert.SeverityEmergency
	case airquality.CategoryVeryPoor:
		severity = alert.SeverityCritical
	case airquality.CategoryPoor:
		severity = alert.SeverityWarning
	default:
		return nil
	}

	p.raiseAlert(ctx, res, &alert.Alert{
		Type:     alert.TypeAirQuality,
		Severity: severity,
		Title:    fmt.Sprintf("Air Quality Alert - %s", city.Name),
		Message:  fmt.Sprintf("AQI: %d (%s)", aqi.Value, categoryLabel(aqi.Category)),
		City:     city.Name,
		State:    city.State,
		Metadata: map[string]float64{"aqi": float64(aqi.Value)},
	}, airQualityAlertWindow)
	return nil
}

// raiseAlert inserts an alert unless an active alert of the same type
// and city at the same or higher severity already exists. Alert
// failures are logged but never fail the reading path.
func (p *Pipeline) raiseAlert(ctx context.Context, res *CityResult, a *alert.Alert, window time.Duration) {
	logger := p.logger.With().
		Str("city", a.City).
		Str("type", string(a.Type)).
		Str("severity", string(a.Severity)).
		Logger()

	exists, err := p.cfg.Alerts.HasActiveOverlap(ctx, a.City, a.Type, a.Severity)
	if err != nil {
		logger.Error().Err(err).Msg("alert overlap check failed")
		return
	}
	if exists {
		res.AlertsSuppressed++
		p.cfg.Metrics.AlertsSuppressed.Inc()
		logger.Debug().Msg("alert suppressed, overlapping active alert exists")
		return
	}

	now := p.clock.Now()
	until := now.Add(window)
	a.ID = uuid.NewString()
	a.ValidFrom = now
	a.ValidUntil = &until
	a.IsActive = true
	a.IssuedBy = "system"
	a.CreatedAt = now

	if err := p.cfg.Alerts.Insert(ctx, a); err != nil {
		logger.Error().Err(err).Msg("alert insert failed")
		return
	}
	res.AlertsCreated++
	p.cfg.Metrics.AlertsCreated.WithLabelValues(string(a.Type), string(a.Severity)).Inc()
	logger.Info().Str("alert_id", a.ID).Msg("alert created")

	if p.cfg.Publisher != nil {
		if err := p.cfg.Publisher.PublishAlert(ctx, a); err != nil {
			logger.Warn().Err(err).Msg("alert publish failed")
		}
	}
}

func categoryLabel(c airquality.Category) string {
	if c == airquality.CategoryVeryPoor {
		return "very poor"
	}
	return string(c)
}
