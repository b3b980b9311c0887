package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climateguard/climateguard/internal/provider/openweather"
)

func TestScheduler_RunsOnEveryTick(t *testing.T) {
	roster := []City{{Name: "Delhi", State: "Delhi", Lat: 28.6139, Lon: 77.2090}}
	f := newFixture(t, roster, &fakeProvider{})

	sched := NewScheduler(SchedulerConfig{
		Pipeline: f.pipeline,
		Logger:   zerolog.Nop(),
		Interval: time.Hour,
		Clock:    f.clock,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sched.Run(ctx)

	f.clock.BlockUntil(1) // ticker registered
	f.clock.Advance(time.Hour)
	require.Eventually(t, func() bool {
		return f.heatwaves.Count() == 1
	}, 2*time.Second, 10*time.Millisecond)

	f.clock.BlockUntil(1)
	f.clock.Advance(time.Hour)
	require.Eventually(t, func() bool {
		return f.heatwaves.Count() == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_RunOnStart(t *testing.T) {
	roster := []City{{Name: "Delhi", State: "Delhi", Lat: 28.6139, Lon: 77.2090}}
	f := newFixture(t, roster, &fakeProvider{})

	sched := NewScheduler(SchedulerConfig{
		Pipeline:   f.pipeline,
		Logger:     zerolog.Nop(),
		Interval:   time.Hour,
		RunOnStart: true,
		Clock:      f.clock,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sched.Run(ctx)

	require.Eventually(t, func() bool {
		return f.heatwaves.Count() == 1
	}, 2*time.Second, 10*time.Millisecond, "startup run should fire without a tick")
}

func TestScheduler_SkipsTickWhileRunInProgress(t *testing.T) {
	roster := []City{{Name: "Delhi", State: "Delhi", Lat: 28.6139, Lon: 77.2090}}
	release := make(chan struct{})
	entered := make(chan struct{}, 2)
	provider := &fakeProvider{
		weatherFn: func(openweather.Coordinate) (*openweather.Snapshot, error) {
			entered <- struct{}{}
			<-release
			return &openweather.Snapshot{Temperature: 30, Humidity: 50}, nil
		},
	}
	f := newFixture(t, roster, provider)

	sched := NewScheduler(SchedulerConfig{
		Pipeline: f.pipeline,
		Logger:   zerolog.Nop(),
		Interval: time.Hour,
		Clock:    f.clock,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sched.Run(ctx)

	f.clock.BlockUntil(1)
	f.clock.Advance(time.Hour)
	<-entered // first run is now blocked inside the provider

	f.clock.BlockUntil(1)
	f.clock.Advance(time.Hour) // tick lands mid-run, must be dropped

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(f.pipeline.cfg.Metrics.IngestSkipped) == 1
	}, 2*time.Second, 10*time.Millisecond)

	close(release)
	require.Eventually(t, func() bool {
		return f.heatwaves.Count() == 1
	}, 2*time.Second, 10*time.Millisecond)

	// The dropped tick never reached the provider.
	assert.Equal(t, 1, provider.weatherCalls())
}
