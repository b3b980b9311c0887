package heatwave_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climateguard/climateguard/internal/heatwave"
)

func newReading(city string, recordedAt time.Time, temp float64) *heatwave.Reading {
	return &heatwave.Reading{
		ID:          city + recordedAt.String(),
		City:        city,
		State:       "Delhi",
		Temperature: heatwave.Temperature{Current: temp},
		AlertLevel:  heatwave.LevelGreen,
		Source:      "OpenWeather",
		RecordedAt:  recordedAt,
	}
}

func TestMemoryRepository_LatestPicksNewestRecordedAt(t *testing.T) {
	repo := heatwave.NewMemoryRepository()
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	// Insert out of chronological order; recorded_at must decide.
	require.NoError(t, repo.Insert(ctx, newReading("Delhi", base.Add(2*time.Hour), 41)))
	require.NoError(t, repo.Insert(ctx, newReading("Delhi", base, 39)))
	require.NoError(t, repo.Insert(ctx, newReading("Delhi", base.Add(time.Hour), 40)))

	latest, err := repo.Latest(ctx, "Delhi")
	require.NoError(t, err)
	assert.Equal(t, 41.0, latest.Temperature.Current)
	assert.Equal(t, base.Add(2*time.Hour), latest.RecordedAt)
}

func TestMemoryRepository_LatestIsCaseInsensitive(t *testing.T) {
	repo := heatwave.NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, newReading("Delhi", time.Now(), 35)))

	latest, err := repo.Latest(ctx, "delhi")
	require.NoError(t, err)
	assert.Equal(t, "Delhi", latest.City)
}

func TestMemoryRepository_LatestUnknownCity(t *testing.T) {
	repo := heatwave.NewMemoryRepository()

	_, err := repo.Latest(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, heatwave.ErrNoReading)
}

func TestMemoryRepository_HistoryNewestFirst(t *testing.T) {
	repo := heatwave.NewMemoryRepository()
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Insert(ctx, newReading("Mumbai", base.Add(time.Duration(i)*time.Hour), float64(30+i))))
	}

	history, err := repo.History(ctx, "Mumbai", 3)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, 34.0, history[0].Temperature.Current)
	assert.Equal(t, 33.0, history[1].Temperature.Current)
	assert.Equal(t, 32.0, history[2].Temperature.Current)
}
