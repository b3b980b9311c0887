package alert_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climateguard/climateguard/internal/alert"
)

func TestAlert_ActiveAt(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Second)
	future := now.Add(time.Hour)

	tests := []struct {
		name  string
		alert alert.Alert
		want  bool
	}{
		{"expired", alert.Alert{IsActive: true, ValidUntil: &past}, false},
		{"no expiry", alert.Alert{IsActive: true, ValidUntil: nil}, true},
		{"inactive despite window", alert.Alert{IsActive: false, ValidUntil: &future}, false},
		{"active within window", alert.Alert{IsActive: true, ValidUntil: &future}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.alert.ActiveAt(now))
		})
	}
}

func TestSeverity_Rank(t *testing.T) {
	assert.Less(t, alert.SeverityInfo.Rank(), alert.SeverityWarning.Rank())
	assert.Less(t, alert.SeverityWarning.Rank(), alert.SeverityCritical.Rank())
	assert.Less(t, alert.SeverityCritical.Rank(), alert.SeverityEmergency.Rank())
	assert.Equal(t, -1, alert.Severity("bogus").Rank())
}

func newAlert(city string, t alert.Type, s alert.Severity, until *time.Time, active bool) *alert.Alert {
	return &alert.Alert{
		ID:         city + string(t) + string(s) + time.Now().String(),
		Type:       t,
		Severity:   s,
		Title:      "test",
		Message:    "test",
		City:       city,
		ValidFrom:  time.Now(),
		ValidUntil: until,
		IsActive:   active,
		IssuedBy:   "system",
		CreatedAt:  time.Now(),
	}
}

func TestMemoryRepository_ActiveForCityAppliesPredicate(t *testing.T) {
	repo := alert.NewMemoryRepository()
	ctx := context.Background()

	expired := time.Now().Add(-time.Second)
	future := time.Now().Add(time.Hour)

	require.NoError(t, repo.Insert(ctx, newAlert("Delhi", alert.TypeHeatwave, alert.SeverityWarning, &expired, true)))
	require.NoError(t, repo.Insert(ctx, newAlert("Delhi", alert.TypeHeatwave, alert.SeverityEmergency, nil, true)))
	require.NoError(t, repo.Insert(ctx, newAlert("Delhi", alert.TypeAirQuality, alert.SeverityWarning, &future, false)))
	require.NoError(t, repo.Insert(ctx, newAlert("Delhi", alert.TypeAirQuality, alert.SeverityCritical, &future, true)))

	active, err := repo.ActiveForCity(ctx, "delhi", alert.Filter{})
	require.NoError(t, err)
	require.Len(t, active, 2)

	// Most severe first.
	assert.Equal(t, alert.SeverityEmergency, active[0].Severity)
	assert.Equal(t, alert.SeverityCritical, active[1].Severity)
}

func TestMemoryRepository_ActiveForCityFilters(t *testing.T) {
	repo := alert.NewMemoryRepository()
	ctx := context.Background()
	future := time.Now().Add(time.Hour)

	require.NoError(t, repo.Insert(ctx, newAlert("Delhi", alert.TypeHeatwave, alert.SeverityWarning, &future, true)))
	require.NoError(t, repo.Insert(ctx, newAlert("Delhi", alert.TypeAirQuality, alert.SeverityWarning, &future, true)))

	onlyHeat, err := repo.ActiveForCity(ctx, "Delhi", alert.Filter{Type: alert.TypeHeatwave})
	require.NoError(t, err)
	require.Len(t, onlyHeat, 1)
	assert.Equal(t, alert.TypeHeatwave, onlyHeat[0].Type)
}

func TestMemoryRepository_HasActiveOverlap(t *testing.T) {
	repo := alert.NewMemoryRepository()
	ctx := context.Background()
	future := time.Now().Add(time.Hour)

	require.NoError(t, repo.Insert(ctx, newAlert("Delhi", alert.TypeHeatwave, alert.SeverityEmergency, &future, true)))

	// Same or lower severity overlaps.
	got, err := repo.HasActiveOverlap(ctx, "Delhi", alert.TypeHeatwave, alert.SeverityWarning)
	require.NoError(t, err)
	assert.True(t, got)

	// Different type does not.
	got, err = repo.HasActiveOverlap(ctx, "Delhi", alert.TypeAirQuality, alert.SeverityWarning)
	require.NoError(t, err)
	assert.False(t, got)

	// Different city does not.
	got, err = repo.HasActiveOverlap(ctx, "Mumbai", alert.TypeHeatwave, alert.SeverityWarning)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestMemoryRepository_HistoryPagination(t *testing.T) {
	repo := alert.NewMemoryRepository()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		a := newAlert("Delhi", alert.TypeHeatwave, alert.SeverityWarning, nil, true)
		a.CreatedAt = time.Date(2026, 5, 1, i, 0, 0, 0, time.UTC)
		a.ID = a.CreatedAt.String()
		require.NoError(t, repo.Insert(ctx, a))
	}

	page, err := repo.History(ctx, "Delhi", "", alert.Page{Limit: 2, Skip: 0})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Len(t, page.Alerts, 2)
	assert.True(t, page.HasMore)

	last, err := repo.History(ctx, "Delhi", "", alert.Page{Limit: 2, Skip: 4})
	require.NoError(t, err)
	assert.Len(t, last.Alerts, 1)
	assert.False(t, last.HasMore)
}
