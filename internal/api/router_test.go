package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climateguard/climateguard/internal/airquality"
	"github.com/climateguard/climateguard/internal/alert"
	"github.com/climateguard/climateguard/internal/api"
	"github.com/climateguard/climateguard/internal/auth"
	"github.com/climateguard/climateguard/internal/flood"
	"github.com/climateguard/climateguard/internal/heatwave"
	"github.com/climateguard/climateguard/internal/ingest"
	"github.com/climateguard/climateguard/internal/observability"
	"github.com/climateguard/climateguard/internal/provider/openweather"
	"github.com/climateguard/climateguard/internal/report"
	"github.com/climateguard/climateguard/internal/waterquality"
)

const testSigningKey = "test-secret-key-for-testing-only"

// testStores groups the in-memory repositories behind a router so
// tests can seed data directly.
type testStores struct {
	heatwaves    *heatwave.MemoryRepository
	airQuality   *airquality.MemoryRepository
	floods       *flood.MemoryRepository
	waterQuality *waterquality.MemoryRepository
	alerts       *alert.MemoryRepository
}

func testAuthService() *auth.Service {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SigningKey: testSigningKey,
		Issuer:     "https://api.climateguard.in",
	})
	return auth.NewService(auth.NewMemoryRepository(), jwtService, zerolog.New(io.Discard))
}

func newTestRouter(probe func(ctx context.Context) error) (http.Handler, *testStores) {
	logger := zerolog.New(io.Discard)
	stores := &testStores{
		heatwaves:    heatwave.NewMemoryRepository(),
		airQuality:   airquality.NewMemoryRepository(),
		floods:       flood.NewMemoryRepository(),
		waterQuality: waterquality.NewMemoryRepository(),
		alerts:       alert.NewMemoryRepository(),
	}

	router := api.NewRouter(api.RouterConfig{
		Version:       "test",
		Logger:        logger,
		AuthService:   testAuthService(),
		ReportService: report.NewService(report.NewMemoryRepository(), logger),
		Heatwaves:     stores.heatwaves,
		AirQuality:    stores.airQuality,
		Floods:        stores.floods,
		WaterQuality:  stores.waterQuality,
		Alerts:        stores.alerts,
		Probe:         probe,
	})
	return router, stores
}

// registerTestUser registers a citizen through the API and returns the
// session token.
func registerTestUser(t *testing.T, router http.Handler) string {
	t.Helper()

	body, _ := json.Marshal(auth.RegisterInput{
		Name:     "Asha Verma",
		Email:    "asha@example.in",
		Password: "monsoon-season",
		City:     "Pune",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var session auth.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)
	return session.Token
}

// adminToken mints a token for an admin user. The auth middleware
// trusts claims, so the user does not need to exist in the store.
func adminToken(t *testing.T) string {
	t.Helper()

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SigningKey: testSigningKey,
		Issuer:     "https://api.climateguard.in",
	})
	token, _, err := jwtService.Generate(&auth.User{
		ID:   uuid.NewString(),
		Role: auth.RoleAdmin,
	})
	require.NoError(t, err)
	return token
}

func TestRouter_Health(t *testing.T) {
	router, _ := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ops/health", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	var health struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "ok", health.Checks["database"])
}

func TestRouter_HealthDegraded(t *testing.T) {
	router, _ := newTestRouter(func(context.Context) error {
		return errors.New("connection refused")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ops/health", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var health struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "degraded", health.Status)
	assert.Equal(t, "unreachable", health.Checks["database"])
}

func TestRouter_Metrics(t *testing.T) {
	router, _ := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_HeatwaveCurrent(t *testing.T) {
	router, stores := newTestRouter(nil)

	err := stores.heatwaves.Insert(context.Background(), &heatwave.Reading{
		ID:          uuid.NewString(),
		City:        "Delhi",
		State:       "Delhi",
		Temperature: heatwave.Temperature{Current: 41.5, FeelsLike: 45.0},
		HeatIndex:   45.0,
		Humidity:    30,
		AlertLevel:  heatwave.LevelOrange,
		Source:      "OpenWeather",
		RecordedAt:  time.Now(),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/heatwave/current/Delhi", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var reading heatwave.Reading
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reading))
	assert.Equal(t, "Delhi", reading.City)
	assert.Equal(t, heatwave.LevelOrange, reading.AlertLevel)
}

func TestRouter_HeatwaveCurrentUnknownCity(t *testing.T) {
	router, _ := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/heatwave/current/Atlantis", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
}

func TestRouter_AlertLevelsTable(t *testing.T) {
	router, _ := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/heatwave/alert-levels", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "red")
	assert.Contains(t, w.Body.String(), "orange")
}

func TestRouter_WaterQualityGeneratesOnMiss(t *testing.T) {
	router, _ := newTestRouter(nil)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/v1/water-quality/current/Chennai", http.NoBody))
	require.Equal(t, http.StatusOK, first.Code)

	var a waterquality.Reading
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &a))
	assert.Equal(t, "Chennai", a.City)
	assert.NotZero(t, a.WQI)

	// The generated reading is persisted, so a second request serves
	// the same one.
	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/v1/water-quality/current/Chennai", http.NoBody))
	require.Equal(t, http.StatusOK, second.Code)

	var b waterquality.Reading
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &b))
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, a.WQI, b.WQI)
}

func TestRouter_GuidelinesPayloads(t *testing.T) {
	router, _ := newTestRouter(nil)

	heat := httptest.NewRecorder()
	router.ServeHTTP(heat, httptest.NewRequest(http.MethodGet, "/api/v1/heatwave/guidelines", http.NoBody))
	assert.Equal(t, http.StatusOK, heat.Code)
	assert.Contains(t, heat.Body.String(), "Drink plenty of water even if not thirsty")
	assert.Contains(t, heat.Body.String(), "emergencySteps")

	fl := httptest.NewRecorder()
	router.ServeHTTP(fl, httptest.NewRequest(http.MethodGet, "/api/v1/flood/guidelines", http.NoBody))
	assert.Equal(t, http.StatusOK, fl.Code)
	assert.Contains(t, fl.Body.String(), "Do not walk or drive through floodwater")
	assert.Contains(t, fl.Body.String(), "beforeFlood")
}

func TestRouter_DashboardSummary(t *testing.T) {
	router, stores := newTestRouter(nil)
	ctx := context.Background()

	require.NoError(t, stores.heatwaves.Insert(ctx, &heatwave.Reading{
		ID:          uuid.NewString(),
		City:        "Delhi",
		Temperature: heatwave.Temperature{Current: 42.0},
		HeatIndex:   47.5,
		AlertLevel:  heatwave.LevelOrange,
		RecordedAt:  time.Now(),
	}))
	require.NoError(t, stores.airQuality.Insert(ctx, &airquality.Reading{
		ID:         uuid.NewString(),
		City:       "Delhi",
		AQI:        airquality.AQI{Value: 320, Category: airquality.CategoryVeryPoor},
		RecordedAt: time.Now(),
	}))
	until := time.Now().Add(24 * time.Hour)
	require.NoError(t, stores.alerts.Insert(ctx, &alert.Alert{
		ID:         uuid.NewString(),
		Type:       alert.TypeHeatwave,
		Severity:   alert.SeverityWarning,
		City:       "Delhi",
		ValidFrom:  time.Now(),
		ValidUntil: &until,
		IsActive:   true,
		CreatedAt:  time.Now(),
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/Delhi", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		City    string `json:"city"`
		Summary struct {
			Heatwave struct {
				Status      string   `json:"status"`
				Temperature *float64 `json:"temperature"`
			} `json:"heatwave"`
			Flood struct {
				RiskLevel string `json:"riskLevel"`
			} `json:"flood"`
			AirQuality struct {
				AQI      *int   `json:"aqi"`
				Category string `json:"category"`
			} `json:"airQuality"`
			WaterQuality struct {
				Category string `json:"category"`
			} `json:"waterQuality"`
		} `json:"summary"`
		ActiveAlerts int `json:"activeAlerts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "Delhi", body.City)
	assert.Equal(t, "orange", body.Summary.Heatwave.Status)
	require.NotNil(t, body.Summary.Heatwave.Temperature)
	assert.Equal(t, 42.0, *body.Summary.Heatwave.Temperature)
	require.NotNil(t, body.Summary.AirQuality.AQI)
	assert.Equal(t, 320, *body.Summary.AirQuality.AQI)
	assert.Equal(t, "very_poor", body.Summary.AirQuality.Category)
	// Domains with no stored data report unknown instead of failing.
	assert.Equal(t, "unknown", body.Summary.Flood.RiskLevel)
	assert.Equal(t, "unknown", body.Summary.WaterQuality.Category)
	assert.Equal(t, 1, body.ActiveAlerts)
}

func TestRouter_DashboardSummaryEmptyCity(t *testing.T) {
	router, _ := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/Atlantis", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"activeAlerts":0`)
	assert.Contains(t, w.Body.String(), "unknown")
}

func TestRouter_ActiveAlerts(t *testing.T) {
	router, stores := newTestRouter(nil)

	until := time.Now().Add(12 * time.Hour)
	err := stores.alerts.Insert(context.Background(), &alert.Alert{
		ID:         uuid.NewString(),
		Type:       alert.TypeHeatwave,
		Severity:   alert.SeverityEmergency,
		Title:      "Heatwave Emergency - Delhi",
		Message:    "Temperature: 46.0°C, Heat Index: 52.3°C",
		City:       "Delhi",
		ValidFrom:  time.Now(),
		ValidUntil: &until,
		IsActive:   true,
		IssuedBy:   "system",
		CreatedAt:  time.Now(),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/active/Delhi", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Alerts []*alert.Alert `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Alerts, 1)
	assert.Equal(t, alert.SeverityEmergency, body.Alerts[0].Severity)
}

func TestRouter_AuthFlow(t *testing.T) {
	router, _ := newTestRouter(nil)

	token := registerTestUser(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var user auth.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "asha@example.in", user.Email)
	assert.Equal(t, auth.RoleCitizen, user.Role)
}

func TestRouter_MeRequiresToken(t *testing.T) {
	router, _ := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
}

func TestRouter_SubmitReport(t *testing.T) {
	router, _ := newTestRouter(nil)
	token := registerTestUser(t, router)

	body, _ := json.Marshal(report.Input{
		Type:        report.TypeWaterlogging,
		Title:       "Waterlogged underpass",
		Description: "Knee-deep water on the station road underpass.",
		City:        "Mumbai",
		Severity:    report.SeverityHigh,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, w.Header().Get("Location"))
}

func TestRouter_SubmitReportRequiresAuth(t *testing.T) {
	router, _ := newTestRouter(nil)

	body, _ := json.Marshal(report.Input{
		Type:  report.TypeWaterlogging,
		Title: "Waterlogged underpass",
		City:  "Mumbai",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_FloodUpdateAdminOnly(t *testing.T) {
	router, _ := newTestRouter(nil)
	citizen := registerTestUser(t, router)

	body, _ := json.Marshal(map[string]interface{}{
		"city":       "Kolkata",
		"state":      "West Bengal",
		"riskLevel":  "high",
		"rainfallMm": 140.0,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/flood/update", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+citizen)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/flood/update", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	current := httptest.NewRecorder()
	router.ServeHTTP(current, httptest.NewRequest(http.MethodGet, "/api/v1/flood/current/Kolkata", http.NoBody))
	assert.Equal(t, http.StatusOK, current.Code)
}

// blockingProvider holds every weather call until released, keeping an
// ingestion run in flight for as long as a test needs.
type blockingProvider struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (p *blockingProvider) CurrentWeather(context.Context, openweather.Coordinate) (*openweather.Snapshot, error) {
	p.once.Do(func() { close(p.entered) })
	<-p.release
	return &openweather.Snapshot{Temperature: 30, Humidity: 50}, nil
}

func (p *blockingProvider) AirPollution(context.Context, openweather.Coordinate) (*openweather.Pollutants, error) {
	return &openweather.Pollutants{PM25: 20, PM10: 35}, nil
}

func (p *blockingProvider) Name() string { return "test-provider" }

func TestRouter_IngestTriggerConflictsWhileRunning(t *testing.T) {
	provider := &blockingProvider{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	pipeline := ingest.NewPipeline(ingest.PipelineConfig{
		Provider:   provider,
		Heatwaves:  heatwave.NewMemoryRepository(),
		AirQuality: airquality.NewMemoryRepository(),
		Alerts:     alert.NewMemoryRepository(),
		Metrics:    observability.NewMetricsForTesting(),
		Logger:     zerolog.Nop(),
		Roster:     []ingest.City{{Name: "Delhi", State: "Delhi", Lat: 28.6139, Lon: 77.2090}},
	})

	logger := zerolog.New(io.Discard)
	router := api.NewRouter(api.RouterConfig{
		Version:       "test",
		Logger:        logger,
		AuthService:   testAuthService(),
		ReportService: report.NewService(report.NewMemoryRepository(), logger),
		Heatwaves:     heatwave.NewMemoryRepository(),
		AirQuality:    airquality.NewMemoryRepository(),
		Floods:        flood.NewMemoryRepository(),
		WaterQuality:  waterquality.NewMemoryRepository(),
		Alerts:        alert.NewMemoryRepository(),
		Pipeline:      pipeline,
	})
	defer close(provider.release)

	token := adminToken(t)

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ops/ingest", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(first, req)
	assert.Equal(t, http.StatusAccepted, first.Code)

	// The run guard is held from the moment the 202 is written, so a
	// second trigger conflicts even before the run reaches a provider.
	second := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/ops/ingest", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(second, req)
	assert.Equal(t, http.StatusConflict, second.Code)

	<-provider.entered
}

func TestRouter_IngestNotConfigured(t *testing.T) {
	router, _ := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ops/ingest", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
