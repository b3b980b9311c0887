// Package api provides the HTTP API for ClimateGuard.
package api

import (
	"context"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/climateguard/climateguard/internal/airquality"
	"github.com/climateguard/climateguard/internal/alert"
	"github.com/climateguard/climateguard/internal/api/handler"
	"github.com/climateguard/climateguard/internal/api/middleware"
	"github.com/climateguard/climateguard/internal/auth"
	"github.com/climateguard/climateguard/internal/flood"
	"github.com/climateguard/climateguard/internal/heatwave"
	"github.com/climateguard/climateguard/internal/ingest"
	"github.com/climateguard/climateguard/internal/report"
	"github.com/climateguard/climateguard/internal/waterquality"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version       string
	Logger        zerolog.Logger
	ServiceName   string
	AuthService   *auth.Service
	ReportService *report.Service
	Heatwaves     heatwave.Repository
	AirQuality    airquality.Repository
	Floods        flood.Repository
	WaterQuality  waterquality.Repository
	Alerts        alert.Repository
	Pipeline      *ingest.Pipeline
	Probe         func(ctx context.Context) error
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "climateguard-api"
	}

	// Global middleware - order matters
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.Probe, cfg.Pipeline, cfg.Logger)
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	heatwaveHandler := handler.NewHeatwaveHandler(cfg.Heatwaves)
	airQualityHandler := handler.NewAirQualityHandler(cfg.AirQuality)
	floodHandler := handler.NewFloodHandler(cfg.Floods)
	waterQualityHandler := handler.NewWaterQualityHandler(cfg.WaterQuality, cfg.Logger)
	alertHandler := handler.NewAlertHandler(cfg.Alerts)
	reportHandler := handler.NewReportHandler(cfg.ReportService)
	dashboardHandler := handler.NewDashboardHandler(cfg.Heatwaves, cfg.AirQuality, cfg.Floods, cfg.WaterQuality, cfg.Alerts)

	authMiddleware := middleware.Auth(cfg.AuthService)
	adminOnly := middleware.RequireRole(auth.RoleAdmin)

	// Rate limit middleware for different endpoint categories
	authRateLimit := middleware.RateLimitByIP(middleware.AuthRateLimit)         // 10 req/min
	writeRateLimit := middleware.RateLimitByUser(middleware.WriteRateLimit)     // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit) // 100 req/min

	// Prometheus scrape endpoint
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Auth endpoints (public) - strict rate limiting
		r.Route("/auth", func(r chi.Router) {
			r.With(authRateLimit).Post("/register", authHandler.Register)
			r.With(authRateLimit).Post("/login", authHandler.Login)
			// Profile endpoints require authentication
			r.With(authMiddleware).Get("/me", authHandler.Me)
			r.With(authMiddleware).Put("/profile", authHandler.UpdateProfile)
		})

		// Heatwave endpoints (public)
		r.Route("/heatwave", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/current/{city}", heatwaveHandler.Current)
			r.Get("/history/{city}", heatwaveHandler.History)
			r.Get("/alert-levels", heatwaveHandler.AlertLevels)
			r.Get("/guidelines", heatwaveHandler.Guidelines)
		})

		// Air quality endpoints (public)
		r.Route("/air-quality", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/current/{city}", airQualityHandler.Current)
			r.Get("/pollutants/{city}", airQualityHandler.Pollutants)
			r.Get("/history/{city}", airQualityHandler.History)
			r.Get("/categories", airQualityHandler.Categories)
		})

		// Flood endpoints - updates are admin-only
		r.Route("/flood", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/current/{city}", floodHandler.Current)
			r.Get("/guidelines", floodHandler.Guidelines)
			r.With(authMiddleware, adminOnly).Post("/update", floodHandler.Update)
		})

		// Water quality endpoints (public)
		r.Route("/water-quality", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/current/{city}", waterQualityHandler.Current)
			r.Get("/standards", waterQualityHandler.Standards)
		})

		// Alert endpoints (public)
		r.Route("/alerts", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/active/{city}", alertHandler.Active)
			r.Get("/history/{city}", alertHandler.History)
			r.Get("/summary/{city}", alertHandler.Summary)
			r.Get("/{id}", alertHandler.Get)
		})

		// Per-city dashboard overview (public)
		r.With(standardRateLimit).Get("/dashboard/{city}", dashboardHandler.Summary)

		// Citizen report endpoints - submissions require authentication
		r.Route("/reports", func(r chi.Router) {
			r.With(authMiddleware, writeRateLimit).Post("/", reportHandler.Create)
			r.With(authMiddleware).Get("/mine", reportHandler.Mine)
			r.With(standardRateLimit).Get("/city/{city}", reportHandler.ListByCity)
			r.With(standardRateLimit).Get("/{id}", reportHandler.Get)
			r.With(authMiddleware, adminOnly).Put("/{id}/status", reportHandler.UpdateStatus)
		})

		// Ops endpoints
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.Health)
			// Manual ingestion trigger is admin-only
			r.With(authMiddleware, adminOnly).Post("/ingest", opsHandler.TriggerIngest)
		})
	})

	return r
}
