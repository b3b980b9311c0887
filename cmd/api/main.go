// Package main provides the entrypoint for the ClimateGuard API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/climateguard/climateguard/internal/airquality"
	"github.com/climateguard/climateguard/internal/alert"
	"github.com/climateguard/climateguard/internal/api"
	"github.com/climateguard/climateguard/internal/auth"
	"github.com/climateguard/climateguard/internal/config"
	"github.com/climateguard/climateguard/internal/database"
	"github.com/climateguard/climateguard/internal/flood"
	"github.com/climateguard/climateguard/internal/heatwave"
	"github.com/climateguard/climateguard/internal/ingest"
	"github.com/climateguard/climateguard/internal/observability"
	"github.com/climateguard/climateguard/internal/provider/openweather"
	"github.com/climateguard/climateguard/internal/provider/resilience"
	"github.com/climateguard/climateguard/internal/report"
	"github.com/climateguard/climateguard/internal/telemetry"
	"github.com/climateguard/climateguard/internal/waterquality"
)

// Version is set at compile time via ldflags.
var Version = "dev"

func main() {
	const serviceName = "climateguard-api"

	cfg := config.Load()

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("environment", cfg.Environment).
		Msg("starting ClimateGuard API")

	// Initialize OpenTelemetry
	ctx := context.Background()
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.OTELEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	metrics := observability.NewMetrics()

	// Connect to database
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	if err := database.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to apply database schema")
	}
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")

	probe := func(ctx context.Context) error {
		return database.Probe(ctx, pool)
	}

	// Domain repositories
	heatwaveRepo := heatwave.NewPostgresRepository(pool)
	airQualityRepo := airquality.NewPostgresRepository(pool)
	floodRepo := flood.NewPostgresRepository(pool)
	waterQualityRepo := waterquality.NewPostgresRepository(pool)
	alertRepo := alert.NewPostgresRepository(pool)

	// Auth service
	jwtSigningKey := cfg.JWTSigningKey
	if jwtSigningKey == "" {
		jwtSigningKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SigningKey: jwtSigningKey,
		Issuer:     "https://api.climateguard.in",
		TokenTTL:   cfg.JWTTokenTTL,
	})
	authService := auth.NewService(auth.NewPostgresRepository(pool), jwtService, log)
	log.Info().Msg("auth service initialized")

	// Citizen report service
	reportService := report.NewService(report.NewPostgresRepository(pool), log)
	log.Info().Msg("report service initialized")

	// Ingestion pipeline over the OpenWeather provider
	providerClient := openweather.NewClient(openweather.ClientConfig{
		APIKey:  cfg.OpenWeatherAPIKey,
		BaseURL: cfg.OpenWeatherBaseURL,
		GeoURL:  cfg.OpenWeatherGeoURL,
		HTTPClient: resilience.NewClient(resilience.ClientConfig{
			Name:    "openweather",
			Timeout: cfg.ProviderTimeout,
		}),
		Logger: log,
	})

	// The monitored cities ship with fixed coordinates; extra cities
	// from the environment are resolved through the geocoding API.
	roster := ingest.DefaultRoster()
	for _, name := range cfg.ExtraCities {
		coord, geoErr := providerClient.Geocode(ctx, name, cfg.CountryHint)
		if geoErr != nil {
			log.Warn().Err(geoErr).Str("city", name).Msg("failed to geocode extra city, skipping")
			continue
		}
		roster = append(roster, ingest.City{Name: name, Lat: coord.Lat, Lon: coord.Lon})
	}

	var publisher ingest.Publisher
	if cfg.KafkaEnabled {
		kafkaPublisher := ingest.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		defer func() {
			if closeErr := kafkaPublisher.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close kafka publisher")
			}
		}()
		publisher = kafkaPublisher
		log.Info().
			Strs("brokers", cfg.KafkaBrokers).
			Str("topic", cfg.KafkaTopic).
			Msg("kafka alert publishing enabled")
	}

	pipeline := ingest.NewPipeline(ingest.PipelineConfig{
		Provider:       providerClient,
		Heatwaves:      heatwaveRepo,
		AirQuality:     airQualityRepo,
		Alerts:         alertRepo,
		Publisher:      publisher,
		Metrics:        metrics,
		Logger:         log,
		Roster:         roster,
		InterCityDelay: cfg.InterCityDelay,
		Probe:          probe,
	})

	scheduler := ingest.NewScheduler(ingest.SchedulerConfig{
		Pipeline:   pipeline,
		Logger:     log,
		Interval:   cfg.IngestInterval,
		RunOnStart: cfg.IngestOnStartup,
	})

	schedulerCtx, stopScheduler := context.WithCancel(ctx)
	defer stopScheduler()
	go scheduler.Run(schedulerCtx)
	log.Info().
		Dur("interval", cfg.IngestInterval).
		Bool("run_on_start", cfg.IngestOnStartup).
		Msg("ingestion scheduler started")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:       Version,
		Logger:        log,
		ServiceName:   serviceName,
		AuthService:   authService,
		ReportService: reportService,
		Heatwaves:     heatwaveRepo,
		AirQuality:    airQualityRepo,
		Floods:        floodRepo,
		WaterQuality:  waterQualityRepo,
		Alerts:        alertRepo,
		Pipeline:      pipeline,
		Probe:         probe,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	stopScheduler()

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
