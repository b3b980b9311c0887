// Package config loads application configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the full application configuration.
type Config struct {
	// HTTP server settings.
	Port        string
	Environment string

	// OpenWeather provider settings.
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string
	OpenWeatherGeoURL  string
	ProviderTimeout    time.Duration
	CountryHint        string

	// Ingestion settings.
	IngestInterval  time.Duration
	InterCityDelay  time.Duration
	IngestOnStartup bool
	ExtraCities     []string

	// Kafka alert publishing (optional).
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string

	// Auth settings.
	JWTSigningKey string
	JWTTokenTTL   time.Duration

	// Telemetry settings.
	OTELEnabled  bool
	OTLPEndpoint string
}

// Load reads configuration from the environment, applying defaults.
// A .env file in the working directory is loaded first if present.
func Load() Config {
	// Best effort; a missing .env file is the normal production case.
	_ = godotenv.Load()

	return Config{
		Port:        getEnv("APP_PORT", "8080"),
		Environment: getEnv("APP_ENV", "development"),

		OpenWeatherAPIKey:  os.Getenv("OPENWEATHER_API_KEY"),
		OpenWeatherBaseURL: getEnv("OPENWEATHER_BASE_URL", ""),
		OpenWeatherGeoURL:  getEnv("OPENWEATHER_GEO_URL", ""),
		ProviderTimeout:    getDuration("PROVIDER_TIMEOUT", 10*time.Second),
		CountryHint:        getEnv("GEOCODE_COUNTRY", "IN"),

		IngestInterval:  getDuration("INGEST_INTERVAL", time.Hour),
		InterCityDelay:  getDuration("INGEST_CITY_DELAY", 500*time.Millisecond),
		IngestOnStartup: getBool("INGEST_ON_STARTUP", true),
		ExtraCities:     splitList(os.Getenv("EXTRA_CITIES")),

		KafkaEnabled: getBool("KAFKA_ENABLED", false),
		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   getEnv("KAFKA_ALERT_TOPIC", "climate.alerts"),

		JWTSigningKey: getEnv("JWT_SIGNING_KEY", ""),
		JWTTokenTTL:   getDuration("JWT_TOKEN_TTL", 24*time.Hour),

		OTELEnabled:  getBool("OTEL_ENABLED", false),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
