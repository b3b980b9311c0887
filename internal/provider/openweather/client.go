// Package openweather is a client for the OpenWeather current weather,
// air pollution, and geocoding APIs.
package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/climateguard/climateguard/internal/provider/resilience"
)

const (
	// ProviderName tags readings produced from this provider.
	ProviderName = "OpenWeather"

	// DefaultBaseURL is the OpenWeather data API base URL.
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

	// DefaultGeoURL is the OpenWeather geocoding API base URL.
	DefaultGeoURL = "https://api.openweathermap.org/geo/1.0"
)

// Client errors. Callers treat all of them as "no fresh data this
// cycle"; none is fatal to an ingestion run.
var (
	ErrNoAPIKey    = errors.New("openweather api key not configured")
	ErrUnavailable = errors.New("openweather unavailable")
	ErrNoLocation  = errors.New("no geocoding result for city")
)

// Snapshot is a normalized current-weather observation in Celsius and
// percent relative humidity.
type Snapshot struct {
	Temperature float64
	FeelsLike   float64
	TempMin     float64
	TempMax     float64
	Humidity    float64
}

// Pollutants holds raw pollutant concentrations in µg/m³, except CO
// which is converted to mg/m³.
type Pollutants struct {
	PM25 float64
	PM10 float64
	NO2  float64
	SO2  float64
	CO   float64
	O3   float64
	NH3  float64
}

// Coordinate is a geographic point.
type Coordinate struct {
	Lat float64
	Lon float64
}

// ClientConfig holds configuration for the OpenWeather client.
type ClientConfig struct {
	// APIKey is the OpenWeather API key (required for live calls).
	APIKey string

	// BaseURL overrides the data API base URL (tests).
	BaseURL string

	// GeoURL overrides the geocoding API base URL (tests).
	GeoURL string

	// HTTPClient is the HTTP client to use. If nil, a resilient client
	// with defaults is used.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an OpenWeather API client.
type Client struct {
	apiKey     string
	baseURL    string
	geoURL     string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new OpenWeather client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	geoURL := cfg.GeoURL
	if geoURL == "" {
		geoURL = DefaultGeoURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig("openweather"))
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		geoURL:     geoURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// CurrentWeather fetches the current weather snapshot for a coordinate.
func (c *Client) CurrentWeather(ctx context.Context, coord Coordinate) (*Snapshot, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	requestURL := fmt.Sprintf("%s/weather?lat=%.4f&lon=%.4f&appid=%s&units=metric",
		c.baseURL, coord.Lat, coord.Lon, c.apiKey)

	var resp weatherResponse
	if err := c.getJSON(ctx, requestURL, &resp); err != nil {
		return nil, err
	}

	return &Snapshot{
		Temperature: resp.Main.Temp,
		FeelsLike:   resp.Main.FeelsLike,
		TempMin:     resp.Main.TempMin,
		TempMax:     resp.Main.TempMax,
		Humidity:    resp.Main.Humidity,
	}, nil
}

// AirPollution fetches raw pollutant concentrations for a coordinate.
func (c *Client) AirPollution(ctx context.Context, coord Coordinate) (*Pollutants, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	requestURL := fmt.Sprintf("%s/air_pollution?lat=%.4f&lon=%.4f&appid=%s",
		c.baseURL, coord.Lat, coord.Lon, c.apiKey)

	var resp pollutionResponse
	if err := c.getJSON(ctx, requestURL, &resp); err != nil {
		return nil, err
	}
	if len(resp.List) == 0 {
		return nil, ErrUnavailable
	}

	comp := resp.List[0].Components
	return &Pollutants{
		PM25: comp.PM25,
		PM10: comp.PM10,
		NO2:  comp.NO2,
		SO2:  comp.SO2,
		CO:   comp.CO / 1000, // µg/m³ to mg/m³
		O3:   comp.O3,
		NH3:  comp.NH3,
	}, nil
}

// Geocode resolves a city name to a coordinate, scoped to one country.
// Returns ErrNoLocation when the provider knows no such city; callers
// fail soft on that.
func (c *Client) Geocode(ctx context.Context, city, countryHint string) (Coordinate, error) {
	if c.apiKey == "" {
		return Coordinate{}, ErrNoAPIKey
	}

	query := city
	if countryHint != "" {
		query = city + "," + countryHint
	}
	requestURL := fmt.Sprintf("%s/direct?q=%s&limit=1&appid=%s",
		c.geoURL, url.QueryEscape(query), c.apiKey)

	var results []geocodeResult
	if err := c.getJSON(ctx, requestURL, &results); err != nil {
		return Coordinate{}, err
	}
	if len(results) == 0 {
		return Coordinate{}, ErrNoLocation
	}

	return Coordinate{Lat: results[0].Lat, Lon: results[0].Lon}, nil
}

// Name returns the provider name used as the reading source tag.
func (c *Client) Name() string {
	return ProviderName
}

func (c *Client) getJSON(ctx context.Context, requestURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status code %d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	return nil
}

// OpenWeather API response structures.

type weatherResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
}

type pollutionResponse struct {
	List []struct {
		Components struct {
			PM25 float64 `json:"pm2_5"`
			PM10 float64 `json:"pm10"`
			NO2  float64 `json:"no2"`
			SO2  float64 `json:"so2"`
			CO   float64 `json:"co"`
			O3   float64 `json:"o3"`
			NH3  float64 `json:"nh3"`
		} `json:"components"`
	} `json:"list"`
}

type geocodeResult struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}
