package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/climateguard/climateguard/internal/airquality"
	"github.com/climateguard/climateguard/internal/api/response"
)

// AirQualityHandler handles air quality endpoints.
type AirQualityHandler struct {
	readings airquality.Repository
}

// NewAirQualityHandler creates a new AirQualityHandler.
func NewAirQualityHandler(readings airquality.Repository) *AirQualityHandler {
	return &AirQualityHandler{readings: readings}
}

// Current handles GET /api/v1/air-quality/current/{city}.
func (h *AirQualityHandler) Current(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")

	reading, err := h.readings.Latest(r.Context(), city)
	if err != nil {
		if errors.Is(err, airquality.ErrNoReading) {
			response.NotFound(w, r, "no air quality data for city")
			return
		}
		response.InternalError(w, r, "failed to load air quality data")
		return
	}
	response.JSON(w, r, http.StatusOK, reading)
}

// Pollutants handles GET /api/v1/air-quality/pollutants/{city} - the
// pollutant breakdown of the latest reading.
func (h *AirQualityHandler) Pollutants(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")

	reading, err := h.readings.Latest(r.Context(), city)
	if err != nil {
		if errors.Is(err, airquality.ErrNoReading) {
			response.NotFound(w, r, "no air quality data for city")
			return
		}
		response.InternalError(w, r, "failed to load air quality data")
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]interface{}{
		"city":       reading.City,
		"recordedAt": reading.RecordedAt,
		"pollutants": reading.Pollutants,
	})
}

// History handles GET /api/v1/air-quality/history/{city}.
func (h *AirQualityHandler) History(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")
	limit := queryInt(r, "limit", 24, 168)

	readings, err := h.readings.History(r.Context(), city, limit)
	if err != nil {
		response.InternalError(w, r, "failed to load air quality history")
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]interface{}{
		"city":     city,
		"readings": readings,
	})
}

// categoryInfo is one row of the AQI category reference table.
type categoryInfo struct {
	Category           airquality.Category `json:"category"`
	Range              string              `json:"range"`
	Color              string              `json:"color"`
	HealthImplications string              `json:"healthImplications"`
	Caution            string              `json:"cautionaryStatement"`
}

// Categories handles GET /api/v1/air-quality/categories - the AQI band
// reference.
func (h *AirQualityHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories := []categoryInfo{
		{
			Category:           airquality.CategoryGood,
			Range:              "0-50",
			Color:              "#00e400",
			HealthImplications: "Air quality is satisfactory",
			Caution:            "None",
		},
		{
			Category:           airquality.CategorySatisfactory,
			Range:              "51-100",
			Color:              "#92d050",
			HealthImplications: "Acceptable quality for most",
			Caution:            "Sensitive individuals may experience minor issues",
		},
		{
			Category:           airquality.CategoryModerate,
			Range:              "101-200",
			Color:              "#ffff00",
			HealthImplications: "May cause breathing discomfort to sensitive people",
			Caution:            "Children, elderly should limit outdoor exposure",
		},
		{
			Category:           airquality.CategoryPoor,
			Range:              "201-300",
			Color:              "#ff7e00",
			HealthImplications: "May cause breathing discomfort to most people",
			Caution:            "Avoid prolonged outdoor activities",
		},
		{
			Category:           airquality.CategoryVeryPoor,
			Range:              "301-400",
			Color:              "#ff0000",
			HealthImplications: "May cause respiratory illness on prolonged exposure",
			Caution:            "Avoid outdoor activities, use N95 masks",
		},
		{
			Category:           airquality.CategorySevere,
			Range:              "400+",
			Color:              "#99004c",
			HealthImplications: "May cause serious health effects",
			Caution:            "Stay indoors, use air purifiers",
		},
	}
	response.JSON(w, r, http.StatusOK, map[string]interface{}{"categories": categories})
}
