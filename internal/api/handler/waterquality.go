package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/climateguard/climateguard/internal/api/response"
	"github.com/climateguard/climateguard/internal/waterquality"
)

// WaterQualityHandler handles water quality endpoints. When a city has
// no stored sample it serves a deterministic simulated one and persists
// it, so repeated requests see the same data.
type WaterQualityHandler struct {
	readings waterquality.Repository
	logger   zerolog.Logger
}

// NewWaterQualityHandler creates a new WaterQualityHandler.
func NewWaterQualityHandler(readings waterquality.Repository, logger zerolog.Logger) *WaterQualityHandler {
	return &WaterQualityHandler{readings: readings, logger: logger}
}

// Current handles GET /api/v1/water-quality/current/{city}. Optional
// lat/lon query parameters seed the coordinates of a generated sample.
func (h *WaterQualityHandler) Current(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")

	reading, err := h.readings.Latest(r.Context(), city)
	if err == nil {
		response.JSON(w, r, http.StatusOK, reading)
		return
	}
	if !errors.Is(err, waterquality.ErrNoReading) {
		response.InternalError(w, r, "failed to load water quality data")
		return
	}

	lat := queryFloat(r, "lat")
	lon := queryFloat(r, "lon")
	reading = waterquality.Generate(city, "", lat, lon, time.Now())
	if err := h.readings.Insert(r.Context(), reading); err != nil {
		// Serve the generated sample anyway; the next request will
		// regenerate the identical one.
		h.logger.Warn().Err(err).Str("city", city).Msg("failed to persist generated water sample")
	}
	response.JSON(w, r, http.StatusOK, reading)
}

// standardInfo is one row of the drinking water standards table.
type standardInfo struct {
	Parameter  string `json:"parameter"`
	Acceptable string `json:"acceptable"`
	Unit       string `json:"unit,omitempty"`
}

// Standards handles GET /api/v1/water-quality/standards - the limits
// readings are judged against.
func (h *WaterQualityHandler) Standards(w http.ResponseWriter, r *http.Request) {
	standards := []standardInfo{
		{Parameter: "ph", Acceptable: "6.5-8.5"},
		{Parameter: "dissolvedOxygen", Acceptable: ">= 6", Unit: "mg/L"},
		{Parameter: "bod", Acceptable: "<= 3", Unit: "mg/L"},
		{Parameter: "turbidity", Acceptable: "<= 5", Unit: "NTU"},
		{Parameter: "totalColiform", Acceptable: "<= 50", Unit: "MPN/100mL"},
		{Parameter: "nitrate", Acceptable: "<= 45", Unit: "mg/L"},
		{Parameter: "fluoride", Acceptable: "<= 1.5", Unit: "mg/L"},
		{Parameter: "iron", Acceptable: "<= 0.3", Unit: "mg/L"},
	}
	response.JSON(w, r, http.StatusOK, map[string]interface{}{"standards": standards})
}

func queryFloat(r *http.Request, name string) float64 {
	v, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
	if err != nil {
		return 0
	}
	return v
}
