package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/climateguard/climateguard/internal/airquality"
	"github.com/climateguard/climateguard/internal/alert"
	"github.com/climateguard/climateguard/internal/api/response"
	"github.com/climateguard/climateguard/internal/flood"
	"github.com/climateguard/climateguard/internal/heatwave"
	"github.com/climateguard/climateguard/internal/waterquality"
)

// DashboardHandler composes each domain's latest reading plus the
// active alerts into one per-city overview.
type DashboardHandler struct {
	heatwaves    heatwave.Repository
	airQuality   airquality.Repository
	floods       flood.Repository
	waterQuality waterquality.Repository
	alerts       alert.Repository
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(
	heatwaves heatwave.Repository,
	airQuality airquality.Repository,
	floods flood.Repository,
	waterQuality waterquality.Repository,
	alerts alert.Repository,
) *DashboardHandler {
	return &DashboardHandler{
		heatwaves:    heatwaves,
		airQuality:   airQuality,
		floods:       floods,
		waterQuality: waterQuality,
		alerts:       alerts,
	}
}

// heatwaveStatus is the heatwave block of the dashboard summary.
type heatwaveStatus struct {
	Status      heatwave.AlertLevel `json:"status"`
	Temperature *float64            `json:"temperature"`
	HeatIndex   *float64            `json:"heatIndex"`
}

// floodStatus is the flood block of the dashboard summary.
type floodStatus struct {
	RiskLevel flood.RiskLevel `json:"riskLevel"`
}

// airQualityStatus is the air quality block of the dashboard summary.
type airQualityStatus struct {
	AQI      *int                `json:"aqi"`
	Category airquality.Category `json:"category"`
}

// waterQualityStatus is the water quality block of the dashboard summary.
type waterQualityStatus struct {
	WQI             *int                  `json:"wqi"`
	Category        waterquality.Category `json:"category"`
	SafeForDrinking bool                  `json:"safeForDrinking"`
}

// dashboardSummary is the per-domain status rollup.
type dashboardSummary struct {
	Heatwave     heatwaveStatus     `json:"heatwave"`
	Flood        floodStatus        `json:"flood"`
	AirQuality   airQualityStatus   `json:"airQuality"`
	WaterQuality waterQualityStatus `json:"waterQuality"`
}

// Summary handles GET /api/v1/dashboard/{city}. A domain with no
// stored reading reports an "unknown" status rather than failing the
// whole overview.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")
	ctx := r.Context()

	summary := dashboardSummary{
		Heatwave:     heatwaveStatus{Status: "unknown"},
		Flood:        floodStatus{RiskLevel: "unknown"},
		AirQuality:   airQualityStatus{Category: "unknown"},
		WaterQuality: waterQualityStatus{Category: "unknown"},
	}

	heat, err := h.heatwaves.Latest(ctx, city)
	if err != nil && !errors.Is(err, heatwave.ErrNoReading) {
		response.InternalError(w, r, "failed to load dashboard data")
		return
	}
	if heat != nil {
		summary.Heatwave = heatwaveStatus{
			Status:      heat.AlertLevel,
			Temperature: &heat.Temperature.Current,
			HeatIndex:   &heat.HeatIndex,
		}
	}

	air, err := h.airQuality.Latest(ctx, city)
	if err != nil && !errors.Is(err, airquality.ErrNoReading) {
		response.InternalError(w, r, "failed to load dashboard data")
		return
	}
	if air != nil {
		summary.AirQuality = airQualityStatus{
			AQI:      &air.AQI.Value,
			Category: air.AQI.Category,
		}
	}

	fl, err := h.floods.Latest(ctx, city)
	if err != nil && !errors.Is(err, flood.ErrNoReading) {
		response.InternalError(w, r, "failed to load dashboard data")
		return
	}
	if fl != nil {
		summary.Flood = floodStatus{RiskLevel: fl.RiskLevel}
	}

	water, err := h.waterQuality.Latest(ctx, city)
	if err != nil && !errors.Is(err, waterquality.ErrNoReading) {
		response.InternalError(w, r, "failed to load dashboard data")
		return
	}
	if water != nil {
		summary.WaterQuality = waterQualityStatus{
			WQI:             &water.WQI.Value,
			Category:        water.WQI.Category,
			SafeForDrinking: water.SafeForDrinking,
		}
	}

	active, err := h.alerts.ActiveForCity(ctx, city, alert.Filter{})
	if err != nil {
		response.InternalError(w, r, "failed to load dashboard data")
		return
	}

	response.JSON(w, r, http.StatusOK, map[string]interface{}{
		"city":         city,
		"timestamp":    time.Now().UTC(),
		"summary":      summary,
		"activeAlerts": len(active),
	})
}
