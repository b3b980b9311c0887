package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/climateguard/climateguard/internal/api/response"
	"github.com/climateguard/climateguard/internal/heatwave"
)

// HeatwaveHandler handles heatwave endpoints.
type HeatwaveHandler struct {
	readings heatwave.Repository
}

// NewHeatwaveHandler creates a new HeatwaveHandler.
func NewHeatwaveHandler(readings heatwave.Repository) *HeatwaveHandler {
	return &HeatwaveHandler{readings: readings}
}

// Current handles GET /api/v1/heatwave/current/{city}.
func (h *HeatwaveHandler) Current(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")

	reading, err := h.readings.Latest(r.Context(), city)
	if err != nil {
		if errors.Is(err, heatwave.ErrNoReading) {
			response.NotFound(w, r, "no heatwave data for city")
			return
		}
		response.InternalError(w, r, "failed to load heatwave data")
		return
	}
	response.JSON(w, r, http.StatusOK, reading)
}

// History handles GET /api/v1/heatwave/history/{city}.
func (h *HeatwaveHandler) History(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")
	limit := queryInt(r, "limit", 24, 168)

	readings, err := h.readings.History(r.Context(), city, limit)
	if err != nil {
		response.InternalError(w, r, "failed to load heatwave history")
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]interface{}{
		"city":     city,
		"readings": readings,
	})
}

// alertLevelInfo is one row of the alert level reference table.
type alertLevelInfo struct {
	Level       heatwave.AlertLevel `json:"level"`
	Name        string              `json:"name"`
	Temperature string              `json:"temperature"`
	HeatIndex   string              `json:"heatIndex"`
	Action      string              `json:"action"`
}

// AlertLevels handles GET /api/v1/heatwave/alert-levels - static
// reference for the dashboard legend.
func (h *HeatwaveHandler) AlertLevels(w http.ResponseWriter, r *http.Request) {
	levels := []alertLevelInfo{
		{
			Level:       heatwave.LevelGreen,
			Name:        "Normal",
			Temperature: "Below 37°C",
			HeatIndex:   "Below 40°C",
			Action:      "Normal precautions",
		},
		{
			Level:       heatwave.LevelYellow,
			Name:        "Caution",
			Temperature: "37-40°C",
			HeatIndex:   "40-45°C",
			Action:      "Stay hydrated, limit outdoor exposure",
		},
		{
			Level:       heatwave.LevelOrange,
			Name:        "Warning",
			Temperature: "40-45°C",
			HeatIndex:   "45-52°C",
			Action:      "Avoid outdoor activities, high risk for vulnerable groups",
		},
		{
			Level:       heatwave.LevelRed,
			Name:        "Severe",
			Temperature: "Above 45°C",
			HeatIndex:   "Above 52°C",
			Action:      "Stay indoors, emergency alert, check on vulnerable people",
		},
	}
	response.JSON(w, r, http.StatusOK, map[string]interface{}{"levels": levels})
}

// heatGuidelines is the do's-and-don'ts reference payload.
type heatGuidelines struct {
	Dos            []string `json:"dos"`
	Donts          []string `json:"donts"`
	Symptoms       []string `json:"symptoms"`
	EmergencySteps []string `json:"emergencySteps"`
}

// Guidelines handles GET /api/v1/heatwave/guidelines - static safety
// advice for heatwave conditions.
func (h *HeatwaveHandler) Guidelines(w http.ResponseWriter, r *http.Request) {
	guidelines := heatGuidelines{
		Dos: []string{
			"Drink plenty of water even if not thirsty",
			"Wear lightweight, light-colored, loose clothing",
			"Stay indoors during peak heat hours (12 PM - 4 PM)",
			"Use ORS (Oral Rehydration Solution) if feeling dizzy",
			"Keep rooms cool with fans or AC",
			"Eat light meals, avoid heavy or hot foods",
			"Check on elderly neighbors and family members",
			"Carry water bottle when going outside",
		},
		Donts: []string{
			"Do not leave children or pets in parked vehicles",
			"Avoid strenuous outdoor activities during peak hours",
			"Do not consume alcohol or caffeinated drinks",
			"Avoid direct sunlight exposure",
			"Do not ignore symptoms like dizziness, nausea, or headache",
			"Avoid cooking during peak heat hours if possible",
		},
		Symptoms: []string{
			"Heavy sweating",
			"Weakness or tiredness",
			"Dizziness or fainting",
			"Nausea or vomiting",
			"Headache",
			"Muscle cramps",
			"Rapid heartbeat",
		},
		EmergencySteps: []string{
			"Move to a cool place immediately",
			"Apply cold water on head and neck",
			"Drink cool water or ORS",
			"Fan the person to lower body temperature",
			"Call emergency services if symptoms persist",
		},
	}
	response.JSON(w, r, http.StatusOK, map[string]interface{}{"guidelines": guidelines})
}
