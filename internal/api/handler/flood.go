package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/climateguard/climateguard/internal/api/response"
	"github.com/climateguard/climateguard/internal/flood"
)

// FloodHandler handles flood endpoints. Flood readings are written by
// authorities, not by the ingestion pipeline.
type FloodHandler struct {
	readings flood.Repository
}

// NewFloodHandler creates a new FloodHandler.
func NewFloodHandler(readings flood.Repository) *FloodHandler {
	return &FloodHandler{readings: readings}
}

// Current handles GET /api/v1/flood/current/{city}.
func (h *FloodHandler) Current(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")

	reading, err := h.readings.Latest(r.Context(), city)
	if err != nil {
		if errors.Is(err, flood.ErrNoReading) {
			response.NotFound(w, r, "no flood data for city")
			return
		}
		response.InternalError(w, r, "failed to load flood data")
		return
	}
	response.JSON(w, r, http.StatusOK, reading)
}

// floodUpdateInput is the admin payload for posting a flood reading.
type floodUpdateInput struct {
	City       string          `json:"city"`
	State      string          `json:"state"`
	Lat        float64         `json:"lat"`
	Lon        float64         `json:"lon"`
	RiskLevel  flood.RiskLevel `json:"riskLevel"`
	RainfallMM float64         `json:"rainfallMm"`
	WaterLevel float64         `json:"waterLevelM"`
}

// Update handles POST /api/v1/flood/update - admin-only reading write.
func (h *FloodHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in floodUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if in.City == "" {
		response.BadRequest(w, r, "city is required", nil)
		return
	}
	if !in.RiskLevel.Valid() {
		response.BadRequest(w, r, "unknown risk level", nil)
		return
	}

	reading := &flood.Reading{
		ID:         uuid.NewString(),
		City:       in.City,
		State:      in.State,
		Lat:        in.Lat,
		Lon:        in.Lon,
		RiskLevel:  in.RiskLevel,
		RainfallMM: in.RainfallMM,
		WaterLevel: in.WaterLevel,
		Source:     "manual",
		RecordedAt: time.Now(),
	}
	if err := h.readings.Insert(r.Context(), reading); err != nil {
		response.InternalError(w, r, "failed to store flood reading")
		return
	}
	response.Created(w, r, "", reading)
}

// floodGuidelines is the flood safety reference payload.
type floodGuidelines struct {
	BeforeFlood []string `json:"beforeFlood"`
	DuringFlood []string `json:"duringFlood"`
	AfterFlood  []string `json:"afterFlood"`
}

// Guidelines handles GET /api/v1/flood/guidelines - static flood
// safety advice.
func (h *FloodHandler) Guidelines(w http.ResponseWriter, r *http.Request) {
	guidelines := floodGuidelines{
		BeforeFlood: []string{
			"Keep important documents in waterproof bags",
			"Stock emergency supplies (water, food, medicines)",
			"Know evacuation routes in your area",
			"Keep mobile phones charged",
			"Move valuables to higher floors",
		},
		DuringFlood: []string{
			"Do not walk or drive through floodwater",
			"Stay away from power lines and electrical wires",
			"Move to higher ground if water rises",
			"Listen to emergency broadcasts",
			"Call emergency services if stranded",
		},
		AfterFlood: []string{
			"Return home only when authorities say it is safe",
			"Avoid floodwater - it may be contaminated",
			"Check for structural damage before entering buildings",
			"Clean and disinfect everything that got wet",
			"Report any hazards to local authorities",
		},
	}
	response.JSON(w, r, http.StatusOK, map[string]interface{}{"guidelines": guidelines})
}
