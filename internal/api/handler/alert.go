package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/climateguard/climateguard/internal/alert"
	"github.com/climateguard/climateguard/internal/api/response"
)

// AlertHandler handles alert endpoints.
type AlertHandler struct {
	alerts alert.Repository
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alerts alert.Repository) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// Active handles GET /api/v1/alerts/active/{city} with optional type
// and severity query filters.
func (h *AlertHandler) Active(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")
	filter := alert.Filter{
		Type:     alert.Type(r.URL.Query().Get("type")),
		Severity: alert.Severity(r.URL.Query().Get("severity")),
	}

	alerts, err := h.alerts.ActiveForCity(r.Context(), city, filter)
	if err != nil {
		response.InternalError(w, r, "failed to load active alerts")
		return
	}
	if alerts == nil {
		alerts = []*alert.Alert{}
	}
	response.JSON(w, r, http.StatusOK, map[string]interface{}{"alerts": alerts})
}

// History handles GET /api/v1/alerts/history/{city} with pagination.
func (h *AlertHandler) History(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")
	page := alert.Page{
		Limit: queryInt(r, "limit", 50, 200),
		Skip:  queryInt(r, "skip", 0, 0),
	}
	t := alert.Type(r.URL.Query().Get("type"))

	result, err := h.alerts.History(r.Context(), city, t, page)
	if err != nil {
		response.InternalError(w, r, "failed to load alert history")
		return
	}
	if result.Alerts == nil {
		result.Alerts = []*alert.Alert{}
	}
	response.JSON(w, r, http.StatusOK, map[string]interface{}{
		"alerts": result.Alerts,
		"pagination": map[string]interface{}{
			"total":   result.Total,
			"limit":   page.Limit,
			"skip":    page.Skip,
			"hasMore": result.HasMore,
		},
	})
}

// Get handles GET /api/v1/alerts/{id}.
func (h *AlertHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	a, err := h.alerts.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, alert.ErrNotFound) {
			response.NotFound(w, r, "alert not found")
			return
		}
		response.InternalError(w, r, "failed to load alert")
		return
	}
	response.JSON(w, r, http.StatusOK, a)
}

// typeSummary aggregates active alerts of one type for the dashboard.
type typeSummary struct {
	Type            alert.Type     `json:"type"`
	Count           int            `json:"count"`
	HighestSeverity alert.Severity `json:"highestSeverity"`
	LatestAlert     latestAlert    `json:"latestAlert"`
}

type latestAlert struct {
	Title    string         `json:"title"`
	Message  string         `json:"message"`
	Severity alert.Severity `json:"severity"`
}

// Summary handles GET /api/v1/alerts/summary/{city} - the per-city
// dashboard rollup of active alerts grouped by type.
func (h *AlertHandler) Summary(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")

	alerts, err := h.alerts.ActiveForCity(r.Context(), city, alert.Filter{})
	if err != nil {
		response.InternalError(w, r, "failed to load active alerts")
		return
	}

	byType := make(map[alert.Type]*typeSummary)
	var order []alert.Type
	for _, a := range alerts {
		s, ok := byType[a.Type]
		if !ok {
			s = &typeSummary{
				Type:            a.Type,
				HighestSeverity: a.Severity,
				LatestAlert: latestAlert{
					Title:    a.Title,
					Message:  a.Message,
					Severity: a.Severity,
				},
			}
			byType[a.Type] = s
			order = append(order, a.Type)
		}
		s.Count++
		if a.Severity.Rank() > s.HighestSeverity.Rank() {
			s.HighestSeverity = a.Severity
		}
	}

	summaries := make([]*typeSummary, 0, len(order))
	for _, t := range order {
		summaries = append(summaries, byType[t])
	}

	response.JSON(w, r, http.StatusOK, map[string]interface{}{
		"city":              city,
		"totalActiveAlerts": len(alerts),
		"byType":            summaries,
	})
}
