package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/climateguard/climateguard/internal/api/middleware"
	"github.com/climateguard/climateguard/internal/api/response"
	"github.com/climateguard/climateguard/internal/report"
)

// ReportHandler handles incident report endpoints.
type ReportHandler struct {
	reports *report.Service
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports *report.Service) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Create handles POST /api/v1/reports - submit a new report.
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in report.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	rep, err := h.reports.Submit(r.Context(), middleware.GetUserID(r.Context()), in)
	if err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}
	response.Created(w, r, "/api/v1/reports/"+rep.ID, map[string]interface{}{
		"message": "Report submitted successfully",
		"report":  rep,
	})
}

// ListByCity handles GET /api/v1/reports/city/{city}.
func (h *ReportHandler) ListByCity(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")
	f := report.Filter{
		Type:   report.Type(r.URL.Query().Get("type")),
		Status: report.Status(r.URL.Query().Get("status")),
		Limit:  queryInt(r, "limit", 20, 100),
		Offset: queryInt(r, "skip", 0, 0),
	}

	result, err := h.reports.ListByCity(r.Context(), city, f)
	if err != nil {
		response.InternalError(w, r, "failed to list reports")
		return
	}
	h.writePage(w, r, result)
}

// Mine handles GET /api/v1/reports/mine - the caller's own reports.
func (h *ReportHandler) Mine(w http.ResponseWriter, r *http.Request) {
	f := report.Filter{
		Status: report.Status(r.URL.Query().Get("status")),
		Limit:  queryInt(r, "limit", 20, 100),
		Offset: queryInt(r, "skip", 0, 0),
	}

	result, err := h.reports.ListByUser(r.Context(), middleware.GetUserID(r.Context()), f)
	if err != nil {
		response.InternalError(w, r, "failed to list reports")
		return
	}
	h.writePage(w, r, result)
}

// Get handles GET /api/v1/reports/{id}.
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reports.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, report.ErrNotFound) {
			response.NotFound(w, r, "report not found")
			return
		}
		response.InternalError(w, r, "failed to load report")
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]interface{}{"report": rep})
}

// statusInput is the payload for UpdateStatus.
type statusInput struct {
	Status report.Status `json:"status"`
}

// UpdateStatus handles PUT /api/v1/reports/{id}/status - admin-only
// lifecycle transition.
func (h *ReportHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var in statusInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	rep, err := h.reports.UpdateStatus(r.Context(), chi.URLParam(r, "id"), in.Status)
	if err != nil {
		switch {
		case errors.Is(err, report.ErrNotFound):
			response.NotFound(w, r, "report not found")
		case errors.Is(err, report.ErrInvalidTransition):
			response.Conflict(w, r, err.Error())
		default:
			response.InternalError(w, r, "failed to update report")
		}
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]interface{}{
		"message": "Report status updated",
		"report":  rep,
	})
}

func (h *ReportHandler) writePage(w http.ResponseWriter, r *http.Request, result *report.ListResult) {
	if result.Reports == nil {
		result.Reports = []*report.Report{}
	}
	response.JSON(w, r, http.StatusOK, map[string]interface{}{
		"reports": result.Reports,
		"pagination": map[string]interface{}{
			"total": result.Total,
			"limit": result.Limit,
			"skip":  result.Offset,
		},
	})
}
