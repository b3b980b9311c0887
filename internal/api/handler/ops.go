package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/climateguard/climateguard/internal/api/response"
	"github.com/climateguard/climateguard/internal/ingest"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version  string
	probe    func(ctx context.Context) error
	pipeline *ingest.Pipeline
	logger   zerolog.Logger
}

// NewOpsHandler creates a new OpsHandler. probe checks database
// reachability and may be nil; pipeline may be nil when ingestion is
// disabled.
func NewOpsHandler(version string, probe func(ctx context.Context) error, pipeline *ingest.Pipeline, logger zerolog.Logger) *OpsHandler {
	return &OpsHandler{version: version, probe: probe, pipeline: pipeline, logger: logger}
}

// Health handles GET /api/v1/ops/health - liveness plus a database
// reachability check.
func (h *OpsHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	dbStatus := "ok"
	code := http.StatusOK

	if h.probe != nil {
		if err := h.probe(r.Context()); err != nil {
			status = "degraded"
			dbStatus = "unreachable"
			code = http.StatusServiceUnavailable
		}
	}

	response.JSON(w, r, code, map[string]interface{}{
		"status":  status,
		"version": h.version,
		"time":    time.Now().UTC(),
		"checks": map[string]string{
			"database": dbStatus,
		},
	})
}

// TriggerIngest handles POST /api/v1/ops/ingest - admin-only manual
// ingestion run. The run guard is acquired before responding, so an
// accepted trigger always owns the run it announced; an in-flight run
// causes a conflict instead of queuing.
func (h *OpsHandler) TriggerIngest(w http.ResponseWriter, r *http.Request) {
	if h.pipeline == nil {
		response.ServiceUnavailable(w, r, "ingestion is not configured")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	err := h.pipeline.TryStart(ctx, func(_ *ingest.Result, runErr error) {
		cancel()
		if runErr != nil {
			h.logger.Error().Err(runErr).Msg("manual ingestion run failed")
		}
	})
	if err != nil {
		cancel()
		if errors.Is(err, ingest.ErrRunInProgress) {
			response.Conflict(w, r, "an ingestion run is already in progress")
			return
		}
		response.InternalError(w, r, "failed to start ingestion run")
		return
	}

	response.Accepted(w, r, map[string]interface{}{
		"message": "ingestion run started",
	})
}
