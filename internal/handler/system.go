package handler

import (
	"log/slog"
	"net/http"
	"time"

	"codolio/internal/httputil"
	"codolio/internal/service"
)

// SystemHandler handles whole-store HTTP requests
type SystemHandler struct {
	systemService service.SystemService
	sheetPath     string
	logger        *slog.Logger
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(systemService service.SystemService, sheetPath string, logger *slog.Logger) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
		sheetPath:     sheetPath,
		logger:        logger,
	}
}

// HealthCheck reports liveness
// GET /api/health
func (h *SystemHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondData(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Stats returns aggregate progress counts
// GET /api/stats
func (h *SystemHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.systemService.Stats(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, stats)
}

// ResetProgress clears every solved flag without touching structure
// PATCH /api/system/reset-progress
func (h *SystemHandler) ResetProgress(w http.ResponseWriter, r *http.Request) {
	if err := h.systemService.ResetProgress(r.Context()); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondMessage(w, http.StatusOK, "All progress reset")
}

// FullReset wipes everything and rebuilds from the seed sheet
// POST /api/system/full-reset
func (h *SystemHandler) FullReset(w http.ResponseWriter, r *http.Request) {
	summary, err := h.systemService.FullReset(r.Context(), h.sheetPath)
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("full reset served",
		"topics", summary.Topics,
		"questions", summary.Questions,
	)
	httputil.RespondMessage(w, http.StatusOK, "Database fully reset and re-seeded")
}

// Wipe deletes every record without reseeding
// DELETE /api/reset
func (h *SystemHandler) Wipe(w http.ResponseWriter, r *http.Request) {
	if err := h.systemService.Wipe(r.Context()); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondMessage(w, http.StatusOK, "Database cleared")
}
