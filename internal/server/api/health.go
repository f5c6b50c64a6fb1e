package api

import (
	"context"
	"net/http"
	"time"
)

// HealthResponse: ответ /health.
type HealthResponse struct {
	Status string `json:"status"`
}

const healthTimeout = 2 * time.Second

// Health проверяет доступность БД.
//
// @Summary      Health check
// @Tags         service
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.HealthDB == nil {
		WriteJSON(w, http.StatusOK, HealthResponse{Status: MsgServiceHealthy})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.HealthDB.Ping(ctx); err != nil {
		h.Log.Logger.Sugar().Warnw("health check failed", "error", err)
		WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		return
	}
	WriteJSON(w, http.StatusOK, HealthResponse{Status: MsgServiceHealthy})
}
