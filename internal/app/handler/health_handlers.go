package handler

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/go-link-service/internal/app/service"
	"github.com/atinyakov/go-link-service/internal/models"
)

// HealthHandler serves liveness and store-reachability probes.
type HealthHandler struct {
	links  service.LinkManagerIface
	logger *zap.Logger
}

func NewHealth(links service.LinkManagerIface, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{links: links, logger: logger}
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Ping handles GET /ping: it fails when the store is unreachable.
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	if err := h.links.PingContext(ctx); err != nil {
		h.logger.Error("store ping failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	w.WriteHeader(http.StatusOK)
}
