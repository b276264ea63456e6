package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/go-link-service/internal/app/service"
	"github.com/atinyakov/go-link-service/internal/middleware"
	"github.com/atinyakov/go-link-service/internal/models"
)

// defaultPageSize is the page length of the owner-facing listings.
const defaultPageSize = 10

// storeTimeout bounds every handler-initiated store round trip.
const storeTimeout = 3 * time.Second

// LinkHandler serves the owner-facing link surface under /api/links.
type LinkHandler struct {
	links     service.LinkManagerIface
	analytics *service.AnalyticsService
	logger    *zap.Logger
}

func NewLink(links service.LinkManagerIface, analytics *service.AnalyticsService, logger *zap.Logger) *LinkHandler {
	return &LinkHandler{
		links:     links,
		analytics: analytics,
		logger:    logger,
	}
}

// Create handles POST /api/links.
func (h *LinkHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.CreateLinkRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeDecodeError(w, h.logger, err)
		return
	}

	created, err := h.links.Create(ctx, principal, req.DestinationURL, requestMeta(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, models.CreateLinkResponse{
		Success:    true,
		Link:       created.Link,
		PreviewURL: created.PreviewURL,
		DirectURL:  created.DirectURL,
	})
}

// List handles GET /api/links.
func (h *LinkHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	page := pageParam(r)
	links, total, err := h.links.List(ctx, principal.ID, page, defaultPageSize)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, models.LinkPageResponse{
		Success: true,
		Links:   links,
		Page:    page,
		Pages:   models.Pages(total, defaultPageSize),
		Total:   total,
	})
}

// Delete handles DELETE /api/links/{id}.
func (h *LinkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.links.Delete(ctx, id, principal.ID, requestMeta(r)); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, models.MessageResponse{Success: true, Message: "link deleted"})
}

// Analytics handles GET /api/links/{id}/analytics.
func (h *LinkHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := chi.URLParam(r, "id")
	link, report, err := h.analytics.Report(ctx, id, principal.ID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, models.AnalyticsResponse{
		Success:   true,
		Link:      *link,
		Analytics: *report,
	})
}
