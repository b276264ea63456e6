package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/go-link-service/internal/app/service"
	"github.com/atinyakov/go-link-service/internal/models"
)

// logsPageSize is the page length of the audit trail listing.
const logsPageSize = 20

// AdminHandler serves the administrative surface under /admin: cross-owner
// link management, the principal directory and the audit trail.
type AdminHandler struct {
	links      service.LinkManagerIface
	principals *service.PrincipalService
	audit      *service.AuditService
	logger     *zap.Logger
}

func NewAdmin(links service.LinkManagerIface, principals *service.PrincipalService, audit *service.AuditService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		links:      links,
		principals: principals,
		audit:      audit,
		logger:     logger,
	}
}

// LinksData handles GET /admin/links/data: unscoped, case-insensitive search.
func (h *AdminHandler) LinksData(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	page := pageParam(r)
	query := r.URL.Query().Get("search")

	links, total, err := h.links.Search(ctx, query, page, defaultPageSize)
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

// DeleteLink handles DELETE /admin/links/{id}: the cross-owner delete path.
func (h *AdminHandler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.links.AdminDelete(ctx, id, requestMeta(r)); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, models.MessageResponse{Success: true, Message: "link deleted"})
}

// ToggleLink handles PATCH /admin/links/{id}/toggle.
func (h *AdminHandler) ToggleLink(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	link, err := h.links.Toggle(ctx, id, requestMeta(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, models.LinkResponse{Success: true, Link: *link})
}

// LogsData handles GET /admin/logs/data with an optional actor_id filter.
func (h *AdminHandler) LogsData(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	page := pageParam(r)
	actorID := r.URL.Query().Get("actor_id")

	logs, total, err := h.audit.Query(ctx, actorID, page, logsPageSize)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, models.AuditPageResponse{
		Success: true,
		Logs:    logs,
		Page:    page,
		Pages:   models.Pages(total, logsPageSize),
		Total:   total,
	})
}

// UsersData handles GET /admin/users/data: the principal directory listing.
func (h *AdminHandler) UsersData(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	page := pageParam(r)
	query := r.URL.Query().Get("search")

	users, total, err := h.principals.List(ctx, query, page, defaultPageSize)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, models.PrincipalPageResponse{
		Success: true,
		Users:   users,
		Page:    page,
		Pages:   models.Pages(total, defaultPageSize),
		Total:   total,
	})
}

// ToggleUser handles PATCH /admin/users/{id}/toggle.
func (h *AdminHandler) ToggleUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	user, err := h.principals.ToggleActive(ctx, id, requestMeta(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, models.PrincipalResponse{Success: true, User: *user})
}

// ChangeRole handles PATCH /admin/users/{id}/role.
func (h *AdminHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	var req models.ChangeRoleRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeDecodeError(w, h.logger, err)
		return
	}

	id := chi.URLParam(r, "id")
	user, err := h.principals.ChangeRole(ctx, id, req.Role, requestMeta(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, models.PrincipalResponse{Success: true, User: *user})
}

// Stats handles GET /admin/stats and GET /api/internal/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	stats, err := h.links.Totals(ctx)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, models.StatsResponse{Success: true, Stats: *stats})
}
