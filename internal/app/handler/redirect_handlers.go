package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/go-link-service/internal/app/service"
	"github.com/atinyakov/go-link-service/internal/models"
)

// RedirectHandler serves the two public resolution entry points: the
// interstitial preview and the counted follow-through redirect.
type RedirectHandler struct {
	resolver service.ResolverIface
	logger   *zap.Logger
	baseURL  string
}

func NewRedirect(resolver service.ResolverIface, logger *zap.Logger, baseURL string) *RedirectHandler {
	return &RedirectHandler{
		resolver: resolver,
		logger:   logger,
		baseURL:  baseURL,
	}
}

func visitFrom(r *http.Request) service.Visit {
	return service.Visit{
		ClientIP:  clientIP(r),
		UserAgent: r.UserAgent(),
		Referrer:  r.Referer(),
	}
}

// Preview handles GET /r/{code}: it renders the interstitial data without
// counting a click.
func (h *RedirectHandler) Preview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	code := chi.URLParam(r, "code")
	link, err := h.resolver.Resolve(ctx, code, service.Preview, service.Visit{})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, models.InterstitialResponse{
		Success: true,
		Link: models.InterstitialLink{
			ShortCode:      link.ShortCode,
			DestinationURL: link.DestinationURL,
		},
		DirectURL: h.baseURL + "/go/" + link.ShortCode,
	})
}

// Follow handles GET /go/{code}: it redirects the client and records the
// click.
func (h *RedirectHandler) Follow(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	code := chi.URLParam(r, "code")
	link, err := h.resolver.Resolve(ctx, code, service.Follow, visitFrom(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	http.Redirect(w, r, link.DestinationURL, http.StatusFound)
}
