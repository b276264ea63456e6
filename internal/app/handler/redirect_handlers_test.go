package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/atinyakov/go-link-service/internal/app/service"
	"github.com/atinyakov/go-link-service/internal/mocks"
	"github.com/atinyakov/go-link-service/internal/storage"
)

func redirectRouter(h *RedirectHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/r/{code}", h.Preview)
	r.Get("/go/{code}", h.Follow)
	return r
}

func TestPreviewHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := mocks.NewMockResolverIface(ctrl)
	h := NewRedirect(resolver, zap.NewNop(), "http://localhost:8080")

	resolver.EXPECT().
		Resolve(gomock.Any(), "abc12345", service.Preview, service.Visit{}).
		Return(&storage.LinkRecord{ShortCode: "abc12345", DestinationURL: "https://example.com/page"}, nil)

	rec := httptest.NewRecorder()
	redirectRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/r/abc12345", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"success": true,
		"link": {"short_code": "abc12345", "destination_url": "https://example.com/page"},
		"direct_url": "http://localhost:8080/go/abc12345"
	}`, rec.Body.String())
}

func TestFollowHandlerRedirects(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := mocks.NewMockResolverIface(ctrl)
	h := NewRedirect(resolver, zap.NewNop(), "http://localhost:8080")

	wantVisit := service.Visit{
		ClientIP:  "192.0.2.10",
		UserAgent: "test-agent",
		Referrer:  "https://news.example.com/",
	}
	resolver.EXPECT().
		Resolve(gomock.Any(), "abc12345", service.Follow, wantVisit).
		Return(&storage.LinkRecord{ShortCode: "abc12345", DestinationURL: "https://example.com/page"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/go/abc12345", nil)
	req.Header.Set("X-Real-IP", "192.0.2.10")
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Referer", "https://news.example.com/")

	rec := httptest.NewRecorder()
	redirectRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://example.com/page", rec.Header().Get("Location"))
}

func TestResolveHandlersNotFound(t *testing.T) {
	tests := []struct {
		name string
		path string
		code string
		mode service.ResolveMode
	}{
		{name: "preview unknown", path: "/r/zzz999zz", code: "zzz999zz", mode: service.Preview},
		{name: "follow unknown", path: "/go/zzz999zz", code: "zzz999zz", mode: service.Follow},
		{name: "follow reserved", path: "/go/admin", code: "admin", mode: service.Follow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			resolver := mocks.NewMockResolverIface(ctrl)
			h := NewRedirect(resolver, zap.NewNop(), "http://localhost:8080")

			resolver.EXPECT().
				Resolve(gomock.Any(), tt.code, tt.mode, gomock.Any()).
				Return(nil, storage.ErrNotFound)

			rec := httptest.NewRecorder()
			redirectRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
		})
	}
}
