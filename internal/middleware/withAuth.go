// Package middleware provides the HTTP middleware chain: request logging,
// gzip, principal authentication and the trusted-subnet gate.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/atinyakov/go-link-service/internal/app/service"
	"github.com/atinyakov/go-link-service/internal/storage"
)

// ContextKey is a private key type for request-context values.
type ContextKey string

// PrincipalKey holds the authenticated *storage.PrincipalRecord, when any.
const PrincipalKey ContextKey = "principal"

// PrincipalSource resolves a principal id to its directory entry.
type PrincipalSource interface {
	Find(ctx context.Context, id string) (*storage.PrincipalRecord, error)
}

// TokenVerifier checks a raw token and returns its claims.
type TokenVerifier interface {
	ParseToken(tokenString string) (*service.Claims, error)
}

// PrincipalFromContext returns the authenticated principal, if the request
// carried a valid token for an active directory entry.
func PrincipalFromContext(ctx context.Context) (*storage.PrincipalRecord, bool) {
	p, ok := ctx.Value(PrincipalKey).(*storage.PrincipalRecord)
	return p, ok
}

// InjectPrincipal places a principal on the request context. Exported for
// handler tests.
func InjectPrincipal(req *http.Request, p *storage.PrincipalRecord) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), PrincipalKey, p))
}

// tokenFromRequest reads the token cookie or the Authorization bearer header.
func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// WithAuth resolves the request's principal. A missing or invalid token, an
// unknown principal, or an inactive one all degrade to anonymous; downstream
// guards decide whether anonymous is acceptable.
func WithAuth(verifier TokenVerifier, principals PrincipalSource, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.ParseToken(token)
			if err != nil {
				logger.Debug("token rejected", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			principal, err := principals.Find(r.Context(), claims.PrincipalID)
			if err != nil || !principal.Active {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, InjectPrincipal(r, principal))
		})
	}
}

func denyJSON(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}

// RequireUser rejects anonymous requests.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := PrincipalFromContext(r.Context()); !ok {
			denyJSON(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects anonymous requests and non-administrator roles.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok {
			denyJSON(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if principal.Role != storage.RoleAdmin {
			denyJSON(w, http.StatusForbidden, "administrator role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
