package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/wonwonleywon/roster-api/pkg/ports"
)

type ctxKey string

// adminKey carries the authenticated admin username through the request context.
const adminKey ctxKey = "admin"

type Middleware struct {
	service    ports.AuthService
	cookieName string
}

func NewMiddleware(service ports.AuthService, cookieName string) *Middleware {
	return &Middleware{service: service, cookieName: cookieName}
}

// RequireAdmin verifies the caller's proof of identity before letting the
// request through to an admin route. The proof comes from the
// `Authorization: Bearer` header (token mode) or the auth cookie (both
// modes; the OAuth callback always sets a cookie).
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		proof := bearerToken(r)
		if proof == "" {
			if cookie, err := r.Cookie(m.cookieName); err == nil {
				proof = cookie.Value
			}
		}
		if proof == "" {
			errorJSON(w, http.StatusUnauthorized, "Token missing")
			return
		}

		username, err := m.service.Verify(r.Context(), proof)
		if err != nil {
			errorJSON(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), adminKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminFromContext returns the authenticated admin username, if any.
func AdminFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(adminKey).(string)
	return username, ok
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}
