package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/safar-uz/safar-api/internal/api"
)

type contextKey string

const claimsContextKey contextKey = "auth_claims"

// Authenticate is chi middleware that requires a valid bearer access token
// and stores its claims in the request context.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			api.ErrorResponse(w, r, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := h.service.ValidateAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			api.ErrorResponse(w, r, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromContext returns the authenticated claims stored by Authenticate.
func ClaimsFromContext(ctx context.Context) (*api.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*api.Claims)
	return claims, ok
}
