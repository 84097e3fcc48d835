package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"clinic-management-api/internal/auth"
)

type ctxKey string

const authCtxKey ctxKey = "authctx"

// AuthContext is the resolved caller identity, produced once per request from
// the bearer token. Identity is the account email (patients, doctors) or
// username (admins).
type AuthContext struct {
	Identity string
	Role     string
}

// FromContext returns the AuthContext placed by the Auth middleware.
func FromContext(ctx context.Context) (AuthContext, bool) {
	ac, ok := ctx.Value(authCtxKey).(AuthContext)
	return ac, ok
}

// WithAuthContext injects an AuthContext directly; used by tests.
func WithAuthContext(ctx context.Context, ac AuthContext) context.Context {
	return context.WithValue(ctx, authCtxKey, ac)
}

// Auth validates the Authorization: Bearer <jwt> header and stores the
// resolved AuthContext in the request context.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if raw == "" || raw == r.Header.Get("Authorization") {
				unauthorized(w, "no token")
				return
			}
			claims, err := auth.ParseToken(raw, secret)
			if err != nil {
				unauthorized(w, "bad token")
				return
			}
			ctx := WithAuthContext(r.Context(), AuthContext{
				Identity: claims.Identity,
				Role:     claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects requests whose AuthContext role differs.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ac, ok := FromContext(r.Context())
			if !ok {
				unauthorized(w, "no token")
				return
			}
			if ac.Role != role {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(map[string]string{"error": "forbidden"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
