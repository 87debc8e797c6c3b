package middleware

import (
	"context"
	"net/http"
	"strings"

	"staffpay/internal/domain/auth"
	"staffpay/internal/requestctx"
	"staffpay/internal/transport/http/api"
)

type TokenVerifier interface {
	ParseToken(token string) (auth.UserContext, error)
	VerifyUserAuthorization(ctx context.Context, username, requiredRole string) bool
}

// Auth attaches the bearer token's user to the context when the stored user
// still holds the token's role. Anything else passes through anonymously;
// RequireAuth rejects those requests.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := verifier.ParseToken(parts[1])
			if err != nil || !verifier.VerifyUserAuthorization(r.Context(), user.Username, user.Role) {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(requestctx.WithUser(r.Context(), user)))
		})
	}
}

func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requestctx.GetUser(r.Context()); !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireWriter admits ADMIN and HR users only.
func RequireWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := requestctx.GetUser(r.Context())
		if !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
			return
		}
		if !user.CanWrite() {
			api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", requestctx.GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}
