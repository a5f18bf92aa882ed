package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/coursehub-dev/coursehub/shared/domain"
)

type contextKey string

const userContextKey contextKey = "user"

// Identity resolves the acting user from the gateway-provided headers.
// Authentication is handled upstream; this service only trusts the resolved
// identity it is handed. Requests without an identity pass through with a nil
// user so that read-only endpoints keep working.
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			idRaw := r.Header.Get("X-User-Id")
			if idRaw == "" {
				next.ServeHTTP(w, r)
				return
			}
			id, err := strconv.ParseInt(idRaw, 10, 64)
			if err != nil {
				http.Error(w, "Invalid X-User-Id header", http.StatusBadRequest)
				return
			}
			user := &domain.User{
				Id:       id,
				Username: r.Header.Get("X-User-Name"),
				Avatar:   r.Header.Get("X-User-Avatar"),
			}
			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext returns the acting user or nil when the request carried
// no identity.
func GetUserFromContext(r *http.Request) *domain.User {
	user, _ := r.Context().Value(userContextKey).(*domain.User)
	return user
}
