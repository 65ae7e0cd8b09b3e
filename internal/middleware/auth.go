package middleware

import (
	"net/http"
	"strings"

	"github.com/mementoapp/memento/internal/apperr"
	"github.com/mementoapp/memento/internal/ctxkeys"
	"github.com/mementoapp/memento/internal/respond"
	"github.com/mementoapp/memento/internal/service"
)

// bearerToken returns the token from an "Authorization: Bearer <token>" header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// AuthMiddleware checks for a bearer token and adds the user to context if valid
func AuthMiddleware(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				// No token, continue without auth
				next.ServeHTTP(w, r)
				return
			}

			user, err := authService.Authenticate(r.Context(), token)
			if err != nil {
				// Store failures surface as 500, not 401
				if apperr.Is(err, apperr.KindInternal) {
					respond.Error(w, r, err)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that AuthMiddleware did not authenticate
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user == nil {
			if _, ok := bearerToken(r); ok {
				respond.Error(w, r, apperr.Unauthorized("Could not validate credentials"))
				return
			}
			respond.Error(w, r, apperr.Unauthorized("Not authenticated"))
			return
		}

		next.ServeHTTP(w, r)
	}
}
