package middleware

import (
	"context"
	"net/http"

	"github.com/identkit/identkit"
)

type identityContextKey struct{}

// IdentityFromContext returns the identity an admitting guard attached to
// the request context.
func IdentityFromContext(ctx context.Context) (identkit.Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(identkit.Identity)
	return id, ok
}

// Protect wraps a protected subtree. Every request triggers a fresh guard
// evaluation; the handler only runs after an admit, with the confirmed
// identity in the request context. Denied requests are redirected to the
// login route and never reach the handler.
func Protect(guard *identkit.Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if guard == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			decision := guard.Check(r.Context())
			if !decision.Admitted() {
				http.Redirect(w, r, decision.RedirectTo, http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey{}, decision.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Logout serves the logout action. The redirect target always comes from
// the guard's decision; local state is cleared even when the server-side
// call fails.
func Logout(guard *identkit.Guard) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if guard == nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		decision := guard.Logout(r.Context())
		http.Redirect(w, r, decision.RedirectTo, http.StatusFound)
	})
}
