package middleware

import (
	"net/http"

	"github.com/identkit/identkit"
)

// VerifyEmail serves the route an emailed verification link lands on. The
// flow's redirects become HTTP redirects; an idle run (marker present, no
// token yet) renders nothing and leaves the visitor on the page; a rejected
// token answers 401 without redirecting.
func VerifyEmail(flow *identkit.VerificationFlow) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if flow == nil {
			http.Error(w, "verification unavailable", http.StatusServiceUnavailable)
			return
		}

		result := flow.Run(r.Context(), r.URL.Query())
		if result.RedirectTo != "" {
			http.Redirect(w, r, result.RedirectTo, http.StatusFound)
			return
		}

		switch result.Outcome {
		case identkit.OutcomeIdle:
			w.WriteHeader(http.StatusOK)
		case identkit.OutcomeFailed:
			http.Error(w, "verification failed", http.StatusUnauthorized)
		default:
			w.WriteHeader(http.StatusOK)
		}
	})
}
