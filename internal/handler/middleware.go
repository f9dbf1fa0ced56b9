package handler

import (
	"net/http"

	"github.com/msomdec/notebook/internal/session"
	"github.com/msomdec/notebook/internal/view"
)

// UserFromContext is session.FromContext, re-exported for handler callers.
var UserFromContext = session.FromContext

// RequireAuth is middleware that protects routes requiring authentication.
// It resolves the session cookie and injects the user into the request
// context. Anonymous requests get a 401 with the login page.
func RequireAuth(sessions *session.Manager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := sessions.Current(r)
		if err != nil {
			serverError(w, r, "resolve session", err)
			return
		}
		if user == nil {
			renderStatus(w, r, http.StatusUnauthorized, view.LoginPage(view.Form{Message: "Please log in to access this page."}))
			return
		}

		next.ServeHTTP(w, r.WithContext(session.WithUser(r.Context(), user)))
	})
}

// OptionalAuth is middleware that attempts to authenticate but does not block
// unauthenticated requests. Store failures are logged and the request
// continues anonymously.
func OptionalAuth(sessions *session.Manager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := sessions.Current(r)
		if err != nil {
			logError(r, "resolve session", err)
		}
		if user != nil {
			r = r.WithContext(session.WithUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}
