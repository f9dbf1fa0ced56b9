package handler

import (
	"net/http"

	"github.com/msomdec/notebook/internal/service"
	"github.com/msomdec/notebook/internal/session"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	db Pinger,
	sessions *session.Manager,
	auth *service.AuthService,
	profiles *service.ProfileService,
	notes *service.NoteService,
) {
	authHandler := NewAuthHandler(auth, sessions)
	noteHandler := NewNoteHandler(notes)
	profileHandler := NewProfileHandler(profiles)

	requireAuth := func(fn http.HandlerFunc) http.Handler { return RequireAuth(sessions, fn) }
	optionalAuth := func(fn http.HandlerFunc) http.Handler { return OptionalAuth(sessions, fn) }

	mux.HandleFunc("GET /healthz", HandleHealthz(db))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /error", optionalAuth(HandleError))

	mux.Handle("GET /{$}", optionalAuth(noteHandler.HandleHome))

	mux.HandleFunc("GET /register", authHandler.HandleRegisterPage)
	mux.HandleFunc("POST /register", authHandler.HandleRegister)
	mux.HandleFunc("GET /login", authHandler.HandleLoginPage)
	mux.HandleFunc("POST /login", authHandler.HandleLogin)
	mux.Handle("GET /logout", requireAuth(authHandler.HandleLogout))

	mux.Handle("POST /note", requireAuth(noteHandler.HandleCreate))
	mux.Handle("GET /note/{id}", requireAuth(noteHandler.HandleView))
	mux.Handle("GET /note/{id}/edit", requireAuth(noteHandler.HandleEditPage))
	mux.Handle("POST /note/{id}/edit", requireAuth(noteHandler.HandleEdit))
	mux.Handle("POST /note/{id}/delete", requireAuth(noteHandler.HandleDelete))

	mux.Handle("GET /profile", requireAuth(profileHandler.HandleProfile))
	mux.Handle("GET /profile/edit", requireAuth(profileHandler.HandleEditPage))
	mux.Handle("POST /profile/edit", requireAuth(profileHandler.HandleEdit))
}
