package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/msomdec/notebook/internal/view"
)

// renderPage writes an HTML component. The status, if any, must already be set.
func renderPage(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		logError(r, "render page", err)
	}
}

// renderStatus sets status and writes c.
func renderStatus(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logError(r, "render page", err)
	}
}

// serverError logs an unexpected failure and answers 500.
func serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	logError(r, msg, err)
	renderStatus(w, r, http.StatusInternalServerError,
		view.ErrorPage(UserFromContext(r.Context()), "Something went wrong", "An unexpected error occurred. Please try again."))
}

// formValues copies the named fields out of a parsed form.
func formValues(r *http.Request, names ...string) map[string]string {
	values := make(map[string]string, len(names))
	for _, name := range names {
		values[name] = r.PostFormValue(name)
	}
	return values
}
