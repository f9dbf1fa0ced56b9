package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/notebook/internal/view"
)

// errorPages maps the code query parameter of /error to what is shown.
// Unknown codes fall back to the generic entry.
var errorPages = map[string]struct {
	status         int
	title, message string
}{
	"":          {http.StatusOK, "Something went wrong", "The request could not be completed."},
	"not_found": {http.StatusNotFound, "Not found", "That note does not exist."},
}

// HandleError renders the generic error page.
// GET /error
func HandleError(w http.ResponseWriter, r *http.Request) {
	page, ok := errorPages[r.URL.Query().Get("code")]
	if !ok {
		page = errorPages[""]
	}
	renderStatus(w, r, page.status, view.ErrorPage(UserFromContext(r.Context()), page.title, page.message))
}

func logError(r *http.Request, msg string, err error) {
	slog.ErrorContext(r.Context(), msg, "error", err, "request_id", RequestIDFromContext(r.Context()))
}
