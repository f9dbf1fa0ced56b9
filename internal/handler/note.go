package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/msomdec/notebook/internal/domain"
	"github.com/msomdec/notebook/internal/service"
	"github.com/msomdec/notebook/internal/view"
	"github.com/starfederation/datastar-go/datastar"
)

const notFoundURL = "/error?code=not_found"

// NoteHandler handles the note list and note CRUD requests.
type NoteHandler struct {
	notes *service.NoteService
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(notes *service.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// HandleHome lists the signed-in user's notes or sends anonymous visitors
// to the login page.
// GET /
func (h *NoteHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	h.renderHome(w, r, user, http.StatusOK, view.Form{})
}

// HandleCreate stores a new note.
// POST /note
func (h *NoteHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	in := service.NoteInput{Title: r.PostFormValue("title"), Content: r.PostFormValue("content")}
	if _, err := h.notes.Create(r.Context(), user.ID, in); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			form := view.Form{Values: formValues(r, "title", "content"), Errors: verr}
			h.renderHome(w, r, user, http.StatusUnprocessableEntity, form)
			return
		}
		serverError(w, r, "create note", err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleView shows one note.
// GET /note/{id}
func (h *NoteHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	note, ok := h.loadNote(w, r)
	if !ok {
		return
	}
	renderPage(w, r, view.NotePage(user, note))
}

// HandleEditPage renders the edit form prefilled with the note.
// GET /note/{id}/edit
func (h *NoteHandler) HandleEditPage(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	note, ok := h.loadNote(w, r)
	if !ok {
		return
	}
	form := view.Form{Values: map[string]string{"title": note.Title, "content": note.Content}}
	renderPage(w, r, view.NoteEditPage(user, note.ID, form))
}

// HandleEdit overwrites a note's title and content.
// POST /note/{id}/edit
func (h *NoteHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id, ok := noteID(r)
	if !ok {
		http.Redirect(w, r, notFoundURL, http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	in := service.NoteInput{Title: r.PostFormValue("title"), Content: r.PostFormValue("content")}
	if _, err := h.notes.Update(r.Context(), user.ID, id, in); err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			form := view.Form{Values: formValues(r, "title", "content"), Errors: verr}
			renderStatus(w, r, http.StatusUnprocessableEntity, view.NoteEditPage(user, id, form))
		case errors.Is(err, domain.ErrNotFound):
			http.Redirect(w, r, notFoundURL, http.StatusSeeOther)
		default:
			serverError(w, r, "update note", err)
		}
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleDelete removes a note. Datastar requests get an SSE patch that drops
// the note from the list; plain form posts are redirected home.
// POST /note/{id}/delete
func (h *NoteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id, ok := noteID(r)

	var err error
	if !ok {
		err = domain.ErrNotFound
	} else {
		err = h.notes.Delete(r.Context(), user.ID, id)
	}

	if isDatastarRequest(r) {
		sse := datastar.NewSSE(w, r)
		switch {
		case err == nil:
			sse.RemoveElementByID(view.NoteElementID(id))
		case errors.Is(err, domain.ErrNotFound):
			sse.Redirect(notFoundURL)
		default:
			logError(r, "delete note", err)
			sse.Redirect("/error")
		}
		return
	}

	switch {
	case err == nil:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, domain.ErrNotFound):
		http.Redirect(w, r, notFoundURL, http.StatusSeeOther)
	default:
		serverError(w, r, "delete note", err)
	}
}

// loadNote resolves the {id} path value to one of the user's notes. It
// redirects to the error page and reports false when there is none.
func (h *NoteHandler) loadNote(w http.ResponseWriter, r *http.Request) (*domain.Note, bool) {
	user := UserFromContext(r.Context())
	id, ok := noteID(r)
	if !ok {
		http.Redirect(w, r, notFoundURL, http.StatusSeeOther)
		return nil, false
	}

	note, err := h.notes.Get(r.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Redirect(w, r, notFoundURL, http.StatusSeeOther)
			return nil, false
		}
		serverError(w, r, "get note", err)
		return nil, false
	}
	return note, true
}

func (h *NoteHandler) renderHome(w http.ResponseWriter, r *http.Request, user *domain.User, status int, form view.Form) {
	notes, err := h.notes.ListByUser(r.Context(), user.ID)
	if err != nil {
		serverError(w, r, "list notes", err)
		return
	}
	renderStatus(w, r, status, view.HomePage(user, notes, form))
}

func noteID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

func isDatastarRequest(r *http.Request) bool {
	return r.Header.Get("Datastar-Request") == "true"
}
