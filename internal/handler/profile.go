package handler

import (
	"errors"
	"net/http"

	"github.com/msomdec/notebook/internal/domain"
	"github.com/msomdec/notebook/internal/service"
	"github.com/msomdec/notebook/internal/view"
)

// ProfileHandler shows and edits the signed-in user's profile.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// HandleProfile renders the profile.
// GET /profile
func (h *ProfileHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, view.ProfilePage(UserFromContext(r.Context())))
}

// HandleEditPage renders the edit form prefilled with the current values.
// GET /profile/edit
func (h *ProfileHandler) HandleEditPage(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	form := view.Form{Values: map[string]string{
		"username":   user.Username,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	}}
	renderPage(w, r, view.ProfileEditPage(user, form))
}

// HandleEdit applies a profile edit. Nothing is stored unless every check
// passes.
// POST /profile/edit
func (h *ProfileHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := view.Form{Values: formValues(r, "username", "email", "first_name", "last_name")}
	_, err := h.profiles.Update(r.Context(), user, service.ProfileInput{
		Username:        r.PostFormValue("username"),
		Email:           r.PostFormValue("email"),
		FirstName:       r.PostFormValue("first_name"),
		LastName:        r.PostFormValue("last_name"),
		OldPassword:     r.PostFormValue("old_password"),
		NewPassword:     r.PostFormValue("new_password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	})
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			form.Errors = verr
			renderStatus(w, r, http.StatusUnprocessableEntity, view.ProfileEditPage(user, form))
		case errors.Is(err, domain.ErrConflict):
			form.Message = conflictMessage(err)
			renderStatus(w, r, http.StatusConflict, view.ProfileEditPage(user, form))
		case errors.Is(err, domain.ErrUnauthorized):
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		default:
			serverError(w, r, "update profile", err)
		}
		return
	}

	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}
