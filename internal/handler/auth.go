package handler

import (
	"errors"
	"net/http"

	"github.com/msomdec/notebook/internal/domain"
	"github.com/msomdec/notebook/internal/service"
	"github.com/msomdec/notebook/internal/session"
	"github.com/msomdec/notebook/internal/view"
)

// Login failures never say which of the two fields was wrong.
const invalidCredentialsMessage = "Invalid username or password. Please try again."

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *session.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

// HandleLoginPage renders the login form.
// GET /login
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, view.LoginPage(view.Form{}))
}

// HandleLogin verifies credentials and starts a session.
// POST /login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := view.Form{Values: formValues(r, "username")}
	user, err := h.auth.Login(r.Context(), service.LoginInput{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			form.Errors = verr
			renderStatus(w, r, http.StatusUnprocessableEntity, view.LoginPage(form))
		case errors.Is(err, domain.ErrUnauthorized):
			form.Message = invalidCredentialsMessage
			renderStatus(w, r, http.StatusUnauthorized, view.LoginPage(form))
		default:
			serverError(w, r, "login user", err)
		}
		return
	}

	if err := h.sessions.Establish(w, user); err != nil {
		serverError(w, r, "establish session", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleRegisterPage renders the registration form.
// GET /register
func (h *AuthHandler) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, view.RegisterPage(view.Form{}))
}

// HandleRegister creates an account and signs the new user in.
// POST /register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := view.Form{Values: formValues(r, "username", "email", "first_name", "last_name")}
	user, err := h.auth.Register(r.Context(), service.RegisterInput{
		Username:        r.PostFormValue("username"),
		Email:           r.PostFormValue("email"),
		FirstName:       r.PostFormValue("first_name"),
		LastName:        r.PostFormValue("last_name"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	})
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			form.Errors = verr
			renderStatus(w, r, http.StatusUnprocessableEntity, view.RegisterPage(form))
		case errors.Is(err, domain.ErrConflict):
			form.Message = conflictMessage(err)
			renderStatus(w, r, http.StatusConflict, view.RegisterPage(form))
		default:
			serverError(w, r, "register user", err)
		}
		return
	}

	if err := h.sessions.Establish(w, user); err != nil {
		serverError(w, r, "establish session", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout clears the session cookie. RequireAuth guards the route.
// GET /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// conflictMessage maps a conflict error to the text shown above a form.
func conflictMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		return "That email address is already taken."
	case errors.Is(err, domain.ErrDuplicateUsername):
		return "A user with that username already exists."
	case errors.Is(err, domain.ErrWrongPassword):
		return "The current password is incorrect."
	}
	return "That change conflicts with another account."
}
