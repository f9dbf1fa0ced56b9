package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/msomdec/notebook/internal/domain"
)

// bcrypt rejects passwords longer than this many bytes.
const maxPasswordBytes = 72

// RegisterInput is the registration form. First and last name are optional.
type RegisterInput struct {
	Username        string `form:"username" validate:"required,max=80"`
	Email           string `form:"email" validate:"required,email,max=120"`
	FirstName       string `form:"first_name" validate:"omitempty,max=50"`
	LastName        string `form:"last_name" validate:"omitempty,max=50"`
	Password        string `form:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

// LoginInput is the login form.
type LoginInput struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// ProfileInput is the profile edit form. The password fields are optional;
// NewPassword is only applied when it is non-empty.
type ProfileInput struct {
	Username        string `form:"username" validate:"required,max=80"`
	Email           string `form:"email" validate:"required,email,max=120"`
	FirstName       string `form:"first_name" validate:"required,max=50"`
	LastName        string `form:"last_name" validate:"required,max=50"`
	OldPassword     string `form:"old_password"`
	NewPassword     string `form:"new_password" validate:"omitempty,min=6,max=72"`
	ConfirmPassword string `form:"confirm_password" validate:"eqfield=NewPassword"`
}

// NoteInput is the note create/edit form.
type NoteInput struct {
	Title   string `form:"title" validate:"required,max=80"`
	Content string `form:"content" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their form names so views can look them up directly.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("form"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// validateInput runs struct validation and converts failures into a
// *domain.ValidationError keyed by form field name.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate input: %w", err)
	}

	verr := domain.NewValidationError()
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), fieldMessage(fe))
	}
	return verr
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Must be at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	case "eqfield":
		return "Passwords do not match."
	}
	return "Invalid value."
}

func trimFields(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
