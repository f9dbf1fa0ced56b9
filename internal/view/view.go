// Package view holds the templ components for every HTML page.
package view

import (
	"strconv"

	"github.com/a-h/templ"
	"github.com/msomdec/notebook/internal/domain"
)

// Form carries submitted values and errors back into a re-rendered form.
type Form struct {
	Values  map[string]string
	Errors  *domain.ValidationError
	Message string
}

// Value returns the submitted value for name.
func (f Form) Value(name string) string {
	return f.Values[name]
}

// Error returns the field error for name.
func (f Form) Error(name string) string {
	return f.Errors.Field(name)
}

// NoteElementID is the DOM id of a note's entry in the home list.
func NoteElementID(id int64) string {
	return "note-" + strconv.FormatInt(id, 10)
}

func noteURL(id int64, suffix string) templ.SafeURL {
	return templ.SafeURL("/note/" + strconv.FormatInt(id, 10) + suffix)
}

// deleteAction is the datastar expression that posts a note's delete.
func deleteAction(id int64) string {
	return "@post('/note/" + strconv.FormatInt(id, 10) + "/delete')"
}

// authorName falls back to the username when no name was given.
func authorName(u *domain.User) string {
	if name := u.FullName(); name != "" {
		return name
	}
	return u.Username
}

func profileRows(u *domain.User) [][2]string {
	return [][2]string{
		{"Username", u.Username},
		{"Email", u.Email},
		{"First name", u.FirstName},
		{"Last name", u.LastName},
	}
}
