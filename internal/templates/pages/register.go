package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mhedley/chatfront/internal/templates/layouts"
)

// RegisterData drives the registration page. Submitted values (except
// passwords) are echoed back on validation failure.
type RegisterData struct {
	Username string
	Email    string
	Day      string
	Month    string
	Year     string

	// FieldErrors is keyed by field name; the "general" key renders as
	// a banner above the form.
	FieldErrors map[string]string
}

// Register renders the registration page.
func Register(d RegisterData) templ.Component {
	return layouts.Base("Create an account", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		wr := &writer{w: w}

		wr.raw(`<h1>Create an account</h1>`)
		wr.banner("error", d.FieldErrors["general"])

		wr.raw(`<form method="post" action="/register" novalidate>`)
		wr.csrfField(layouts.GetCSRFToken(ctx))
		wr.textInput("text", "username", "Username", d.Username, d.FieldErrors["username"])
		wr.textInput("email", "email", "Email address", d.Email, d.FieldErrors["email"])
		wr.dobInputs(d.Day, d.Month, d.Year, d.FieldErrors["dateOfBirth"])
		wr.passwordInput("password", "Password", d.FieldErrors["password"])
		wr.passwordInput("confirmPassword", "Confirm password", d.FieldErrors["confirmPassword"])
		wr.raw(`<button type="submit">Create account</button></form>`)

		return wr.err
	}))
}
