package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mhedley/chatfront/internal/templates/layouts"
)

// AccountData drives the account page: the current details fetched from
// the upstream, pre-filled into the update form.
type AccountData struct {
	Username string
	Email    string
	Day      string
	Month    string
	Year     string

	// Updated shows the post-update success banner.
	Updated bool

	// LoadError is set when the detail fan-out failed; the form renders
	// empty in that case.
	LoadError string

	// FieldErrors is keyed by field name; "general" renders as a banner.
	FieldErrors map[string]string
}

// Account renders the account details and update form.
func Account(d AccountData) templ.Component {
	return layouts.Base("Your account", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		wr := &writer{w: w}

		wr.raw(`<h1>Your account</h1>`)
		if d.Updated {
			wr.banner("success", "Your account has been updated.")
		}
		wr.banner("error", d.LoadError)
		wr.banner("error", d.FieldErrors["general"])

		wr.raw(`<form method="post" action="/account/update" novalidate>`)
		wr.csrfField(layouts.GetCSRFToken(ctx))
		wr.textInput("text", "username", "Username", d.Username, d.FieldErrors["username"])
		wr.textInput("email", "email", "Email address", d.Email, d.FieldErrors["email"])
		wr.dobInputs(d.Day, d.Month, d.Year, d.FieldErrors["dateOfBirth"])
		wr.raw(`<p class="form-hint">Leave the password fields blank to keep your current password.</p>`)
		wr.passwordInput("password", "New password", d.FieldErrors["password"])
		wr.passwordInput("confirmPassword", "Confirm new password", d.FieldErrors["confirmPassword"])
		wr.raw(`<button type="submit">Save changes</button></form>`)

		return wr.err
	}))
}
