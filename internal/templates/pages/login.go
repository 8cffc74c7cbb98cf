package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mhedley/chatfront/internal/templates/layouts"
)

// LoginData drives the sign-in page.
type LoginData struct {
	// Created and PasswordReset show the post-registration and
	// post-reset success banners.
	Created       bool
	PasswordReset bool

	// Username is echoed back after a failed attempt.
	Username string

	// Error is the general error line (upstream message or fallback).
	Error string
}

// Login renders the sign-in page.
func Login(d LoginData) templ.Component {
	return layouts.Base("Sign in", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		wr := &writer{w: w}

		wr.raw(`<h1>Sign in</h1>`)
		if d.Created {
			wr.banner("success", "Your account has been created. You can now sign in.")
		}
		if d.PasswordReset {
			wr.banner("success", "Your password has been reset. You can now sign in.")
		}
		wr.banner("error", d.Error)

		wr.raw(`<form method="post" action="/login" novalidate>`)
		wr.csrfField(layouts.GetCSRFToken(ctx))
		wr.textInput("text", "username", "Username", d.Username, "")
		wr.passwordInput("password", "Password", "")
		wr.raw(`<button type="submit">Sign in</button></form>`)
		wr.raw(`<p><a href="/forgot-password">Forgotten your password?</a></p>`)
		wr.raw(`<p><a href="/register">Create an account</a></p>`)

		return wr.err
	}))
}
