package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mhedley/chatfront/internal/templates/layouts"
)

// ForgotPasswordData drives the enter-email step of the reset flow.
type ForgotPasswordData struct {
	Email       string
	FieldErrors map[string]string
}

// ForgotPassword renders the enter-email page.
func ForgotPassword(d ForgotPasswordData) templ.Component {
	return layouts.Base("Forgotten password", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		wr := &writer{w: w}

		wr.raw(`<h1>Forgotten password</h1>`)
		wr.raw(`<p>Enter your email address and we will send you a one-time password.</p>`)
		wr.banner("error", d.FieldErrors["general"])

		wr.raw(`<form method="post" action="/forgot-password/enter-email" novalidate>`)
		wr.csrfField(layouts.GetCSRFToken(ctx))
		wr.textInput("email", "email", "Email address", d.Email, d.FieldErrors["email"])
		wr.raw(`<button type="submit">Send one-time password</button></form>`)

		return wr.err
	}))
}

// VerifyOTPData drives the one-time password step.
type VerifyOTPData struct {
	// Sent shows the "a new code has been sent" banner after a resend.
	Sent bool

	OneTimePassword string
	FieldErrors     map[string]string

	// Error is the resend failure line, kept separate from the verify
	// form's own errors.
	Error string
}

// VerifyOTP renders the one-time password entry page.
func VerifyOTP(d VerifyOTPData) templ.Component {
	return layouts.Base("Check your email", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		wr := &writer{w: w}

		wr.raw(`<h1>Check your email</h1>`)
		wr.raw(`<p>We have sent a one-time password to your email address.</p>`)
		if d.Sent {
			wr.banner("success", "A new one-time password has been sent.")
		}
		wr.banner("error", d.Error)
		wr.banner("error", d.FieldErrors["general"])

		wr.raw(`<form method="post" action="/forgot-password/verify-otp" novalidate>`)
		wr.csrfField(layouts.GetCSRFToken(ctx))
		wr.textInput("text", "oneTimePassword", "One-time password", d.OneTimePassword, d.FieldErrors["oneTimePassword"])
		wr.raw(`<button type="submit">Continue</button></form>`)

		wr.raw(`<form method="post" action="/forgot-password/resend-otp" novalidate>`)
		wr.csrfField(layouts.GetCSRFToken(ctx))
		wr.raw(`<button type="submit" class="link-button">Send a new code</button></form>`)

		return wr.err
	}))
}

// ResetPasswordData drives the final choose-a-new-password step.
type ResetPasswordData struct {
	FieldErrors map[string]string
}

// ResetPassword renders the new password page.
func ResetPassword(d ResetPasswordData) templ.Component {
	return layouts.Base("Choose a new password", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		wr := &writer{w: w}

		wr.raw(`<h1>Choose a new password</h1>`)
		wr.banner("error", d.FieldErrors["general"])

		wr.raw(`<form method="post" action="/forgot-password/reset-password" novalidate>`)
		wr.csrfField(layouts.GetCSRFToken(ctx))
		wr.passwordInput("password", "New password", d.FieldErrors["password"])
		wr.passwordInput("confirmPassword", "Confirm new password", d.FieldErrors["confirmPassword"])
		wr.raw(`<button type="submit">Reset password</button></form>`)

		return wr.err
	}))
}
