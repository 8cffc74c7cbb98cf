// Package reset implements the three-step forgotten-password flow:
// enter-email, verify-otp, reset-password. Flow state (the entered email
// and the verified one-time password) lives in the local session between
// steps; the upstream re-validates the pair on the final call.
package reset

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mhedley/chatfront/internal/i18n"
	"github.com/mhedley/chatfront/internal/middleware"
	"github.com/mhedley/chatfront/internal/session"
	"github.com/mhedley/chatfront/internal/templates/pages"
	"github.com/mhedley/chatfront/internal/upstream"
	"github.com/mhedley/chatfront/internal/validate"
)

// Relay is the slice of the upstream client this plugin uses.
type Relay interface {
	Call(ctx context.Context, call upstream.Call) (*upstream.Result, error)
}

// Sessions is the slice of the session store this plugin uses.
type Sessions interface {
	Save(ctx context.Context, sess *session.LocalSession) error
}

// Handler handles the forgotten-password flow.
type Handler struct {
	relay    Relay
	sessions Sessions
}

// NewHandler creates a reset handler.
func NewHandler(relay Relay, sessions Sessions) *Handler {
	return &Handler{relay: relay, sessions: sessions}
}

// EmailForm renders the enter-email step (GET /forgot-password).
func (h *Handler) EmailForm(c echo.Context) error {
	return middleware.Render(c, http.StatusOK, pages.ForgotPassword(pages.ForgotPasswordData{}))
}

// SubmitEmail processes the enter-email step. A successful upstream call
// records the email in the session and moves to the OTP step.
func (h *Handler) SubmitEmail(c echo.Context) error {
	lang := middleware.Lang(c)

	data := pages.ForgotPasswordData{
		Email:       c.FormValue("email"),
		FieldErrors: map[string]string{},
	}
	if !validate.Email(data.Email) {
		data.FieldErrors["email"] = i18n.T(lang, "emailInvalid")
		return middleware.Render(c, http.StatusOK, pages.ForgotPassword(data))
	}

	_, err := h.relay.Call(c.Request().Context(), upstream.Call{
		Method: http.MethodPost,
		Path:   "/forgot-password/enter-email",
		Body:   map[string]string{"email": data.Email},
		Lang:   lang,
	})
	if err != nil {
		msg := i18n.T(lang, "forgotPasswordError")
		var upErr *upstream.Error
		if errors.As(err, &upErr) {
			msg = upErr.Message(msg)
		}
		data.FieldErrors["general"] = msg
		return middleware.Render(c, http.StatusOK, pages.ForgotPassword(data))
	}

	sess := session.FromContext(c)
	sess.SetResetEmail(data.Email)
	if err := h.sessions.Save(c.Request().Context(), sess); err != nil {
		slog.Error("persisting reset email", slog.Any("error", err))
		data.FieldErrors["general"] = i18n.T(lang, "forgotPasswordError")
		return middleware.Render(c, http.StatusOK, pages.ForgotPassword(data))
	}

	return c.Redirect(http.StatusSeeOther, "/forgot-password/verify-otp?lang="+lang)
}

// OTPForm renders the one-time password step (GET
// /forgot-password/verify-otp). The sent flag shows the resend banner.
func (h *Handler) OTPForm(c echo.Context) error {
	return middleware.Render(c, http.StatusOK, pages.VerifyOTP(pages.VerifyOTPData{
		Sent: c.QueryParam("sent") == "true",
	}))
}

// SubmitOTP processes the one-time password step. The upstream verifies
// the email/OTP pair; on success the OTP is recorded in the session so
// the final step can replay it.
func (h *Handler) SubmitOTP(c echo.Context) error {
	lang := middleware.Lang(c)

	data := pages.VerifyOTPData{
		OneTimePassword: c.FormValue("oneTimePassword"),
		FieldErrors:     map[string]string{},
	}

	sess := session.FromContext(c)
	email, _ := sess.PendingReset()
	if email == "" {
		data.FieldErrors["general"] = i18n.T(lang, "noEmailInSession")
		return middleware.Render(c, http.StatusOK, pages.VerifyOTP(data))
	}
	if data.OneTimePassword == "" {
		data.FieldErrors["oneTimePassword"] = i18n.T(lang, "otpRequired")
		return middleware.Render(c, http.StatusOK, pages.VerifyOTP(data))
	}

	_, err := h.relay.Call(c.Request().Context(), upstream.Call{
		Method: http.MethodPost,
		Path:   "/forgot-password/verify-otp",
		Body: map[string]string{
			"email": email,
			"otp":   data.OneTimePassword,
		},
		Lang: lang,
	})
	if err != nil {
		msg := i18n.T(lang, "otpVerifyError")
		var upErr *upstream.Error
		if errors.As(err, &upErr) {
			msg = upErr.Message(msg)
		}
		data.FieldErrors["general"] = msg
		return middleware.Render(c, http.StatusOK, pages.VerifyOTP(data))
	}

	sess.VerifiedOTP = data.OneTimePassword
	if err := h.sessions.Save(c.Request().Context(), sess); err != nil {
		slog.Error("persisting verified otp", slog.Any("error", err))
		data.FieldErrors["general"] = i18n.T(lang, "otpVerifyError")
		return middleware.Render(c, http.StatusOK, pages.VerifyOTP(data))
	}

	return c.Redirect(http.StatusSeeOther, "/forgot-password/reset-password?lang="+lang)
}

// ResendOTP asks the upstream to send a fresh one-time password to the
// email already held in the session (POST /forgot-password/resend-otp).
func (h *Handler) ResendOTP(c echo.Context) error {
	lang := middleware.Lang(c)

	email, _ := session.FromContext(c).PendingReset()
	if !validate.Email(email) {
		return middleware.Render(c, http.StatusOK, pages.VerifyOTP(pages.VerifyOTPData{
			Error: i18n.T(lang, "noEmailInSession"),
		}))
	}

	_, err := h.relay.Call(c.Request().Context(), upstream.Call{
		Method: http.MethodPost,
		Path:   "/forgot-password/resend-otp",
		Body:   map[string]string{"email": email},
		Lang:   lang,
	})
	if err != nil {
		msg := i18n.T(lang, "forgotPasswordError")
		var upErr *upstream.Error
		if errors.As(err, &upErr) {
			msg = upErr.Message(msg)
		}
		return middleware.Render(c, http.StatusOK, pages.VerifyOTP(pages.VerifyOTPData{
			Error: msg,
		}))
	}

	return c.Redirect(http.StatusSeeOther, "/forgot-password/verify-otp?sent=true&lang="+lang)
}

// PasswordForm renders the final choose-a-new-password step (GET
// /forgot-password/reset-password).
func (h *Handler) PasswordForm(c echo.Context) error {
	return middleware.Render(c, http.StatusOK, pages.ResetPassword(pages.ResetPasswordData{}))
}

// SubmitPassword processes the final step. The email and verified OTP
// from the session accompany the new password so the upstream can check
// the whole chain again. Flow state stays in the session afterwards; it
// is overwritten by the next flow and expires with the session.
func (h *Handler) SubmitPassword(c echo.Context) error {
	lang := middleware.Lang(c)

	data := pages.ResetPasswordData{FieldErrors: map[string]string{}}
	password := c.FormValue("password")
	confirm := c.FormValue("confirmPassword")

	switch {
	case password == "":
		data.FieldErrors["password"] = i18n.T(lang, "passwordRequired")
	case !validate.StrongPassword(password):
		data.FieldErrors["password"] = i18n.T(lang, "passwordCriteria")
	}
	switch {
	case confirm == "":
		data.FieldErrors["confirmPassword"] = i18n.T(lang, "confirmPasswordRequired")
	case confirm != password:
		data.FieldErrors["confirmPassword"] = i18n.T(lang, "passwordsMismatch")
	}
	if len(data.FieldErrors) > 0 {
		return middleware.Render(c, http.StatusOK, pages.ResetPassword(data))
	}

	email, otp := session.FromContext(c).PendingReset()
	if email == "" || otp == "" {
		data.FieldErrors["general"] = i18n.T(lang, "resetSessionMissing")
		return middleware.Render(c, http.StatusOK, pages.ResetPassword(data))
	}

	_, err := h.relay.Call(c.Request().Context(), upstream.Call{
		Method: http.MethodPost,
		Path:   "/forgot-password/reset-password",
		Body: map[string]string{
			"email":           email,
			"otp":             otp,
			"password":        password,
			"confirmPassword": confirm,
		},
		Lang: lang,
	})
	if err != nil {
		msg := i18n.T(lang, "resetError")
		var upErr *upstream.Error
		if errors.As(err, &upErr) {
			msg = upErr.Message(msg)
		}
		data.FieldErrors["general"] = msg
		return middleware.Render(c, http.StatusOK, pages.ResetPassword(data))
	}

	return c.Redirect(http.StatusSeeOther, "/login?passwordReset=true&lang="+lang)
}
