// Package register implements account creation. Validation runs locally
// first; only a fully valid form is relayed to the upstream.
package register

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mhedley/chatfront/internal/i18n"
	"github.com/mhedley/chatfront/internal/middleware"
	"github.com/mhedley/chatfront/internal/templates/pages"
	"github.com/mhedley/chatfront/internal/upstream"
	"github.com/mhedley/chatfront/internal/validate"
)

// Relay is the slice of the upstream client this plugin uses.
type Relay interface {
	Call(ctx context.Context, call upstream.Call) (*upstream.Result, error)
}

// Handler handles the registration form.
type Handler struct {
	relay Relay
}

// NewHandler creates a register handler.
func NewHandler(relay Relay) *Handler {
	return &Handler{relay: relay}
}

// Form renders the registration page (GET /register).
func (h *Handler) Form(c echo.Context) error {
	return middleware.Render(c, http.StatusOK, pages.Register(pages.RegisterData{}))
}

// Submit processes the registration form (POST /register). On validation
// failure the form re-renders with inline errors and the submitted values
// echoed back (passwords excepted). On upstream failure the backend's own
// plain message is shown when it sent one.
func (h *Handler) Submit(c echo.Context) error {
	lang := middleware.Lang(c)

	data := pages.RegisterData{
		Username:    c.FormValue("username"),
		Email:       c.FormValue("email"),
		Day:         c.FormValue("date-of-birth-day"),
		Month:       c.FormValue("date-of-birth-month"),
		Year:        c.FormValue("date-of-birth-year"),
		FieldErrors: map[string]string{},
	}
	password := c.FormValue("password")
	confirm := c.FormValue("confirmPassword")

	if data.Username == "" {
		data.FieldErrors["username"] = i18n.T(lang, "usernameRequired")
	}
	if !validate.Email(data.Email) {
		data.FieldErrors["email"] = i18n.T(lang, "emailInvalid")
	}
	dob, ok := validate.DateOfBirth(data.Day, data.Month, data.Year, time.Now())
	if !ok {
		data.FieldErrors["dateOfBirth"] = i18n.T(lang, "dobInvalid")
	}
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
		return middleware.Render(c, http.StatusOK, pages.Register(data))
	}

	_, err := h.relay.Call(c.Request().Context(), upstream.Call{
		Method: http.MethodPost,
		Path:   "/account/register",
		Body: map[string]string{
			"username":        data.Username,
			"email":           data.Email,
			"password":        password,
			"confirmPassword": confirm,
			"dateOfBirth":     dob,
		},
		Lang: lang,
	})
	if err != nil {
		msg := i18n.T(lang, "registerError")
		var upErr *upstream.Error
		if errors.As(err, &upErr) {
			msg = upErr.Message(msg)
		}
		data.FieldErrors["general"] = msg
		return middleware.Render(c, http.StatusOK, pages.Register(data))
	}

	return c.Redirect(http.StatusSeeOther, "/login?created=true&lang="+lang)
}
