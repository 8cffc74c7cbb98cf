// Package account implements viewing and updating account details. The
// details page fans out to the backend's per-field read endpoints in
// parallel; the update form relays a single mutating call.
package account

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

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
	Get(ctx context.Context, path, sessionCookie, lang string) ([]byte, error)
}

// Handler handles the account pages.
type Handler struct {
	relay Relay
}

// NewHandler creates an account handler.
func NewHandler(relay Relay) *Handler {
	return &Handler{relay: relay}
}

// Details renders the account page (GET /account). The five field reads
// run in parallel; any single failure abandons the lot and renders the
// load-error banner instead of a partially filled form.
func (h *Handler) Details(c echo.Context) error {
	lang := middleware.Lang(c)
	cookie := session.FromContext(c).BridgedCookie()

	data := pages.AccountData{
		Updated: c.QueryParam("updated") == "true",
	}

	g, ctx := errgroup.WithContext(c.Request().Context())
	fields := []struct {
		path string
		dst  *string
	}{
		{"/account/username", &data.Username},
		{"/account/email", &data.Email},
		{"/account/date-of-birth/day", &data.Day},
		{"/account/date-of-birth/month", &data.Month},
		{"/account/date-of-birth/year", &data.Year},
	}
	for _, f := range fields {
		f := f
		g.Go(func() error {
			body, err := h.relay.Get(ctx, f.path, cookie, lang)
			if err != nil {
				return err
			}
			*f.dst = upstream.Text(body)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.Error("loading account details", slog.Any("error", err))
		data = pages.AccountData{
			Updated:   data.Updated,
			LoadError: i18n.T(lang, "accountLoadError"),
		}
	}

	return middleware.Render(c, http.StatusOK, pages.Account(data))
}

// Update processes the account update form (POST /account/update). The
// password is optional: blank keeps the current one, non-blank must meet
// the strength rule and match its confirmation. The route is reachable
// without a principal, so the bridged cookie is checked explicitly and a
// missing one renders the session-expired message without an upstream
// round trip.
func (h *Handler) Update(c echo.Context) error {
	lang := middleware.Lang(c)

	data := pages.AccountData{
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
	if password != "" || confirm != "" {
		if !validate.StrongPassword(password) {
			data.FieldErrors["password"] = i18n.T(lang, "passwordCriteria")
		}
		if confirm != password {
			data.FieldErrors["confirmPassword"] = i18n.T(lang, "passwordsMismatch")
		}
	}

	if len(data.FieldErrors) > 0 {
		return middleware.Render(c, http.StatusOK, pages.Account(data))
	}

	cookie := session.FromContext(c).BridgedCookie()
	if cookie == "" {
		data.FieldErrors["general"] = i18n.T(lang, "sessionExpired")
		return middleware.Render(c, http.StatusUnauthorized, pages.Account(data))
	}

	body := map[string]string{
		"username":    data.Username,
		"email":       data.Email,
		"dateOfBirth": dob,
	}
	if password != "" {
		body["password"] = password
		body["confirmPassword"] = confirm
	}

	_, err := h.relay.Call(c.Request().Context(), upstream.Call{
		Method:        http.MethodPost,
		Path:          "/account/update",
		Body:          body,
		SessionCookie: cookie,
		Lang:          lang,
	})
	if err != nil {
		slog.Error("updating account", slog.Any("error", err))
		data.FieldErrors["general"] = i18n.T(lang, "accountUpdateError")
		return middleware.Render(c, http.StatusOK, pages.Account(data))
	}

	return c.Redirect(http.StatusSeeOther, "/account?updated=true&lang="+lang)
}
