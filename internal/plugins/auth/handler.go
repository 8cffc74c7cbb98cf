// Package auth implements the sign-in and sign-out flows. Login is the
// bridge point between the two session worlds: a successful upstream
// handshake captures the backend's session cookie and CSRF token into
// the local Redis session, where later relayed calls pick them up.
package auth

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
)

// Relay is the slice of the upstream client this plugin uses.
type Relay interface {
	Call(ctx context.Context, call upstream.Call) (*upstream.Result, error)
}

// Sessions is the slice of the session store this plugin uses.
type Sessions interface {
	Save(ctx context.Context, sess *session.LocalSession) error
	Delete(ctx context.Context, token string) error
}

// Handler handles sign-in and sign-out. Handlers are thin: bind the
// form, relay the call, bridge or clear the session, render.
type Handler struct {
	relay    Relay
	sessions Sessions
}

// NewHandler creates an auth handler.
func NewHandler(relay Relay, sessions Sessions) *Handler {
	return &Handler{relay: relay, sessions: sessions}
}

// LoginForm renders the sign-in page (GET /login). Query flags show the
// post-registration and post-reset success banners.
func (h *Handler) LoginForm(c echo.Context) error {
	if session.FromContext(c).Authenticated() {
		return c.Redirect(http.StatusSeeOther, "/chat")
	}

	return middleware.Render(c, http.StatusOK, pages.Login(pages.LoginData{
		Created:       c.QueryParam("created") == "true",
		PasswordReset: c.QueryParam("passwordReset") == "true",
	}))
}

// Login processes the sign-in form (POST /login). The upstream call runs
// without a bridged cookie: login is how the bridge gets established.
func (h *Handler) Login(c echo.Context) error {
	lang := middleware.Lang(c)
	username := c.FormValue("username")
	password := c.FormValue("password")

	res, err := h.relay.Call(c.Request().Context(), upstream.Call{
		Method: http.MethodPost,
		Path:   "/login/chat",
		Body: map[string]string{
			"username": username,
			"password": password,
		},
		Lang: lang,
	})
	if err != nil {
		var upErr *upstream.Error
		msg := i18n.T(lang, "loginInvalidCredentials")
		if errors.As(err, &upErr) {
			msg = upErr.Message(msg)
		}
		slog.Info("login rejected", slog.String("username", username))
		return middleware.Render(c, http.StatusOK, pages.Login(pages.LoginData{
			Username: username,
			Error:    msg,
		}))
	}

	sess := session.FromContext(c)
	sess.SetLogin(username, res.SessionCookie, res.CSRFToken)
	if err := h.sessions.Save(c.Request().Context(), sess); err != nil {
		slog.Error("persisting login session", slog.Any("error", err))
		return middleware.Render(c, http.StatusOK, pages.Login(pages.LoginData{
			Username: username,
			Error:    i18n.T(lang, "loginSessionError"),
		}))
	}

	return c.Redirect(http.StatusSeeOther, "/chat")
}

// Logout discards the local session (GET /logout). The upstream session
// cookie is deliberately dropped with it rather than revoked; the
// upstream expires it on its own schedule.
func (h *Handler) Logout(c echo.Context) error {
	sess := session.FromContext(c)
	if sess.Token != "" {
		if err := h.sessions.Delete(c.Request().Context(), sess.Token); err != nil {
			slog.Error("deleting session", slog.Any("error", err))
		}
	}
	sess.Clear()
	session.ClearCookie(c)

	return c.Redirect(http.StatusSeeOther, "/login")
}
