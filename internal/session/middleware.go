package session

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mhedley/chatfront/internal/apperror"
)

// contextKey is the Echo context key holding the loaded *LocalSession.
const contextKey = "local_session"

// Middleware returns middleware that loads the session referenced by the
// browser cookie, creating an empty one (and setting the cookie) on first
// contact. The session is stored in the Echo context for handlers.
//
// A Redis outage degrades to a fresh in-memory session rather than
// failing the request; anything requiring upstream state will then fail
// with an unauthorized outcome downstream.
func Middleware(store *Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			var sess *LocalSession
			if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
				loaded, err := store.Load(ctx, cookie.Value)
				if err != nil {
					slog.Error("loading session", slog.Any("error", err))
				}
				sess = loaded
			}

			if sess == nil {
				created, err := store.New(ctx)
				if err != nil {
					slog.Error("creating session", slog.Any("error", err))
					created = &LocalSession{}
				}
				sess = created
				if sess.Token != "" {
					setSessionCookie(c, sess.Token, int(store.TTL().Seconds()))
				}
			}

			Attach(c, sess)
			return next(c)
		}
	}
}

// Attach stores a session in the Echo context. Exposed for tests; the
// middleware is the only production caller.
func Attach(c echo.Context, sess *LocalSession) {
	c.Set(contextKey, sess)
}

// FromContext retrieves the request's session. Returns an empty session
// if the middleware has not run, so callers never nil-check.
func FromContext(c echo.Context) *LocalSession {
	if sess, ok := c.Get(contextKey).(*LocalSession); ok && sess != nil {
		return sess
	}
	return &LocalSession{}
}

// RequireLogin gates protected views. Unauthenticated browsers yield a 401
// AppError, which the app error handler turns into a soft redirect to the
// login page; the upstream still independently validates its own session
// cookie on every relayed call.
func RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !FromContext(c).Authenticated() {
			return apperror.NewUnauthorized("sign in to view this page")
		}
		return next(c)
	}
}

// ClearCookie removes the session cookie from the browser.
func ClearCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// setSessionCookie sets the session cookie on the response. The cookie is
// HttpOnly (JS can't read it), Secure if behind TLS, and SameSite=Lax.
func setSessionCookie(c echo.Context, token string, maxAge int) {
	req := c.Request()
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   req.TLS != nil || req.Header.Get("X-Forwarded-Proto") == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}
