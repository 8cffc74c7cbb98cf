package app

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mhedley/chatfront/internal/middleware"
	"github.com/mhedley/chatfront/internal/plugins/account"
	"github.com/mhedley/chatfront/internal/plugins/auth"
	"github.com/mhedley/chatfront/internal/plugins/chat"
	"github.com/mhedley/chatfront/internal/plugins/register"
	"github.com/mhedley/chatfront/internal/plugins/reset"
	"github.com/mhedley/chatfront/internal/plugins/support"
	"github.com/mhedley/chatfront/internal/session"
	"github.com/mhedley/chatfront/internal/templates/layouts"
)

// RegisterRoutes sets up all application routes. It registers public
// routes directly and delegates to each plugin's route registration
// function. This is the single place where all routes are aggregated.
func (a *App) RegisterRoutes() {
	e := a.Echo

	// Layout injector: copies per-request data (language, CSRF token,
	// authentication state) from the Echo context into the Go context so
	// page components can read it without knowing about Echo.
	middleware.LayoutInjector = func(c echo.Context, ctx context.Context) context.Context {
		ctx = layouts.SetLang(ctx, middleware.Lang(c))
		ctx = layouts.SetCSRFToken(ctx, middleware.GetCSRFToken(c))

		sess := session.FromContext(c)
		ctx = layouts.SetIsAuthenticated(ctx, sess.Authenticated())
		if sess.Principal != nil {
			ctx = layouts.SetUsername(ctx, sess.Principal.Username)
		}
		return ctx
	}

	// The start page is the sign-in page (or chat once signed in).
	e.GET("/", func(c echo.Context) error {
		if session.FromContext(c).Authenticated() {
			return c.Redirect(http.StatusSeeOther, "/chat")
		}
		return c.Redirect(http.StatusSeeOther, "/login")
	})

	// Health check endpoint for container health monitoring.
	e.GET("/healthz", func(c echo.Context) error {
		if err := a.Redis.Ping(c.Request().Context()).Err(); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	auth.RegisterRoutes(e, auth.NewHandler(a.Upstream, a.Sessions))
	register.RegisterRoutes(e, register.NewHandler(a.Upstream))
	account.RegisterRoutes(e, account.NewHandler(a.Upstream))
	chat.RegisterRoutes(e, chat.NewHandler(a.Upstream))
	reset.RegisterRoutes(e, reset.NewHandler(a.Upstream, a.Sessions))
	support.RegisterRoutes(e, support.NewHandler(a.Upstream))
}
