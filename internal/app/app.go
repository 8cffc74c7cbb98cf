// Package app is the application bootstrap and dependency injection root.
// It creates and holds the shared infrastructure (Redis client, upstream
// relay client, Echo instance) and wires together all plugins.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/mhedley/chatfront/internal/apperror"
	"github.com/mhedley/chatfront/internal/config"
	"github.com/mhedley/chatfront/internal/middleware"
	"github.com/mhedley/chatfront/internal/session"
	"github.com/mhedley/chatfront/internal/templates/pages"
	"github.com/mhedley/chatfront/internal/upstream"
)

// App holds all shared dependencies and the Echo HTTP server instance.
// Created once at startup in main.go and used to register all routes.
type App struct {
	// Config holds the loaded application configuration.
	Config *config.Config

	// Redis is the Redis client backing the session store.
	Redis *redis.Client

	// Sessions is the local session store shared by all plugins.
	Sessions *session.Store

	// Upstream is the relay client for the authentication/chat backend.
	Upstream *upstream.Client

	// Echo is the HTTP server instance.
	Echo *echo.Echo
}

// New creates a new App instance with the given dependencies and configures
// the Echo server with global middleware and error handling.
func New(cfg *config.Config, rdb *redis.Client, sessions *session.Store, relay *upstream.Client) *App {
	e := echo.New()

	// Disable Echo's default banner and startup message -- we log our own.
	e.HideBanner = true
	e.HidePort = true

	app := &App{
		Config:   cfg,
		Redis:    rdb,
		Sessions: sessions,
		Upstream: relay,
		Echo:     e,
	}

	// Register global middleware in order of execution.
	app.setupMiddleware()

	// Register the custom error handler that maps AppErrors to HTTP responses.
	e.HTTPErrorHandler = app.errorHandler

	// Serve static files (CSS, the chat page script).
	e.Static("/static", "static")

	return app
}

// setupMiddleware registers global middleware on the Echo instance.
// Order matters: outermost (recovery) runs first, innermost (CSRF) runs last.
func (a *App) setupMiddleware() {
	// Panic recovery -- must be outermost to catch panics from all other middleware.
	a.Echo.Use(middleware.Recovery())

	// Request logging -- log every request with method, path, status, latency.
	a.Echo.Use(middleware.RequestLogger())

	// Security headers -- CSP, no-store caching, X-Frame-Options, etc.
	a.Echo.Use(middleware.SecurityHeaders())

	// Language resolution -- ?lang= and the lang cookie, before anything
	// that renders or relays.
	a.Echo.Use(middleware.Language())

	// Local session -- load or create the browser session from Redis.
	a.Echo.Use(session.Middleware(a.Sessions))

	// CSRF -- double-submit cookie pattern on all state-changing requests.
	// Protects chatfront's own forms; the upstream's X-XSRF-TOKEN protocol
	// is handled separately per relayed call.
	a.Echo.Use(middleware.CSRF())
}

// errorHandler is the custom Echo error handler. It maps domain errors
// (AppError) to appropriate HTTP responses. Browser requests get rendered
// error pages; a 401 redirects to the login page instead.
func (a *App) errorHandler(err error, c echo.Context) {
	// Don't double-write if response is already committed.
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "An unexpected error occurred"

	var appErr *apperror.AppError
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		code = appErr.Code
		message = appErr.Message
		if appErr.Internal != nil {
			slog.Error("internal error",
				slog.String("type", appErr.Type),
				slog.String("message", appErr.Message),
				slog.Any("internal", appErr.Internal),
				slog.String("path", c.Request().URL.Path),
			)
		}
	case errors.As(err, &echoErr):
		code = echoErr.Code
		if msg, ok := echoErr.Message.(string); ok {
			message = msg
		} else {
			message = defaultErrorMessage(code)
		}
	default:
		slog.Error("unhandled error",
			slog.Any("error", err),
			slog.String("path", c.Request().URL.Path),
		)
	}

	// Browser 401 -- redirect to login rather than rendering an error page.
	if code == http.StatusUnauthorized {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	if code == http.StatusNotFound {
		middleware.Render(c, code, pages.NotFoundPage())
		return
	}

	middleware.Render(c, code, pages.ErrorPage(code, message))
}

// defaultErrorMessage returns a user-friendly message for common HTTP
// status codes when no specific message was provided by the error.
func defaultErrorMessage(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "The request was invalid or cannot be processed."
	case http.StatusForbidden:
		return "You don't have permission to access this resource."
	case http.StatusNotFound:
		return "The page you're looking for doesn't exist or has been moved."
	case http.StatusMethodNotAllowed:
		return "This action is not allowed."
	case http.StatusBadGateway:
		return "The server received an invalid response."
	case http.StatusServiceUnavailable:
		return "The service is temporarily unavailable. Please try again later."
	default:
		return "An unexpected error occurred."
	}
}

// Start begins listening for HTTP requests on the configured port.
func (a *App) Start() error {
	addr := fmt.Sprintf(":%d", a.Config.Port)
	slog.Info("starting chatfront server",
		slog.String("addr", addr),
		slog.String("env", a.Config.Env),
		slog.String("upstream", a.Config.Upstream.BaseURL),
	)
	return a.Echo.Start(addr)
}
