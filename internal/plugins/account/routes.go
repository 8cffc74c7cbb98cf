package account

import (
	"github.com/labstack/echo/v4"

	"github.com/mhedley/chatfront/internal/session"
)

// RegisterRoutes sets up the account routes. The details page requires a
// local principal; the update endpoint instead checks the bridged
// upstream cookie itself so a stale session gets the session-expired
// message rather than a silent redirect.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/account", h.Details, session.RequireLogin)
	e.POST("/account/update", h.Update)
}
