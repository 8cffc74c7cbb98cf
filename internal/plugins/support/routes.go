package support

import (
	"github.com/labstack/echo/v4"

	"github.com/mhedley/chatfront/internal/session"
)

// RegisterRoutes sets up the contact support page.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/contact-support", h.Page, session.RequireLogin)
}
