package chat

import (
	"github.com/labstack/echo/v4"

	"github.com/mhedley/chatfront/internal/session"
)

// RegisterRoutes sets up the chat routes. The HTML pages require a local
// principal; the JSON send endpoint does its own bridged-cookie check so
// the page script gets a 401 payload rather than a redirect.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/chat", h.Page, session.RequireLogin)
	e.POST("/chat", h.Send)
	e.GET("/chat-history", h.History, session.RequireLogin)
	e.GET("/open-chat-history", h.Open, session.RequireLogin)
	e.GET("/delete-chat-history", h.Delete, session.RequireLogin)
}
