package register

import "github.com/labstack/echo/v4"

// RegisterRoutes sets up the public registration routes.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/register", h.Form)
	e.POST("/register", h.Submit)
}
