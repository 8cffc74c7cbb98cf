package auth

import "github.com/labstack/echo/v4"

// RegisterRoutes sets up the sign-in and sign-out routes. All are public;
// logout tolerates an already-empty session.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/login", h.LoginForm)
	e.POST("/login", h.Login)
	e.GET("/logout", h.Logout)
}
