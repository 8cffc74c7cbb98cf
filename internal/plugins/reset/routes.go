package reset

import "github.com/labstack/echo/v4"

// RegisterRoutes sets up the forgotten-password flow. All routes are
// public; the flow's state lives in the anonymous local session.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/forgot-password", h.EmailForm)
	e.POST("/forgot-password/enter-email", h.SubmitEmail)
	e.GET("/forgot-password/verify-otp", h.OTPForm)
	e.POST("/forgot-password/verify-otp", h.SubmitOTP)
	e.POST("/forgot-password/resend-otp", h.ResendOTP)
	e.GET("/forgot-password/reset-password", h.PasswordForm)
	e.POST("/forgot-password/reset-password", h.SubmitPassword)
}
