package middleware

import (
	"context"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// LayoutInjector is a function that copies layout-relevant data from the Echo
// context (populated by session/language middleware) into Go's context.Context
// so page components can read it. Registered once at startup in app/routes.go.
//
// This callback pattern avoids the middleware package importing any plugin types.
var LayoutInjector func(echo.Context, context.Context) context.Context

// Render writes a Templ component to the response with the given status code.
// Before rendering, it runs the LayoutInjector (if registered) to copy
// session/language data into the Go context for components to access.
func Render(c echo.Context, statusCode int, component templ.Component) error {
	ctx := c.Request().Context()

	if LayoutInjector != nil {
		ctx = LayoutInjector(c, ctx)
	}

	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	c.Response().WriteHeader(statusCode)
	return component.Render(ctx, c.Response().Writer)
}
