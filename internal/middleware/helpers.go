package middleware

import (
	"context"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// LayoutInjector copies layout data (page title, campaign name) from the
// Echo context into the Go context so templ components can read it.
// Registered once in app/routes.go so this package never imports plugins.
var LayoutInjector func(echo.Context, context.Context) context.Context

// Render writes a templ component with the given status code after running
// LayoutInjector, if one is registered.
func Render(c echo.Context, statusCode int, component templ.Component) error {
	ctx := c.Request().Context()
	if LayoutInjector != nil {
		ctx = LayoutInjector(c, ctx)
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(statusCode)
	return component.Render(ctx, c.Response().Writer)
}
