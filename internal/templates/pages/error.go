// Package pages holds full-page templ components not owned by a plugin.
package pages

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/keyxmakerx/campaignlog/internal/templates/layouts"
)

// ErrorPage renders a browser-facing error with its status code.
func ErrorPage(code int, message string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<section class="error"><h1>%d %s</h1><p>%s</p></section>`,
			code, templ.EscapeString(http.StatusText(code)), templ.EscapeString(message),
		)
		return err
	})
	return layouts.Base(http.StatusText(code), body)
}
