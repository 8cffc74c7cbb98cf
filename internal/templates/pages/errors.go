package pages

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/mhedley/chatfront/internal/templates/layouts"
)

// NotFoundPage renders the 404 page.
func NotFoundPage() templ.Component {
	return layouts.Base("Page not found", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		wr := &writer{w: w}
		wr.raw(`<h1>Page not found</h1>`)
		wr.raw(`<p>The page you were looking for does not exist.</p>`)
		wr.raw(`<p><a href="/">Back to the start</a></p>`)
		return wr.err
	}))
}

// ErrorPage renders the generic error page for unexpected failures.
func ErrorPage(code int, message string) templ.Component {
	return layouts.Base("Something went wrong", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		wr := &writer{w: w}
		wr.printf(`<h1>Something went wrong (%s)</h1>`, esc(strconv.Itoa(code)))
		if message != "" {
			wr.printf(`<p>%s</p>`, esc(message))
		}
		wr.raw(`<p>Please try again later.</p>`)
		return wr.err
	}))
}
