package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mhedley/chatfront/internal/templates/layouts"
)

// SupportData drives the contact support page. HTML must already be
// sanitized by the caller; it is the only raw markup rendered anywhere.
type SupportData struct {
	Title string
	HTML  string
}

// Support renders the contact support page.
func Support(d SupportData) templ.Component {
	return layouts.Base(d.Title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		wr := &writer{w: w}

		wr.printf(`<h1>%s</h1>`, esc(d.Title))
		wr.raw(`<div class="support-banner">`)
		if wr.err == nil {
			wr.err = templ.Raw(d.HTML).Render(ctx, w)
		}
		wr.raw(`</div>`)

		return wr.err
	}))
}
