package layouts

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Base wraps a page body in the shared HTML chrome: head, skip link,
// header navigation (varies with authentication state), and footer.
func Base(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lang := GetLang(ctx)

		_, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="%s"><head><meta charset="utf-8">`+
				`<meta name="viewport" content="width=device-width, initial-scale=1">`+
				`<title>%s</title>`+
				`<link rel="stylesheet" href="/static/css/main.css">`+
				`</head><body>`+
				`<a class="skip-link" href="#main">Skip to main content</a>`,
			templ.EscapeString(lang), templ.EscapeString(title))
		if err != nil {
			return err
		}

		if err := writeNav(ctx, w, lang); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<main id="main" class="page-main">`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err = io.WriteString(w, `</main>`+
			`<footer class="page-footer"><p>Support is available through the contact page.</p></footer>`+
			`</body></html>`)
		return err
	})
}

// writeNav renders the header links. Protected destinations only appear
// once a principal is present; the language toggle preserves the current
// page via the lang query parameter.
func writeNav(ctx context.Context, w io.Writer, lang string) error {
	if _, err := io.WriteString(w, `<header class="page-header"><nav>`); err != nil {
		return err
	}

	if IsAuthenticated(ctx) {
		name := templ.EscapeString(GetUsername(ctx))
		if _, err := fmt.Fprintf(w,
			`<a href="/chat">Chat</a>`+
				`<a href="/chat-history">Chat history</a>`+
				`<a href="/account">Account</a>`+
				`<a href="/contact-support">Contact support</a>`+
				`<span class="nav-user">%s</span>`+
				`<a href="/logout">Sign out</a>`, name); err != nil {
			return err
		}
	} else {
		if _, err := io.WriteString(w,
			`<a href="/login">Sign in</a><a href="/register">Create an account</a>`); err != nil {
			return err
		}
	}

	other, label := "cy", "Cymraeg"
	if lang == "cy" {
		other, label = "en", "English"
	}
	_, err := fmt.Fprintf(w, `<a class="nav-lang" href="?lang=%s">%s</a></nav></header>`, other, label)
	return err
}
