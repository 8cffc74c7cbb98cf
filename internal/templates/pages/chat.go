package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mhedley/chatfront/internal/templates/layouts"
)

// ChatMessage is one rendered line of an existing conversation.
type ChatMessage struct {
	Sender  string
	Message string
}

// ChatData drives the chat page. When ChatID is set the page reopens an
// existing conversation with its history pre-rendered; subsequent sends
// go over fetch as JSON.
type ChatData struct {
	ChatID   string
	Messages []ChatMessage
}

// Chat renders the chat page.
func Chat(d ChatData) templ.Component {
	return layouts.Base("Chat", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		wr := &writer{w: w}

		wr.raw(`<h1>Chat</h1>`)
		wr.printf(`<div id="chat-window" data-chat-id="%s" aria-live="polite">`, esc(d.ChatID))
		for _, m := range d.Messages {
			wr.printf(`<div class="chat-message chat-message-%s"><span class="chat-sender">%s</span><p>%s</p></div>`,
				esc(m.Sender), esc(m.Sender), esc(m.Message))
		}
		wr.raw(`</div>`)

		wr.raw(`<form id="chat-form">`)
		wr.raw(`<label for="chat-input">Your message</label>` +
			`<textarea id="chat-input" name="message" rows="3" required></textarea>`)
		wr.raw(`<button type="submit">Send</button></form>`)

		// The page script posts JSON and supplies the local CSRF token
		// via header, since there is no form field on a fetch request.
		// Served as a static file so the CSP stays script-src 'self'.
		wr.raw(`<script src="/static/js/chat.js" defer></script>`)

		return wr.err
	}))
}
