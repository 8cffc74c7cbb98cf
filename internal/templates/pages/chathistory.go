package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mhedley/chatfront/internal/templates/layouts"
)

// ChatSummary is one row of the chat history list: the conversation id
// and its first message, used as a title.
type ChatSummary struct {
	ChatID  string
	Message string
}

// ChatHistoryData drives the chat history page.
type ChatHistoryData struct {
	Chats []ChatSummary

	// Deleted shows the post-deletion success banner.
	Deleted bool

	// Error replaces the list when the upstream fetch failed.
	Error string
}

// ChatHistory renders the list of past conversations.
func ChatHistory(d ChatHistoryData) templ.Component {
	return layouts.Base("Chat history", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		wr := &writer{w: w}

		wr.raw(`<h1>Chat history</h1>`)
		if d.Deleted {
			wr.banner("success", "The chat has been deleted.")
		}
		wr.banner("error", d.Error)

		if d.Error == "" && len(d.Chats) == 0 {
			wr.raw(`<p>You have no saved chats yet. <a href="/chat">Start a chat</a>.</p>`)
		}

		if len(d.Chats) > 0 {
			wr.raw(`<ul class="chat-list">`)
			for _, chat := range d.Chats {
				wr.printf(`<li class="chat-list-item">`+
					`<a href="/open-chat-history?chatId=%s">%s</a> `+
					`<a class="chat-delete" href="/delete-chat-history?chatId=%s">Delete</a>`+
					`</li>`,
					esc(chat.ChatID), esc(chat.Message), esc(chat.ChatID))
			}
			wr.raw(`</ul>`)
		}

		return wr.err
	}))
}
