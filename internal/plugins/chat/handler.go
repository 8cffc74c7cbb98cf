// Package chat implements the chat page, the JSON message relay, and the
// chat history list with its open/delete actions.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mhedley/chatfront/internal/apperror"
	"github.com/mhedley/chatfront/internal/i18n"
	"github.com/mhedley/chatfront/internal/middleware"
	"github.com/mhedley/chatfront/internal/session"
	"github.com/mhedley/chatfront/internal/templates/pages"
	"github.com/mhedley/chatfront/internal/upstream"
)

// Relay is the slice of the upstream client this plugin uses.
type Relay interface {
	Call(ctx context.Context, call upstream.Call) (*upstream.Result, error)
	Get(ctx context.Context, path, sessionCookie, lang string) ([]byte, error)
}

// Handler handles the chat pages and the message relay endpoint.
type Handler struct {
	relay Relay
}

// NewHandler creates a chat handler.
func NewHandler(relay Relay) *Handler {
	return &Handler{relay: relay}
}

// sendMessageError is shown to the page script when a relayed send fails.
const sendMessageError = "An error occurred while sending the chat message. Please try again later."

// sessionExpiredError is returned when the bridged upstream cookie is
// missing or rejected.
const sessionExpiredError = "Session expired or invalid. Please log in again."

// Page renders a fresh chat page (GET /chat).
func (h *Handler) Page(c echo.Context) error {
	return middleware.Render(c, http.StatusOK, pages.Chat(pages.ChatData{}))
}

// sendRequest is the page script's JSON payload.
type sendRequest struct {
	Message string `json:"message"`
	ChatID  string `json:"chatId,omitempty"`
}

// Send relays one chat message (POST /chat). A missing bridged cookie is
// rejected locally as 401 without touching the upstream; otherwise the
// backend's JSON response body is passed through verbatim.
func (h *Handler) Send(c echo.Context) error {
	lang := middleware.Lang(c)

	cookie := session.FromContext(c).BridgedCookie()
	if cookie == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": sessionExpiredError})
	}

	var req sendRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body."})
	}

	res, err := h.relay.Call(c.Request().Context(), upstream.Call{
		Method:        http.MethodPost,
		Path:          "/chat",
		Body:          req,
		SessionCookie: cookie,
		Lang:          lang,
	})
	if err != nil {
		var upErr *upstream.Error
		if errors.As(err, &upErr) && upErr.Unauthorized() {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": sessionExpiredError})
		}
		slog.Error("relaying chat message", slog.Any("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": sendMessageError})
	}

	return c.JSONBlob(http.StatusOK, res.Body)
}

// chatSummary is one element of the backend's chat list response.
type chatSummary struct {
	ChatID  json.Number `json:"chatId"`
	Message string      `json:"message"`
}

// History renders the chat history list (GET /chat-history). The list is
// fetched under the full relay protocol; a failed fetch renders the page
// with an error banner instead of the list.
func (h *Handler) History(c echo.Context) error {
	lang := middleware.Lang(c)
	cookie := session.FromContext(c).BridgedCookie()

	data := pages.ChatHistoryData{
		Deleted: c.QueryParam("deleted") == "true",
	}

	res, err := h.relay.Call(c.Request().Context(), upstream.Call{
		Method:        http.MethodGet,
		Path:          "/chat/chats",
		SessionCookie: cookie,
		Lang:          lang,
	})
	if err != nil {
		slog.Error("loading chat history", slog.Any("error", err))
		data.Error = i18n.T(lang, "chatHistoryError")
		return middleware.Render(c, http.StatusOK, pages.ChatHistory(data))
	}

	var chats []chatSummary
	dec := json.NewDecoder(bytes.NewReader(res.Body))
	dec.UseNumber()
	if err := dec.Decode(&chats); err != nil {
		slog.Error("decoding chat history", slog.Any("error", err))
		data.Error = i18n.T(lang, "chatHistoryError")
		return middleware.Render(c, http.StatusOK, pages.ChatHistory(data))
	}

	for _, chat := range chats {
		data.Chats = append(data.Chats, pages.ChatSummary{
			ChatID:  chat.ChatID.String(),
			Message: chat.Message,
		})
	}

	return middleware.Render(c, http.StatusOK, pages.ChatHistory(data))
}

// chatMessage is one element of the backend's message list response.
type chatMessage struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

// Open reopens a past conversation (GET /open-chat-history?chatId=N). The
// chatId must be a number; the message history is a plain read.
func (h *Handler) Open(c echo.Context) error {
	lang := middleware.Lang(c)

	chatID := c.QueryParam("chatId")
	if chatID == "" {
		return apperror.NewBadRequest("Missing chatId parameter.")
	}
	if _, err := strconv.Atoi(chatID); err != nil {
		return apperror.NewBadRequest("Invalid chatId parameter.")
	}

	cookie := session.FromContext(c).BridgedCookie()
	body, err := h.relay.Get(c.Request().Context(), "/chat/messages/"+chatID, cookie, lang)
	if err != nil {
		slog.Error("loading chat messages", slog.Any("error", err), slog.String("chat_id", chatID))
		return c.String(http.StatusInternalServerError, "Error retrieving chat history.")
	}

	var messages []chatMessage
	if err := json.Unmarshal(body, &messages); err != nil {
		slog.Error("decoding chat messages", slog.Any("error", err))
		return c.String(http.StatusInternalServerError, "Error retrieving chat history.")
	}

	data := pages.ChatData{ChatID: chatID}
	for _, m := range messages {
		data.Messages = append(data.Messages, pages.ChatMessage(m))
	}

	return middleware.Render(c, http.StatusOK, pages.Chat(data))
}

// Delete removes a past conversation (GET /delete-chat-history?chatId=N)
// and returns to the history list with the deleted banner.
func (h *Handler) Delete(c echo.Context) error {
	lang := middleware.Lang(c)

	chatID := c.QueryParam("chatId")
	if chatID == "" {
		return apperror.NewBadRequest("Missing chatId parameter.")
	}
	if _, err := strconv.Atoi(chatID); err != nil {
		return apperror.NewBadRequest("Invalid chatId parameter.")
	}

	cookie := session.FromContext(c).BridgedCookie()
	_, err := h.relay.Call(c.Request().Context(), upstream.Call{
		Method:        http.MethodDelete,
		Path:          "/chat/chats/" + chatID,
		SessionCookie: cookie,
		Lang:          lang,
	})
	if err != nil {
		slog.Error("deleting chat", slog.Any("error", err), slog.String("chat_id", chatID))
		return c.String(http.StatusInternalServerError, "An error occurred while deleting the chat.")
	}

	return c.Redirect(http.StatusSeeOther, "/chat-history?deleted=true")
}
