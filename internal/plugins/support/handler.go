// Package support implements the contact support page. The banner text
// is managed in the upstream backend as HTML; it is sanitized here before
// rendering, and any failure falls back to static contact details so the
// page never shows an error.
package support

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mhedley/chatfront/internal/middleware"
	"github.com/mhedley/chatfront/internal/sanitize"
	"github.com/mhedley/chatfront/internal/session"
	"github.com/mhedley/chatfront/internal/templates/pages"
)

// Fallback content shown when the upstream banner cannot be fetched.
const (
	fallbackTitle = "Contact Support Team"
	fallbackHTML  = `If you need assistance, please call us at <strong>0800 123 456</strong> or ` +
		`email <a href='mailto:support@example.com'>support@example.com</a>.`
)

// Fetcher is the slice of the upstream client this plugin uses.
type Fetcher interface {
	Get(ctx context.Context, path, sessionCookie, lang string) ([]byte, error)
}

// Handler handles the contact support page.
type Handler struct {
	relay Fetcher
}

// NewHandler creates a support handler.
func NewHandler(relay Fetcher) *Handler {
	return &Handler{relay: relay}
}

// banner is the backend's support banner record.
type banner struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Page renders the contact support page (GET /contact-support).
func (h *Handler) Page(c echo.Context) error {
	lang := middleware.Lang(c)
	cookie := session.FromContext(c).BridgedCookie()

	data := pages.SupportData{Title: fallbackTitle, HTML: fallbackHTML}

	body, err := h.relay.Get(c.Request().Context(), "/support-banner/1", cookie, lang)
	if err != nil {
		slog.Warn("loading support banner", slog.Any("error", err))
		return middleware.Render(c, http.StatusOK, pages.Support(data))
	}

	var b banner
	if err := json.Unmarshal(body, &b); err != nil || b.Title == "" {
		slog.Warn("decoding support banner", slog.Any("error", err))
		return middleware.Render(c, http.StatusOK, pages.Support(data))
	}

	data.Title = b.Title
	data.HTML = sanitize.HTML(b.Content)
	return middleware.Render(c, http.StatusOK, pages.Support(data))
}
