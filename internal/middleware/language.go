package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// langCookieName is the cookie carrying the user's language preference.
// The same cookie name is seeded into the upstream cookie jar so the
// backend localizes its own messages.
const langCookieName = "lang"

// Supported languages. Anything other than Welsh falls back to English,
// matching the upstream's locale handling.
const (
	LangEnglish = "en"
	LangWelsh   = "cy"
)

// Language returns middleware that resolves the request's language. A
// ?lang= query parameter switches the preference (and refreshes the
// cookie); otherwise the lang cookie decides; the default is English.
func Language() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lang := LangEnglish

			if cookie, err := c.Cookie(langCookieName); err == nil && cookie.Value == LangWelsh {
				lang = LangWelsh
			}

			// An explicit ?lang= wins and persists.
			switch c.QueryParam("lang") {
			case LangWelsh:
				lang = LangWelsh
				setLangCookie(c, LangWelsh)
			case LangEnglish:
				lang = LangEnglish
				setLangCookie(c, LangEnglish)
			}

			c.Set("lang", lang)
			return next(c)
		}
	}
}

// Lang returns the resolved language for the current request, defaulting
// to English when the middleware has not run (e.g., in tests).
func Lang(c echo.Context) string {
	if lang, ok := c.Get("lang").(string); ok && lang != "" {
		return lang
	}
	return LangEnglish
}

func setLangCookie(c echo.Context, lang string) {
	c.SetCookie(&http.Cookie{
		Name:     langCookieName,
		Value:    lang,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   365 * 24 * 60 * 60,
	})
}
