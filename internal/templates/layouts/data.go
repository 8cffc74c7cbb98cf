// Package layouts provides the shared page chrome and typed context
// helpers for passing layout data from handlers/middleware to page
// components. Only simple types are stored, so the layouts package never
// imports plugin types.
//
// Data flow: Middleware → Echo Context → LayoutInjector → Go Context → components
package layouts

import "context"

// ctxKey is a private type for context keys to prevent collisions.
type ctxKey string

const (
	keyLang            ctxKey = "layout_lang"
	keyCSRFToken       ctxKey = "layout_csrf_token"
	keyIsAuthenticated ctxKey = "layout_is_authenticated"
	keyUsername        ctxKey = "layout_username"
)

// --- Setters (called by the layout injector in app/routes.go) ---

// SetLang stores the resolved language ("en" or "cy") for the render.
func SetLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, keyLang, lang)
}

// SetCSRFToken stores the local CSRF token for forms.
func SetCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, keyCSRFToken, token)
}

// SetIsAuthenticated marks whether the current request has a principal.
func SetIsAuthenticated(ctx context.Context, authed bool) context.Context {
	return context.WithValue(ctx, keyIsAuthenticated, authed)
}

// SetUsername stores the signed-in user's name for the header.
func SetUsername(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, keyUsername, name)
}

// --- Getters (called by page components) ---

// GetLang returns the resolved language, defaulting to English.
func GetLang(ctx context.Context) string {
	if lang, _ := ctx.Value(keyLang).(string); lang != "" {
		return lang
	}
	return "en"
}

// GetCSRFToken returns the local CSRF token, or "".
func GetCSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(keyCSRFToken).(string)
	return token
}

// IsAuthenticated returns true if the current request has a principal.
func IsAuthenticated(ctx context.Context) bool {
	authed, _ := ctx.Value(keyIsAuthenticated).(bool)
	return authed
}

// GetUsername returns the signed-in user's name, or "".
func GetUsername(ctx context.Context) string {
	name, _ := ctx.Value(keyUsername).(string)
	return name
}
