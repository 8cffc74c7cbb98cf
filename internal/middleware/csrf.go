package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/labstack/echo/v4"
)

// csrfTokenLength is the number of random bytes in a CSRF token (32 bytes = 64 hex chars).
const csrfTokenLength = 32

// csrfCookieName is the name of the cookie that stores the CSRF token.
const csrfCookieName = "chatfront_csrf"

// csrfFormField is the hidden form field name for form submissions.
const csrfFormField = "csrf_token"

// csrfHeaderName is the header the chat page script sends the token in.
const csrfHeaderName = "X-CSRF-Token"

// CSRF returns middleware that implements the double-submit cookie pattern
// for CSRF protection on state-changing requests (POST, PUT, PATCH, DELETE).
//
// This protects chatfront's own forms. It is unrelated to the upstream
// backend's X-XSRF-TOKEN protocol, which internal/upstream handles per call.
//
// How it works:
//  1. On every request, if no CSRF cookie exists, generate one and set it.
//  2. On mutating requests, compare the cookie value with either the
//     X-CSRF-Token header (chat script) or the csrf_token form field.
//  3. If they don't match, reject with 403 Forbidden.
func CSRF() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			// Ensure a CSRF token cookie exists.
			cookie, err := req.Cookie(csrfCookieName)
			if err != nil || cookie.Value == "" {
				token, genErr := generateCSRFToken()
				if genErr != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate CSRF token")
				}

				c.SetCookie(&http.Cookie{
					Name:     csrfCookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: false, // Must be readable by the chat page script.
					Secure:   req.TLS != nil || req.Header.Get("X-Forwarded-Proto") == "https",
					SameSite: http.SameSiteLaxMode,
				})

				// Store token in context for templates to access.
				c.Set("csrf_token", token)
			} else {
				c.Set("csrf_token", cookie.Value)
			}

			// Skip validation for safe (non-mutating) HTTP methods.
			if isSafeMethod(req.Method) {
				return next(c)
			}

			cookieToken := ""
			if cookie != nil {
				cookieToken = cookie.Value
			} else {
				// We just set the cookie above, use the generated value.
				if ct, ok := c.Get("csrf_token").(string); ok {
					cookieToken = ct
				}
			}

			// Check header first (chat script), then form field (forms).
			submittedToken := req.Header.Get(csrfHeaderName)
			if submittedToken == "" {
				submittedToken = req.FormValue(csrfFormField)
			}

			// Constant-time comparison to prevent timing side channels.
			if submittedToken == "" || subtle.ConstantTimeCompare([]byte(submittedToken), []byte(cookieToken)) != 1 {
				return echo.NewHTTPError(http.StatusForbidden, "invalid or missing CSRF token")
			}

			return next(c)
		}
	}
}

// isSafeMethod returns true for HTTP methods that should not change state.
func isSafeMethod(method string) bool {
	return method == http.MethodGet ||
		method == http.MethodHead ||
		method == http.MethodOptions
}

// generateCSRFToken generates a cryptographically random hex-encoded token.
func generateCSRFToken() (string, error) {
	b := make([]byte, csrfTokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GetCSRFToken retrieves the CSRF token from the Echo context.
// Use this in page components to inject the token into forms.
func GetCSRFToken(c echo.Context) string {
	if token, ok := c.Get("csrf_token").(string); ok {
		return token
	}
	return ""
}
