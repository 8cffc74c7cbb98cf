package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newCSRFEcho() *echo.Echo {
	e := echo.New()
	e.Use(CSRF())
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.POST("/submit", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return e
}

// issueToken performs a GET to obtain the CSRF cookie.
func issueToken(t *testing.T, e *echo.Echo) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	for _, c := range rec.Result().Cookies() {
		if c.Name == csrfCookieName {
			return c
		}
	}
	t.Fatal("no CSRF cookie issued")
	return nil
}

func TestCSRF_AcceptsMatchingFormToken(t *testing.T) {
	e := newCSRFEcho()
	cookie := issueToken(t, e)

	form := url.Values{csrfFormField: {cookie.Value}}
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestCSRF_AcceptsMatchingHeaderToken(t *testing.T) {
	e := newCSRFEcho()
	cookie := issueToken(t, e)

	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set(csrfHeaderName, cookie.Value)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestCSRF_RejectsMissingOrWrongToken(t *testing.T) {
	e := newCSRFEcho()
	cookie := issueToken(t, e)

	// No token at all.
	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("missing token: status = %d, want 403", rec.Code)
	}

	// Wrong token.
	req = httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set(csrfHeaderName, "not-the-token")
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("wrong token: status = %d, want 403", rec.Code)
	}
}

func TestCSRF_SkipsSafeMethods(t *testing.T) {
	e := newCSRFEcho()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
