package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/mhedley/chatfront/internal/apperror"
)

func newTestEcho(t *testing.T) (*echo.Echo, *Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	e := echo.New()
	store := NewStore(rdb, time.Hour)
	e.Use(Middleware(store))
	return e, store
}

func TestMiddleware_CreatesSessionAndCookie(t *testing.T) {
	e, _ := newTestEcho(t)
	e.GET("/", func(c echo.Context) error {
		sess := FromContext(c)
		if sess.Token == "" {
			t.Error("handler saw a session without a token")
		}
		if sess.Authenticated() {
			t.Error("fresh session must not be authenticated")
		}
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var found *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			found = c
		}
	}
	if found == nil {
		t.Fatal("expected a session cookie on first contact")
	}
	if !found.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
}

func TestMiddleware_ReloadsExistingSession(t *testing.T) {
	e, store := newTestEcho(t)
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, FromContext(c).Token)
	})

	sess, err := store.New(context.Background())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: sess.Token})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Body.String() != sess.Token {
		t.Errorf("handler saw token %q, want %q", rec.Body.String(), sess.Token)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			t.Error("a known session must not be reissued a cookie")
		}
	}
}

func TestRequireLogin_RejectsAnonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	Attach(c, &LocalSession{})

	var called bool
	err := RequireLogin(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)

	// The app error handler maps this 401 to a /login redirect.
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("err = %v, want *apperror.AppError", err)
	}
	if appErr.Code != http.StatusUnauthorized {
		t.Errorf("Code = %d, want 401", appErr.Code)
	}
	if called {
		t.Error("handler must not run for an anonymous session")
	}
}

func TestRequireLogin_PassesAuthenticated(t *testing.T) {
	e, store := newTestEcho(t)
	e.GET("/protected", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RequireLogin)

	sess, err := store.New(context.Background())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sess.SetLogin("alice", "SESSION=abc", "tok")
	if err := store.Save(context.Background(), sess); err != nil {
		t.Fatalf("Save: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: sess.Token})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
