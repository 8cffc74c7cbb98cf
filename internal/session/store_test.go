package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// newTestStore backs a store with an in-process Redis.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewStore(rdb, time.Hour)
}

func TestStore_Roundtrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess, err := store.New(ctx)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if sess.Token == "" {
		t.Fatal("expected a generated token")
	}

	sess.SetLogin("alice", "SESSION=abc123; Path=/", "tok-1")
	sess.SetResetEmail("alice@example.com")
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load(ctx, sess.Token)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected a session")
	}
	if loaded.Token != sess.Token {
		t.Errorf("Token = %q, want %q", loaded.Token, sess.Token)
	}
	if !loaded.Authenticated() || loaded.Principal.Username != "alice" {
		t.Errorf("principal not restored: %+v", loaded.Principal)
	}
	if loaded.BridgedCookie() != "SESSION=abc123; Path=/" {
		t.Errorf("BridgedCookie = %q", loaded.BridgedCookie())
	}
	if loaded.ResetEmail != "alice@example.com" {
		t.Errorf("ResetEmail = %q", loaded.ResetEmail)
	}
}

func TestStore_LoadMissingToken(t *testing.T) {
	store := newTestStore(t)

	sess, err := store.Load(context.Background(), "no-such-token")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sess != nil {
		t.Errorf("expected nil for a missing token, got %+v", sess)
	}
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess, err := store.New(ctx)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := store.Delete(ctx, sess.Token); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	loaded, err := store.Load(ctx, sess.Token)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded != nil {
		t.Error("expected the session to be gone after Delete")
	}
}

func TestLocalSession_BridgedCookiePrecedence(t *testing.T) {
	sess := &LocalSession{UpstreamCookie: "SESSION=old"}
	if got := sess.BridgedCookie(); got != "SESSION=old" {
		t.Errorf("session-scoped cookie: got %q", got)
	}

	sess.Principal = &Principal{Username: "alice", UpstreamCookie: "SESSION=new"}
	if got := sess.BridgedCookie(); got != "SESSION=new" {
		t.Errorf("principal cookie must win: got %q", got)
	}

	// A principal without its own cookie falls back to the session copy.
	sess.Principal.UpstreamCookie = ""
	if got := sess.BridgedCookie(); got != "SESSION=old" {
		t.Errorf("fallback to session cookie: got %q", got)
	}
}

func TestLocalSession_SetLoginReplacesState(t *testing.T) {
	sess := &LocalSession{}
	sess.SetLogin("alice", "SESSION=first", "tok-1")
	sess.SetLogin("bob", "SESSION=second", "tok-2")

	if sess.Principal.Username != "bob" {
		t.Errorf("Username = %q, want bob", sess.Principal.Username)
	}
	if sess.BridgedCookie() != "SESSION=second" {
		t.Errorf("BridgedCookie = %q, want the second cookie", sess.BridgedCookie())
	}
	if sess.CSRFToken != "tok-2" {
		t.Errorf("CSRFToken = %q, want tok-2", sess.CSRFToken)
	}
}

func TestLocalSession_Clear(t *testing.T) {
	sess := &LocalSession{}
	sess.SetLogin("alice", "SESSION=abc", "tok")
	sess.SetResetEmail("alice@example.com")
	sess.VerifiedOTP = "123456"

	sess.Clear()

	if sess.Authenticated() {
		t.Error("still authenticated after Clear")
	}
	if sess.BridgedCookie() != "" {
		t.Errorf("BridgedCookie = %q, want empty", sess.BridgedCookie())
	}
	if email, otp := sess.PendingReset(); email != "" || otp != "" {
		t.Errorf("reset state survived Clear: %q %q", email, otp)
	}
}
