package reset

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mhedley/chatfront/internal/session"
	"github.com/mhedley/chatfront/internal/upstream"
)

type mockRelay struct {
	callFn func(ctx context.Context, call upstream.Call) (*upstream.Result, error)
	calls  []upstream.Call
}

func (m *mockRelay) Call(ctx context.Context, call upstream.Call) (*upstream.Result, error) {
	m.calls = append(m.calls, call)
	if m.callFn != nil {
		return m.callFn(ctx, call)
	}
	return &upstream.Result{Status: http.StatusOK}, nil
}

type mockSessions struct {
	saveFn func(ctx context.Context, sess *session.LocalSession) error
	saved  int
}

func (m *mockSessions) Save(ctx context.Context, sess *session.LocalSession) error {
	m.saved++
	if m.saveFn != nil {
		return m.saveFn(ctx, sess)
	}
	return nil
}

func postForm(path string, form url.Values, sess *session.LocalSession) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	session.Attach(c, sess)
	return c, rec
}

func bodyOf(call upstream.Call) map[string]string {
	payload, _ := json.Marshal(call.Body)
	var body map[string]string
	json.Unmarshal(payload, &body)
	return body
}

func TestSubmitEmail_InvalidEmailSkipsUpstream(t *testing.T) {
	relay := &mockRelay{}
	h := NewHandler(relay, &mockSessions{})

	c, rec := postForm("/forgot-password/enter-email", url.Values{"email": {"nope"}}, &session.LocalSession{})
	if err := h.SubmitEmail(c); err != nil {
		t.Fatalf("SubmitEmail: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 re-render", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "correct format") {
		t.Error("email validation message missing")
	}
	if len(relay.calls) != 0 {
		t.Error("invalid email must not reach the upstream")
	}
}

func TestSubmitEmail_SuccessRecordsEmail(t *testing.T) {
	relay := &mockRelay{}
	sessions := &mockSessions{}
	h := NewHandler(relay, sessions)

	sess := &session.LocalSession{Token: "local-1"}
	c, rec := postForm("/forgot-password/enter-email", url.Values{"email": {"alice@example.com"}}, sess)
	if err := h.SubmitEmail(c); err != nil {
		t.Fatalf("SubmitEmail: %v", err)
	}

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/forgot-password/verify-otp?lang=en" {
		t.Errorf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if sess.ResetEmail != "alice@example.com" {
		t.Errorf("ResetEmail = %q", sess.ResetEmail)
	}
	if sessions.saved != 1 {
		t.Errorf("saved %d times, want 1", sessions.saved)
	}
	if relay.calls[0].Path != "/forgot-password/enter-email" {
		t.Errorf("Path = %q", relay.calls[0].Path)
	}
}

func TestSubmitOTP_RequiresEmailInSession(t *testing.T) {
	relay := &mockRelay{}
	h := NewHandler(relay, &mockSessions{})

	c, rec := postForm("/forgot-password/verify-otp", url.Values{"oneTimePassword": {"123456"}}, &session.LocalSession{})
	if err := h.SubmitOTP(c); err != nil {
		t.Fatalf("SubmitOTP: %v", err)
	}

	if !strings.Contains(rec.Body.String(), "could not find your email address") {
		t.Error("missing-email message not shown")
	}
	if len(relay.calls) != 0 {
		t.Error("no upstream call without a session email")
	}
}

func TestSubmitOTP_RequiresOTP(t *testing.T) {
	relay := &mockRelay{}
	h := NewHandler(relay, &mockSessions{})

	sess := &session.LocalSession{ResetEmail: "alice@example.com"}
	c, rec := postForm("/forgot-password/verify-otp", url.Values{}, sess)
	if err := h.SubmitOTP(c); err != nil {
		t.Fatalf("SubmitOTP: %v", err)
	}

	if !strings.Contains(rec.Body.String(), "Enter the one-time password") {
		t.Error("required message missing")
	}
	if len(relay.calls) != 0 {
		t.Error("no upstream call without an OTP")
	}
}

func TestSubmitOTP_SuccessRecordsOTP(t *testing.T) {
	relay := &mockRelay{}
	sessions := &mockSessions{}
	h := NewHandler(relay, sessions)

	sess := &session.LocalSession{ResetEmail: "alice@example.com"}
	c, rec := postForm("/forgot-password/verify-otp", url.Values{"oneTimePassword": {"123456"}}, sess)
	if err := h.SubmitOTP(c); err != nil {
		t.Fatalf("SubmitOTP: %v", err)
	}

	if rec.Header().Get("Location") != "/forgot-password/reset-password?lang=en" {
		t.Errorf("Location = %q", rec.Header().Get("Location"))
	}
	if sess.VerifiedOTP != "123456" {
		t.Errorf("VerifiedOTP = %q", sess.VerifiedOTP)
	}

	body := bodyOf(relay.calls[0])
	if body["email"] != "alice@example.com" || body["otp"] != "123456" {
		t.Errorf("payload = %v", body)
	}
}

func TestSubmitOTP_UpstreamMessageShown(t *testing.T) {
	relay := &mockRelay{
		callFn: func(ctx context.Context, call upstream.Call) (*upstream.Result, error) {
			return nil, &upstream.Error{Status: http.StatusBadRequest, Kind: upstream.BodyPlain, Plain: "OTP expired"}
		},
	}
	h := NewHandler(relay, &mockSessions{})

	sess := &session.LocalSession{ResetEmail: "alice@example.com"}
	c, rec := postForm("/forgot-password/verify-otp", url.Values{"oneTimePassword": {"000000"}}, sess)
	if err := h.SubmitOTP(c); err != nil {
		t.Fatalf("SubmitOTP: %v", err)
	}

	if !strings.Contains(rec.Body.String(), "OTP expired") {
		t.Error("upstream message not shown")
	}
	if sess.VerifiedOTP != "" {
		t.Error("a rejected OTP must not be recorded")
	}
}

func TestResendOTP(t *testing.T) {
	relay := &mockRelay{}
	h := NewHandler(relay, &mockSessions{})

	sess := &session.LocalSession{ResetEmail: "alice@example.com"}
	c, rec := postForm("/forgot-password/resend-otp", url.Values{}, sess)
	if err := h.ResendOTP(c); err != nil {
		t.Fatalf("ResendOTP: %v", err)
	}

	if rec.Header().Get("Location") != "/forgot-password/verify-otp?sent=true&lang=en" {
		t.Errorf("Location = %q", rec.Header().Get("Location"))
	}
	if relay.calls[0].Path != "/forgot-password/resend-otp" {
		t.Errorf("Path = %q", relay.calls[0].Path)
	}
}

func TestResendOTP_NoSessionEmail(t *testing.T) {
	relay := &mockRelay{}
	h := NewHandler(relay, &mockSessions{})

	c, rec := postForm("/forgot-password/resend-otp", url.Values{}, &session.LocalSession{})
	if err := h.ResendOTP(c); err != nil {
		t.Fatalf("ResendOTP: %v", err)
	}

	if !strings.Contains(rec.Body.String(), "could not find your email address") {
		t.Error("missing-email message not shown")
	}
	if len(relay.calls) != 0 {
		t.Error("no upstream call without a session email")
	}
}

func TestSubmitPassword_ValidationFirst(t *testing.T) {
	relay := &mockRelay{}
	h := NewHandler(relay, &mockSessions{})

	sess := &session.LocalSession{ResetEmail: "alice@example.com", VerifiedOTP: "123456"}
	c, rec := postForm("/forgot-password/reset-password", url.Values{
		"password":        {"weak"},
		"confirmPassword": {"weak"},
	}, sess)
	if err := h.SubmitPassword(c); err != nil {
		t.Fatalf("SubmitPassword: %v", err)
	}

	if !strings.Contains(rec.Body.String(), "at least 8 characters") {
		t.Error("strength message missing")
	}
	if len(relay.calls) != 0 {
		t.Error("invalid password must not reach the upstream")
	}
}

func TestSubmitPassword_RequiresFlowState(t *testing.T) {
	relay := &mockRelay{}
	h := NewHandler(relay, &mockSessions{})

	c, rec := postForm("/forgot-password/reset-password", url.Values{
		"password":        {"NewPassw0rd!"},
		"confirmPassword": {"NewPassw0rd!"},
	}, &session.LocalSession{ResetEmail: "alice@example.com"}) // no verified OTP
	if err := h.SubmitPassword(c); err != nil {
		t.Fatalf("SubmitPassword: %v", err)
	}

	if !strings.Contains(rec.Body.String(), "reset session has expired") {
		t.Error("missing-state message not shown")
	}
	if len(relay.calls) != 0 {
		t.Error("no upstream call without the full flow state")
	}
}

func TestSubmitPassword_Success(t *testing.T) {
	relay := &mockRelay{}
	h := NewHandler(relay, &mockSessions{})

	sess := &session.LocalSession{ResetEmail: "alice@example.com", VerifiedOTP: "123456"}
	c, rec := postForm("/forgot-password/reset-password", url.Values{
		"password":        {"NewPassw0rd!"},
		"confirmPassword": {"NewPassw0rd!"},
	}, sess)
	if err := h.SubmitPassword(c); err != nil {
		t.Fatalf("SubmitPassword: %v", err)
	}

	if rec.Header().Get("Location") != "/login?passwordReset=true&lang=en" {
		t.Errorf("Location = %q", rec.Header().Get("Location"))
	}

	body := bodyOf(relay.calls[0])
	if body["email"] != "alice@example.com" || body["otp"] != "123456" || body["password"] != "NewPassw0rd!" {
		t.Errorf("payload = %v", body)
	}

	// Flow state is left in the session: it expires with the session and
	// is overwritten by the next flow.
	if email, otp := sess.PendingReset(); email == "" || otp == "" {
		t.Error("flow state unexpectedly cleared after a successful reset")
	}
}

// TestFullFlow walks the three steps end to end against one session.
func TestFullFlow(t *testing.T) {
	relay := &mockRelay{}
	sessions := &mockSessions{}
	h := NewHandler(relay, sessions)
	sess := &session.LocalSession{Token: "local-1"}

	c, rec := postForm("/forgot-password/enter-email", url.Values{"email": {"alice@example.com"}}, sess)
	if err := h.SubmitEmail(c); err != nil {
		t.Fatalf("SubmitEmail: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("enter-email: status %d", rec.Code)
	}

	c, rec = postForm("/forgot-password/verify-otp", url.Values{"oneTimePassword": {"654321"}}, sess)
	if err := h.SubmitOTP(c); err != nil {
		t.Fatalf("SubmitOTP: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("verify-otp: status %d", rec.Code)
	}

	c, rec = postForm("/forgot-password/reset-password", url.Values{
		"password":        {"NewPassw0rd!"},
		"confirmPassword": {"NewPassw0rd!"},
	}, sess)
	if err := h.SubmitPassword(c); err != nil {
		t.Fatalf("SubmitPassword: %v", err)
	}
	if rec.Header().Get("Location") != "/login?passwordReset=true&lang=en" {
		t.Errorf("final Location = %q", rec.Header().Get("Location"))
	}

	if len(relay.calls) != 3 {
		t.Fatalf("relayed %d calls, want 3", len(relay.calls))
	}
	final := bodyOf(relay.calls[2])
	if final["otp"] != "654321" {
		t.Errorf("final call must replay the verified OTP, got %v", final)
	}
}
