// Package upstream implements the CSRF-then-action relay protocol against
// the authentication/chat backend. Every relayed call builds a fresh
// cookie jar seeded from the bridged session state, fetches a CSRF token,
// then issues the action with that token attached. The jar is owned by
// the call that creates it and discarded afterwards, so no mutable state
// is shared across requests.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/mhedley/chatfront/internal/config"
)

// csrfHeader is the header the backend requires on mutating calls.
const csrfHeader = "X-XSRF-TOKEN"

// Client relays calls to the upstream backend. The transport (connection
// pool) is shared; cookie jars are per call.
type Client struct {
	baseURL   *url.URL
	transport http.RoundTripper
	cfg       config.UpstreamConfig
}

// Call describes one relayed action.
type Call struct {
	// Method and Path identify the upstream action.
	Method string
	Path   string

	// Body is JSON-encoded into the request when non-nil.
	Body any

	// SessionCookie is the bridged upstream session cookie, empty when
	// the caller has no upstream session (login, register, reset flow).
	SessionCookie string

	// Lang seeds the upstream's locale cookie when set.
	Lang string
}

// Result is a successful relayed action.
type Result struct {
	// Status is the 2xx status the upstream returned.
	Status int

	// Body is the raw response body.
	Body []byte

	// SessionCookie holds the response's Set-Cookie values joined with
	// "; ", for the caller to bridge into the local session. Only login
	// responses carry one.
	SessionCookie string

	// CSRFToken is the token fetched for this call and sent in the
	// action's header. Callers store it alongside the session cookie.
	CSRFToken string
}

// New creates a relay client for the configured upstream.
func New(cfg config.UpstreamConfig) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing upstream URL: %w", err)
	}

	return &Client{
		baseURL:   base,
		transport: http.DefaultTransport,
		cfg:       cfg,
	}, nil
}

// Call executes one upstream action under the CSRF + cookie protocol:
// fresh jar, GET /csrf, then the action with the fetched token in the
// X-XSRF-TOKEN header. The CSRF fetch is unconditional on every call —
// the upstream is assumed to rotate tokens, so the session's cached token
// is never trusted. No retries: a failed call surfaces immediately.
func (c *Client) Call(ctx context.Context, call Call) (*Result, error) {
	hc, err := c.jarClient(call.SessionCookie, call.Lang)
	if err != nil {
		return nil, err
	}

	token, err := c.fetchCSRF(ctx, hc)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if call.Body != nil {
		payload, err := json.Marshal(call.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, call.Method, c.baseURL.JoinPath(call.Path).String(), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set(csrfHeader, token)
	if call.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, &Error{Status: 0, Kind: BodyNone}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Status: 0, Kind: BodyNone}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newError(resp.StatusCode, body)
	}

	return &Result{
		Status:        resp.StatusCode,
		Body:          body,
		SessionCookie: strings.Join(resp.Header.Values("Set-Cookie"), "; "),
		CSRFToken:     token,
	}, nil
}

// Get performs a plain authenticated read without the CSRF fetch. The
// backend's read-only field endpoints (account details, chat messages,
// support banner) require only the session cookie.
func (c *Client) Get(ctx context.Context, path, sessionCookie, lang string) ([]byte, error) {
	hc, err := c.jarClient(sessionCookie, lang)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.JoinPath(path).String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, &Error{Status: 0, Kind: BodyNone}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Status: 0, Kind: BodyNone}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newError(resp.StatusCode, body)
	}

	return body, nil
}

// fetchCSRF obtains a fresh token via GET /csrf through the call's jar,
// which also collects the upstream's XSRF-TOKEN cookie for the action.
func (c *Client) fetchCSRF(ctx context.Context, hc *http.Client) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.JoinPath("/csrf").String(), nil)
	if err != nil {
		return "", fmt.Errorf("building csrf request: %w", err)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return "", &Error{Status: 0, Kind: BodyNone}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Status: 0, Kind: BodyNone}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", newError(resp.StatusCode, body)
	}

	var payload struct {
		CSRFToken string `json:"csrfToken"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decoding csrf response: %w", err)
	}

	return payload.CSRFToken, nil
}

// jarClient builds the per-call HTTP client: a fresh cookie jar seeded
// with the locale cookie and the bridged session cookie, sharing the
// pooled transport.
func (c *Client) jarClient(sessionCookie, lang string) (*http.Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	var cookies []*http.Cookie
	if lang != "" {
		cookies = append(cookies, &http.Cookie{Name: "lang", Value: lang})
	}
	cookies = append(cookies, parseCookieString(sessionCookie)...)
	if len(cookies) > 0 {
		jar.SetCookies(c.baseURL, cookies)
	}

	return &http.Client{
		Transport: c.transport,
		Jar:       jar,
		Timeout:   c.cfg.Timeout,
	}, nil
}

// cookieAttributes are Set-Cookie attribute names that must not be
// mistaken for cookie pairs when re-parsing a bridged cookie string.
var cookieAttributes = map[string]bool{
	"path": true, "domain": true, "expires": true, "max-age": true,
	"samesite": true, "secure": true, "httponly": true, "partitioned": true,
}

// parseCookieString extracts name=value cookie pairs from a stored
// Set-Cookie string (possibly several values joined with "; "),
// discarding cookie attributes.
func parseCookieString(s string) []*http.Cookie {
	var cookies []*http.Cookie
	for _, segment := range strings.Split(s, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		name, value, found := strings.Cut(segment, "=")
		if !found {
			continue
		}
		name = strings.TrimSpace(name)
		if cookieAttributes[strings.ToLower(name)] {
			continue
		}
		cookies = append(cookies, &http.Cookie{Name: name, Value: strings.TrimSpace(value)})
	}
	return cookies
}

// Text decodes a scalar response body from the backend's read-only field
// endpoints, which return either a bare string, a JSON-encoded string, or
// a number.
func Text(body []byte) string {
	trimmed := strings.TrimSpace(string(body))

	var decoded any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return trimmed
	}
	switch v := decoded.(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%v", v)
	default:
		return trimmed
	}
}
