// Package session implements the local browser-facing session and the
// bridge to the upstream backend's session artifacts. The browser holds an
// opaque token in a cookie; the session record itself lives in Redis.
//
// The upstream session cookie stored here is a server-side-only secret: it
// is forwarded to the upstream on relayed calls and must never be written
// to the browser.
package session

import "time"

// Principal is the authenticated user record set by a successful login
// handshake. It carries its own copy of the upstream artifacts: some
// callers hold a principal, some only the raw session, so the bridged
// cookie is looked up on the principal first and the session second.
type Principal struct {
	Username       string `json:"username"`
	UpstreamCookie string `json:"upstream_cookie"`
	CSRFToken      string `json:"csrf_token"`
}

// LocalSession is the per-browser session record, JSON-encoded in Redis.
type LocalSession struct {
	// Token is the opaque identifier from the browser cookie. Not
	// serialized; the Redis key already carries it.
	Token string `json:"-"`

	// Principal is set by a successful login and removed on logout.
	Principal *Principal `json:"principal,omitempty"`

	// UpstreamCookie is the session-scoped copy of the upstream's
	// Set-Cookie value(s), joined with "; " when multi-valued. Empty
	// means not authenticated with the upstream.
	UpstreamCookie string `json:"upstream_cookie,omitempty"`

	// CSRFToken is the last token obtained from the upstream. It is
	// short-lived; relayed calls refetch rather than trusting it.
	CSRFToken string `json:"csrf_token,omitempty"`

	// ResetEmail and VerifiedOTP hold the forgot-password flow state.
	ResetEmail  string `json:"reset_email,omitempty"`
	VerifiedOTP string `json:"verified_otp,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Authenticated reports whether the session carries a recognized principal.
func (s *LocalSession) Authenticated() bool {
	return s.Principal != nil
}

// BridgedCookie returns the upstream session cookie, checking the
// principal first and falling back to the session-scoped field. Empty
// means the caller must treat the operation as unauthorized rather than
// attempting the upstream call.
func (s *LocalSession) BridgedCookie() string {
	if s.Principal != nil && s.Principal.UpstreamCookie != "" {
		return s.Principal.UpstreamCookie
	}
	return s.UpstreamCookie
}

// SetLogin records a successful login handshake. The new artifacts fully
// replace any prior upstream state.
func (s *LocalSession) SetLogin(username, upstreamCookie, csrfToken string) {
	s.Principal = &Principal{
		Username:       username,
		UpstreamCookie: upstreamCookie,
		CSRFToken:      csrfToken,
	}
	s.UpstreamCookie = upstreamCookie
	s.CSRFToken = csrfToken
}

// Clear removes the principal and all upstream fields. Used on logout.
func (s *LocalSession) Clear() {
	s.Principal = nil
	s.UpstreamCookie = ""
	s.CSRFToken = ""
	s.ResetEmail = ""
	s.VerifiedOTP = ""
}

// SetResetEmail records the email entered at the start of the
// forgot-password flow. Any previously verified OTP is left in place,
// matching the flow's observed behavior.
func (s *LocalSession) SetResetEmail(email string) {
	s.ResetEmail = email
}

// PendingReset returns the forgot-password flow state: the entered email
// and the OTP value that passed verification, either of which may be empty.
func (s *LocalSession) PendingReset() (email, verifiedOTP string) {
	return s.ResetEmail, s.VerifiedOTP
}

// ClearPendingReset removes the forgot-password flow state.
func (s *LocalSession) ClearPendingReset() {
	s.ResetEmail = ""
	s.VerifiedOTP = ""
}
