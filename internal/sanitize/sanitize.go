// Package sanitize provides HTML sanitization for content fetched from the
// upstream backend. Uses bluemonday to strip dangerous HTML (script tags,
// event handlers, javascript: URLs) while preserving safe formatting.
//
// The support banner is upstream-controlled HTML rendered into the page;
// it is sanitized on every fetch rather than trusted.
package sanitize

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// policy is the singleton bluemonday policy for sanitizing upstream HTML.
// Initialized once via sync.Once for thread-safe lazy initialization.
var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared sanitization policy, initializing it on first call.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.UGCPolicy()

		// mailto: links appear in the support banner contact details.
		policy.AllowURLSchemes("http", "https", "mailto")
	})
	return policy
}

// HTML sanitizes upstream-provided HTML content by stripping dangerous
// elements while preserving safe formatting tags. The sanitized output is
// safe for rendering via templ.Raw.
func HTML(input string) string {
	if input == "" {
		return ""
	}
	return getPolicy().Sanitize(input)
}
