package i18n

import "testing"

func TestT(t *testing.T) {
	if got := T("en", "usernameRequired"); got != "Enter a username" {
		t.Errorf("en lookup = %q", got)
	}
	if got := T("cy", "usernameRequired"); got != "Rhowch enw defnyddiwr" {
		t.Errorf("cy lookup = %q", got)
	}
	// Unknown language falls back to English.
	if got := T("fr", "usernameRequired"); got != "Enter a username" {
		t.Errorf("fallback lookup = %q", got)
	}
	// Unknown key surfaces itself so a missing translation is visible.
	if got := T("en", "noSuchKey"); got != "noSuchKey" {
		t.Errorf("missing key = %q", got)
	}
}

// TestWelshCoverage guards against English and Welsh drifting apart: every
// English key must have a Welsh entry and vice versa.
func TestWelshCoverage(t *testing.T) {
	for key := range messages["en"] {
		if _, ok := messages["cy"][key]; !ok {
			t.Errorf("key %q has no Welsh translation", key)
		}
	}
	for key := range messages["cy"] {
		if _, ok := messages["en"][key]; !ok {
			t.Errorf("key %q has no English source", key)
		}
	}
}
