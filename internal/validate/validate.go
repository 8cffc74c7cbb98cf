// Package validate holds the local form-field validation rules. These run
// before any upstream call; a validation failure never leaves the handler
// that detected it.
package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// emailRe matches a minimal something@something.something shape. The
// upstream performs its own authoritative validation; this only catches
// obvious typos before a round trip.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// passwordSymbols is the accepted symbol set for the strength rule.
const passwordSymbols = "@$!%*?&"

// minDOBYear is the date-of-birth floor. Applied uniformly at every call
// site that accepts a date of birth.
const minDOBYear = 1900

// Email reports whether s looks like an email address.
func Email(s string) bool {
	return emailRe.MatchString(s)
}

// StrongPassword reports whether p satisfies the strength rule: at least
// 8 characters with at least one lowercase letter, one uppercase letter,
// one digit, and one symbol from the fixed set.
func StrongPassword(p string) bool {
	if len(p) < 8 {
		return false
	}

	var lower, upper, digit, symbol bool
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}

	return lower && upper && digit && symbol
}

// DateOfBirth combines day/month/year form fields into an ISO date
// (YYYY-MM-DD). All three fields are required; the combination must be a
// real calendar date, strictly before now, with year 1900 or later.
// Returns the formatted date and whether it was accepted.
func DateOfBirth(day, month, year string, now time.Time) (string, bool) {
	d, errD := strconv.Atoi(strings.TrimSpace(day))
	m, errM := strconv.Atoi(strings.TrimSpace(month))
	y, errY := strconv.Atoi(strings.TrimSpace(year))
	if errD != nil || errM != nil || errY != nil {
		return "", false
	}
	if y < minDOBYear {
		return "", false
	}

	date := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)

	// time.Date normalizes out-of-range components (Feb 30 becomes
	// Mar 1); a changed component means the input was not a real date.
	if date.Year() != y || date.Month() != time.Month(m) || date.Day() != d {
		return "", false
	}

	if !date.Before(now) {
		return "", false
	}

	return date.Format("2006-01-02"), true
}
