package validate

import (
	"testing"
	"time"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"name@example.com", true},
		{"a@b.co", true},
		{"first.last+tag@sub.example.org", true},
		{"", false},
		{"plainaddress", false},
		{"@example.com", false},
		{"name@", false},
		{"name@example", false},
		{"name @example.com", false},
		{"name@exa mple.com", false},
	}

	for _, tt := range tests {
		if got := Email(tt.email); got != tt.want {
			t.Errorf("Email(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestStrongPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"all classes present", "Abcdef1!", true},
		{"longer valid", "MyPassw0rd?", true},
		{"too short", "Abc1!", false},
		{"missing uppercase", "abcdef1!", false},
		{"missing lowercase", "ABCDEF1!", false},
		{"missing digit", "Abcdefg!", false},
		{"missing symbol", "Abcdefg1", false},
		{"symbol outside accepted set", "Abcdefg1#", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StrongPassword(tt.password); got != tt.want {
				t.Errorf("StrongPassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestDateOfBirth(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name             string
		day, month, year string
		want             string
		ok               bool
	}{
		{"valid", "7", "3", "1990", "1990-03-07", true},
		{"valid with spaces", " 7 ", " 3 ", " 1990 ", "1990-03-07", true},
		{"leap day valid", "29", "2", "2000", "2000-02-29", true},
		{"leap day invalid year", "29", "2", "1999", "", false},
		{"impossible date", "31", "4", "1990", "", false},
		{"month out of range", "1", "13", "1990", "", false},
		{"day zero", "0", "5", "1990", "", false},
		{"year below floor", "1", "1", "1899", "", false},
		{"future date", "16", "6", "2026", "", false},
		{"today is not in the past", "15", "6", "2026", "", false},
		{"yesterday is fine", "14", "6", "2026", "2026-06-14", true},
		{"non-numeric day", "x", "3", "1990", "", false},
		{"empty fields", "", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DateOfBirth(tt.day, tt.month, tt.year, now)
			if ok != tt.ok || got != tt.want {
				t.Errorf("DateOfBirth(%q, %q, %q) = (%q, %v), want (%q, %v)",
					tt.day, tt.month, tt.year, got, ok, tt.want, tt.ok)
			}
		})
	}
}
