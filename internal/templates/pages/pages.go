// Package pages holds the page components rendered by the relay handlers.
// Components are built with templ.ComponentFunc; all dynamic values pass
// through templ.EscapeString, and the only raw HTML rendered anywhere is
// the sanitized support banner.
package pages

import (
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// esc escapes dynamic text for element content and attribute values.
func esc(s string) string {
	return templ.EscapeString(s)
}

// writer accumulates the first output error so components can emit
// markup without per-call error checks.
type writer struct {
	w   io.Writer
	err error
}

func (wr *writer) printf(format string, args ...any) {
	if wr.err != nil {
		return
	}
	_, wr.err = fmt.Fprintf(wr.w, format, args...)
}

func (wr *writer) raw(s string) {
	if wr.err != nil {
		return
	}
	_, wr.err = io.WriteString(wr.w, s)
}

// csrfField emits the hidden double-submit token field for a form.
func (wr *writer) csrfField(token string) {
	wr.printf(`<input type="hidden" name="csrf_token" value="%s">`, esc(token))
}

// fieldError emits an inline error paragraph when msg is non-empty.
func (wr *writer) fieldError(msg string) {
	if msg == "" {
		return
	}
	wr.printf(`<p class="field-error">%s</p>`, esc(msg))
}

// banner emits a notification banner when msg is non-empty.
func (wr *writer) banner(class, msg string) {
	if msg == "" {
		return
	}
	wr.printf(`<div class="banner banner-%s" role="alert">%s</div>`, class, esc(msg))
}

// textInput emits a labelled text-like input with its inline error.
func (wr *writer) textInput(inputType, name, label, value, fieldErr string) {
	wr.printf(`<div class="form-group"><label for="%s">%s</label>`, name, esc(label))
	wr.fieldError(fieldErr)
	wr.printf(`<input type="%s" id="%s" name="%s" value="%s">`, inputType, name, name, esc(value))
	wr.raw(`</div>`)
}

// passwordInput emits a password field. Submitted passwords are never
// echoed back into the form.
func (wr *writer) passwordInput(name, label, fieldErr string) {
	wr.printf(`<div class="form-group"><label for="%s">%s</label>`, name, esc(label))
	wr.fieldError(fieldErr)
	wr.printf(`<input type="password" id="%s" name="%s" autocomplete="off">`, name, name)
	wr.raw(`</div>`)
}

// dobInputs emits the three-part date-of-birth group sharing one error.
func (wr *writer) dobInputs(day, month, year, fieldErr string) {
	wr.raw(`<fieldset class="form-group dob-group"><legend>Date of birth</legend>`)
	wr.fieldError(fieldErr)
	wr.printf(`<label for="date-of-birth-day">Day</label>`+
		`<input type="text" id="date-of-birth-day" name="date-of-birth-day" inputmode="numeric" value="%s">`, esc(day))
	wr.printf(`<label for="date-of-birth-month">Month</label>`+
		`<input type="text" id="date-of-birth-month" name="date-of-birth-month" inputmode="numeric" value="%s">`, esc(month))
	wr.printf(`<label for="date-of-birth-year">Year</label>`+
		`<input type="text" id="date-of-birth-year" name="date-of-birth-year" inputmode="numeric" value="%s">`, esc(year))
	wr.raw(`</fieldset>`)
}
