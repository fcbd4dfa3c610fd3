// Package intake implements the conversational intake engine: it turns
// free-text chat messages into an email capture, a project-info reply,
// or a generic nudge, and coordinates the simulated typing delay and
// the subscription forwarder call.
package intake

import (
	"regexp"
	"strings"
)

// emailPattern matches the conventional local@domain.tld shape. Shape
// only: no deliverability or DNS checks.
var emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// fullEmailPattern anchors the same shape to the whole string, used to
// validate addresses submitted directly (landing-page form, subscribe API).
var fullEmailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// ExtractEmail scans text for an email-shaped substring and returns the
// first match. Any later matches in the same text are ignored.
func ExtractEmail(text string) (string, bool) {
	m := emailPattern.FindString(text)
	if m == "" {
		return "", false
	}
	return m, true
}

// ValidateEmail reports whether email is a syntactically complete address.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmptyEmail
	}
	if !fullEmailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}
