package intake

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyEmail reports a missing address.
	ErrEmptyEmail = errors.New("email cannot be empty")
	// ErrInvalidEmail reports an address that fails the shape check.
	ErrInvalidEmail = errors.New("invalid email format")
)

// ReplyKind tags the category of assistant reply chosen for a message.
type ReplyKind string

const (
	// ReplyEmailAck acknowledges a captured email address.
	ReplyEmailAck ReplyKind = "email_ack"
	// ReplyProjectInfo answers a question about the project.
	ReplyProjectInfo ReplyKind = "project_info"
	// ReplyFallback nudges the user toward leaving an email.
	ReplyFallback ReplyKind = "fallback"
)

// projectKeywords trigger the project-info reply when no email is present.
var projectKeywords = []string{
	"what", "how", "platform", "trading", "about", "project", "vibe", "features",
}

// Reply is the outcome of classifying one message. Email carries the
// extracted address when Kind is ReplyEmailAck.
type Reply struct {
	Kind    ReplyKind
	Email   string
	Content string
}

// Classify decides which reply a message gets. Rules, in order: an
// email-shaped substring wins and is acknowledged even when an email
// was already captured earlier in the session (the forwarder is invoked
// again; the captured flag only flips once). Otherwise a case-insensitive
// keyword match selects the project-info template, and everything else
// falls back to the generic nudge. Pure text matching, no external calls.
func Classify(text string, emailCaptured bool) Reply {
	if email, ok := ExtractEmail(text); ok {
		return Reply{
			Kind:    ReplyEmailAck,
			Email:   email,
			Content: emailAckMessage(email),
		}
	}

	lower := strings.ToLower(text)
	for _, kw := range projectKeywords {
		if strings.Contains(lower, kw) {
			return Reply{Kind: ReplyProjectInfo, Content: ProjectInfoMessage}
		}
	}

	return Reply{Kind: ReplyFallback, Content: FallbackMessage}
}
