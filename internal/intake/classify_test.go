package intake

import (
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want ReplyKind
	}{
		{
			name: "bare email",
			text: "user@example.com",
			want: ReplyEmailAck,
		},
		{
			name: "email embedded in question beats keywords",
			text: "what is this? my email is user@example.com",
			want: ReplyEmailAck,
		},
		{
			name: "what question",
			text: "What is this site?",
			want: ReplyProjectInfo,
		},
		{
			name: "how question",
			text: "how does it work",
			want: ReplyProjectInfo,
		},
		{
			name: "platform keyword",
			text: "tell me more about the PLATFORM",
			want: ReplyProjectInfo,
		},
		{
			name: "trading keyword",
			text: "is trading risky",
			want: ReplyProjectInfo,
		},
		{
			name: "vibe keyword",
			text: "vibe?",
			want: ReplyProjectInfo,
		},
		{
			name: "features keyword",
			text: "list the features please",
			want: ReplyProjectInfo,
		},
		{
			name: "greeting",
			text: "hello there",
			want: ReplyFallback,
		},
		{
			name: "unrelated statement",
			text: "nice weather today",
			want: ReplyFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text, false)
			if got.Kind != tt.want {
				t.Errorf("got %s, want %s", got.Kind, tt.want)
			}
		})
	}
}

func TestClassifyEmailAckCarriesAddress(t *testing.T) {
	reply := Classify("reach me at jane@example.org please", false)
	if reply.Kind != ReplyEmailAck {
		t.Fatalf("got %s, want %s", reply.Kind, ReplyEmailAck)
	}
	if reply.Email != "jane@example.org" {
		t.Errorf("email = %q, want %q", reply.Email, "jane@example.org")
	}
	if !strings.Contains(reply.Content, "jane@example.org") {
		t.Errorf("ack content does not mention the address: %q", reply.Content)
	}
}

func TestClassifyRepeatEmailStillAcked(t *testing.T) {
	// A second address later in the session gets the same acknowledgement.
	reply := Classify("use other@example.com instead", true)
	if reply.Kind != ReplyEmailAck {
		t.Errorf("got %s, want %s", reply.Kind, ReplyEmailAck)
	}
	if reply.Email != "other@example.com" {
		t.Errorf("email = %q, want %q", reply.Email, "other@example.com")
	}
}

func TestStatusMessage(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{status: "waitlist", want: WaitlistStatusMessage},
		{status: "paid", want: PaidStatusMessage},
		{status: "guest", want: GuestStatusMessage},
		{status: "", want: GuestStatusMessage},
		{status: "bogus", want: GuestStatusMessage},
	}

	for _, tt := range tests {
		if got := StatusMessage(tt.status); got != tt.want {
			t.Errorf("StatusMessage(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}
