package middleware

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestValidateMessageContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{name: "normal message", content: "hello", wantErr: false},
		{name: "whitespace passes shape check", content: "   ", wantErr: false},
		{name: "at size limit", content: strings.Repeat("a", 10000), wantErr: false},
		{name: "empty", content: "", wantErr: true},
		{name: "over size limit", content: strings.Repeat("a", 10001), wantErr: true},
		{name: "invalid utf8", content: string([]byte{0xff, 0xfe}), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMessageContent(tt.content)
			if (err != nil) != tt.wantErr {
				t.Errorf("got err %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateConversationID(t *testing.T) {
	if err := ValidateConversationID(uuid.Must(uuid.NewV7()).String()); err != nil {
		t.Errorf("valid uuid rejected: %v", err)
	}
	if err := ValidateConversationID("nope"); err == nil {
		t.Error("invalid id accepted")
	}
}
