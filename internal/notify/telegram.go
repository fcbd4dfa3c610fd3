// Package notify sends operator notifications about new subscribers.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vibe-trading/waitlist-platform/pkg/logger"
)

// Notifier announces waitlist events to an operator channel.
type Notifier interface {
	SubscriberAdded(ctx context.Context, email string)
	PaymentConfirmed(ctx context.Context, userID int64)
}

// TelegramNotifier posts messages to a Telegram chat via the Bot API.
// When the token or chat ID is missing every call is a logged no-op so
// the platform runs fine without credentials.
type TelegramNotifier struct {
	botToken string
	chatID   string
	client   *http.Client
	logger   *logger.Logger
}

// NewTelegram creates a Telegram notifier.
func NewTelegram(botToken, chatID string, log *logger.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   log,
	}
}

// SubscriberAdded announces a new waitlist signup.
func (n *TelegramNotifier) SubscriberAdded(ctx context.Context, email string) {
	n.send(ctx, fmt.Sprintf("New waitlist subscriber: %s", email))
}

// PaymentConfirmed announces an Early-Bird payment.
func (n *TelegramNotifier) PaymentConfirmed(ctx context.Context, userID int64) {
	n.send(ctx, fmt.Sprintf("Early-Bird payment confirmed for subscriber #%d", userID))
}

func (n *TelegramNotifier) send(ctx context.Context, text string) {
	if n.botToken == "" || n.chatID == "" {
		n.logger.Debug("telegram credentials not configured; skipping notification")
		return
	}

	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", n.botToken)
	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		n.logger.Error("build telegram request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Error("send telegram message", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		n.logger.Error("telegram API error", zap.Int("status", resp.StatusCode))
		return
	}
	n.logger.Debug("telegram notification sent")
}
