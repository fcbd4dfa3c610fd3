// Package client provides a typed HTTP client for the waitlist API,
// used by embedders of the chat widget and by the payment modal's
// status poller.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vibe-trading/waitlist-platform/internal/intake"
	"github.com/vibe-trading/waitlist-platform/internal/model"
)

// Client talks to the waitlist API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the API at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Subscribe adds an email to the waitlist.
func (c *Client) Subscribe(ctx context.Context, email string) (*model.SubscribeResponse, error) {
	body, err := json.Marshal(model.SubscribeRequest{Email: email})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/subscribe", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out model.SubscribeResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Submit implements intake.Forwarder over HTTP: a single attempt, no
// retries, failures reported with a human-readable message.
func (c *Client) Submit(ctx context.Context, email string) (*intake.SubscribeResult, error) {
	resp, err := c.Subscribe(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", email, err)
	}
	return &intake.SubscribeResult{
		UserID:   resp.UserID,
		Accepted: true,
		Message:  "subscribed",
	}, nil
}

// GetInvoice requests an Early-Bird invoice for a subscriber.
func (c *Client) GetInvoice(ctx context.Context, userID int64) (*model.InvoiceResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/api/invoice/%d", c.baseURL, userID), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out model.InvoiceResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckStatus fetches a subscriber's payment status.
func (c *Client) CheckStatus(ctx context.Context, userID int64) (*model.StatusResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/api/status/%d", c.baseURL, userID), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	var out model.StatusResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// apiError is the server's failure envelope.
type apiError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("%s: %s", resp.Status, apiErr.Message)
		}
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
