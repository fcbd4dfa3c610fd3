package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibe-trading/waitlist-platform/internal/model"
)

func TestSubscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/subscribe", r.URL.Path)

		var req model.SubscribeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "user@example.com", req.Email)

		json.NewEncoder(w).Encode(model.SubscribeResponse{UserID: 7, Status: "waitlist"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.Subscribe(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.UserID)
	assert.Equal(t, "waitlist", resp.Status)
}

func TestSubscribeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "invalid email format",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Subscribe(context.Background(), "broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email format")
}

func TestSubmitImplementsForwarder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.SubscribeResponse{UserID: 3, Status: "waitlist"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Submit(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, int64(3), res.UserID)
}

func TestGetInvoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/invoice/7", r.URL.Path)
		json.NewEncoder(w).Encode(model.InvoiceResponse{
			SolanaURL: "solana:wallet?amount=0.5",
			QRSVG:     "data:image/png;base64,AAAA",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	inv, err := c.GetInvoice(context.Background(), 7)
	require.NoError(t, err)
	assert.Contains(t, inv.SolanaURL, "solana:")
}

func TestCheckStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/status/7", r.URL.Path)
		json.NewEncoder(w).Encode(model.StatusResponse{Status: "paid"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.CheckStatus(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "paid", resp.Status)
}
