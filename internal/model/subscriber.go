package model

import (
	"time"
)

// SubscriberStatus is the entitlement tier recorded for a subscriber.
// The subscriber store is the remote source of truth for waitlist
// membership; clients hold their own copy of the tier.
type SubscriberStatus string

const (
	StatusWaitlist SubscriberStatus = "waitlist"
	StatusPaid     SubscriberStatus = "paid"
)

// Subscriber is a captured email on the launch list.
type Subscriber struct {
	ID        int64            `json:"id"`
	Email     string           `json:"email"`
	Status    SubscriberStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

// SubscribeRequest is the request body for POST /api/subscribe.
type SubscribeRequest struct {
	Email string `json:"email"`
}

// SubscribeResponse is the success response for POST /api/subscribe.
type SubscribeResponse struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// InvoiceResponse carries the Solana Pay link for the Early-Bird upgrade.
type InvoiceResponse struct {
	SolanaURL string `json:"solana_url"`
	QRSVG     string `json:"qr_svg"`
}

// StatusResponse is the payment status poll response.
type StatusResponse struct {
	Status string `json:"status"`
}

// ListSubscribersResponse is the admin listing response.
type ListSubscribersResponse struct {
	Total       int          `json:"total"`
	Subscribers []Subscriber `json:"subscribers"`
}
