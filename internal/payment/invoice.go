// Package payment builds Early-Bird invoices as Solana Pay links. No
// on-chain verification happens here: payment confirmation arrives
// out-of-band and is recorded against the subscriber store.
package payment

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

// Invoice is a payment request for one subscriber.
type Invoice struct {
	UserID    int64
	Reference string
	SolanaURL string
	QRDataURI string
}

// Builder creates invoices for a fixed recipient wallet and price.
type Builder struct {
	recipient string
	amount    string
	label     string
}

// NewBuilder returns a Builder for the configured wallet.
func NewBuilder(recipient, amount, label string) *Builder {
	return &Builder{recipient: recipient, amount: amount, label: label}
}

// Build creates an invoice for a subscriber: a Solana Pay URL carrying
// the amount and a unique reference, plus a QR code of that URL encoded
// as a PNG data URI for inline rendering.
func (b *Builder) Build(userID int64) (*Invoice, error) {
	if b.recipient == "" {
		return nil, fmt.Errorf("no payment recipient configured")
	}

	reference := strings.ReplaceAll(uuid.New().String(), "-", "")

	q := url.Values{}
	q.Set("amount", b.amount)
	q.Set("reference", reference)
	if b.label != "" {
		q.Set("label", b.label)
	}
	solanaURL := fmt.Sprintf("solana:%s?%s", b.recipient, q.Encode())

	png, err := qrcode.Encode(solanaURL, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode QR: %w", err)
	}

	return &Invoice{
		UserID:    userID,
		Reference: reference,
		SolanaURL: solanaURL,
		QRDataURI: "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	}, nil
}
