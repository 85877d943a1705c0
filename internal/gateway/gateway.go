// Package gateway adapts the payment provider's order/verify flow. It holds
// no state beyond the configured key pair; orders live on the provider's side
// and the resulting ids are bound to the student's staged form in Redis.
package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var (
	// ErrGateway is a transport or auth failure talking to the provider.
	// Not retried locally; the user retries manually.
	ErrGateway = errors.New("payment gateway request failed")

	// ErrSignatureInvalid covers every verification anomaly uniformly:
	// mismatched signature, malformed input, tampered ids.
	ErrSignatureInvalid = errors.New("payment signature verification failed")
)

// Gateway creates payment orders and verifies payment confirmations.
type Gateway interface {
	// CreateOrder reserves a payment of amountPaise (minor units) with the
	// provider and returns the provider's order id.
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (string, error)

	// Verify checks that the confirmation signature was produced by the
	// provider for (orderID, paymentID). Returns ErrSignatureInvalid on any
	// mismatch.
	Verify(orderID, paymentID, signature string) error
}

// Sign computes the provider's confirmation signature: hex-encoded
// HMAC-SHA256 over "orderID|paymentID" keyed by the shared secret.
// Exported for the mock gateway and for test fixtures.
func Sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
