package gateway

import (
	"context"
	"crypto/hmac"
	"strings"

	"github.com/google/uuid"
)

// Mock is a Gateway that never leaves the process: order ids are generated
// locally and Verify uses the same HMAC scheme as the provider. Selected via
// GATEWAY_MOCK for dev environments and the e2e suite, which signs its own
// confirmations with the shared secret.
type Mock struct {
	secret string
}

var _ Gateway = (*Mock)(nil)

func NewMock(secret string) *Mock {
	return &Mock{secret: secret}
}

// CreateOrder returns a locally generated order id.
func (g *Mock) CreateOrder(_ context.Context, _ int64, _, _ string) (string, error) {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "order_mock_" + id[:14], nil
}

// Verify checks the confirmation against the locally computed signature.
func (g *Mock) Verify(orderID, paymentID, signature string) error {
	expected := Sign(orderID, paymentID, g.secret)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureInvalid
	}
	return nil
}
