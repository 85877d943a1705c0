package gateway

import (
	"context"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_key_secret"

func TestRazorpayVerify(t *testing.T) {
	g := NewRazorpay("test_key_id", testSecret, 10, zerolog.New(os.Stderr))

	orderID := "order_Nxy123abc"
	paymentID := "pay_Nxy456def"
	signature := Sign(orderID, paymentID, testSecret)

	assert.NoError(t, g.Verify(orderID, paymentID, signature))

	// Any tampered component must be rejected uniformly.
	assert.ErrorIs(t, g.Verify("order_other", paymentID, signature), ErrSignatureInvalid)
	assert.ErrorIs(t, g.Verify(orderID, "pay_other", signature), ErrSignatureInvalid)
	assert.ErrorIs(t, g.Verify(orderID, paymentID, Sign(orderID, paymentID, "wrong_secret")), ErrSignatureInvalid)
	assert.ErrorIs(t, g.Verify(orderID, paymentID, ""), ErrSignatureInvalid)
	assert.ErrorIs(t, g.Verify(orderID, paymentID, "not-even-hex"), ErrSignatureInvalid)
}

func TestMockCreateOrder(t *testing.T) {
	g := NewMock(testSecret)

	id1, err := g.CreateOrder(context.Background(), 10000, "INR", "form-1")
	require.NoError(t, err)
	id2, err := g.CreateOrder(context.Background(), 10000, "INR", "form-1")
	require.NoError(t, err)

	assert.True(t, len(id1) > len("order_mock_"))
	assert.Contains(t, id1, "order_mock_")
	assert.NotEqual(t, id1, id2, "order ids must be unique")
}

func TestMockVerify(t *testing.T) {
	g := NewMock(testSecret)

	sig := Sign("order_mock_abc", "pay_1", testSecret)
	assert.NoError(t, g.Verify("order_mock_abc", "pay_1", sig))
	assert.ErrorIs(t, g.Verify("order_mock_abc", "pay_2", sig), ErrSignatureInvalid)
}

func TestSignDeterministic(t *testing.T) {
	a := Sign("o", "p", "s")
	b := Sign("o", "p", "s")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64, "hex-encoded sha256")
	assert.NotEqual(t, a, Sign("o", "p", "other"))
}
