package gateway

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
	"github.com/rs/zerolog"
)

// Razorpay is the production Gateway backed by the Razorpay Orders API.
type Razorpay struct {
	client *razorpay.Client
	secret string
	log    zerolog.Logger
}

var _ Gateway = (*Razorpay)(nil)

// NewRazorpay creates a Razorpay gateway. timeoutSeconds bounds every API
// call so a stalled provider surfaces as ErrGateway instead of hanging.
func NewRazorpay(keyID, keySecret string, timeoutSeconds int64, log zerolog.Logger) *Razorpay {
	client := razorpay.NewClient(keyID, keySecret)
	client.SetTimeout(int16(timeoutSeconds))

	return &Razorpay{
		client: client,
		secret: keySecret,
		log:    log.With().Str("component", "razorpay_gateway").Logger(),
	}
}

// CreateOrder creates a capture-on-payment order with the provider.
func (g *Razorpay) CreateOrder(_ context.Context, amountPaise int64, currency, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":          amountPaise,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		g.log.Warn().Err(err).Int64("amount_paise", amountPaise).Msg("Order creation failed")
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("%w: order id missing in response", ErrGateway)
	}

	g.log.Info().Str("order_id", orderID).Int64("amount_paise", amountPaise).Msg("Order created")
	return orderID, nil
}

// Verify recomputes the confirmation signature from the shared secret and
// compares it against the provider-supplied one.
func (g *Razorpay) Verify(orderID, paymentID, signature string) error {
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	if !utils.VerifyPaymentSignature(params, signature, g.secret) {
		return ErrSignatureInvalid
	}
	return nil
}
