package stripe

import (
	"context"
	"time"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/paymentintent"
)

// PaymentResult is the slice of a payment intent that fulfillment needs.
type PaymentResult struct {
	ID          string
	Status      string
	AmountCents int64
	Email       string
	ProductID   string
}

// PaymentRetriever fetches payment state from the provider so the
// fulfillment service can be tested against stubs.
type PaymentRetriever interface {
	RetrievePayment(ctx context.Context, id string) (*PaymentResult, error)
}

type paymentClient struct {
	timeout time.Duration
}

// NewPaymentRetriever wraps the initialized Stripe client. Every call is
// bounded by the configured timeout.
func NewPaymentRetriever(api *Client, timeout time.Duration) PaymentRetriever {
	if api == nil {
		return nil
	}
	return &paymentClient{timeout: timeout}
}

func (p *paymentClient) RetrievePayment(ctx context.Context, id string) (*PaymentResult, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	intent, err := paymentintent.Get(id, params)
	if err != nil {
		return nil, err
	}

	result := &PaymentResult{
		ID:          intent.ID,
		Status:      string(intent.Status),
		AmountCents: intent.Amount,
	}
	if intent.ReceiptEmail != "" {
		result.Email = intent.ReceiptEmail
	}
	if intent.Metadata != nil {
		result.ProductID = intent.Metadata["productId"]
		if result.Email == "" {
			result.Email = intent.Metadata["email"]
		}
	}
	return result, nil
}
