package fulfillment

import (
	"time"

	"github.com/google/uuid"
)

// Step names the stages a fulfillment attempt moves through. Logged with
// every transition so a stuck payment can be traced.
type Step string

const (
	StepStarted        Step = "STARTED"
	StepPaymentChecked Step = "PAYMENT_CHECKED"
	StepOrderCreated   Step = "ORDER_CREATED"
	StepTokenIssued    Step = "TOKEN_ISSUED"
)

// Input is the fulfill request body. Email is optional; when absent the
// payment's receipt email is used.
type Input struct {
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
	Email           string `json:"email,omitempty" validate:"omitempty,email"`
}

// Result reports a completed fulfillment. AlreadyFulfilled is set when the
// payment intent had been processed before; the order fields then describe
// the original order and the token is freshly minted.
type Result struct {
	OrderID          uuid.UUID `json:"order_id"`
	ProductID        uuid.UUID `json:"product_id"`
	Email            string    `json:"email"`
	DownloadTokenID  uuid.UUID `json:"download_token_id"`
	TokenExpiresAt   time.Time `json:"token_expires_at"`
	AlreadyFulfilled bool      `json:"already_fulfilled"`
}

// PrecheckResult answers the prior-purchase probe used by the storefront
// before it opens a payment form.
type PrecheckResult struct {
	AlreadyPurchased bool `json:"already_purchased"`
}
