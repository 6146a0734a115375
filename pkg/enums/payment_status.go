package enums

import "fmt"

// PaymentStatus mirrors the states Stripe reports on a payment intent that
// the fulfillment flow cares about. Anything other than succeeded blocks
// order creation.
type PaymentStatus string

const (
	PaymentStatusSucceeded      PaymentStatus = "succeeded"
	PaymentStatusProcessing     PaymentStatus = "processing"
	PaymentStatusRequiresAction PaymentStatus = "requires_action"
	PaymentStatusCanceled       PaymentStatus = "canceled"
	PaymentStatusFailed         PaymentStatus = "failed"
)

var validPaymentStatuses = []PaymentStatus{
	PaymentStatusSucceeded,
	PaymentStatusProcessing,
	PaymentStatusRequiresAction,
	PaymentStatusCanceled,
	PaymentStatusFailed,
}

// String implements fmt.Stringer.
func (p PaymentStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentStatus.
func (p PaymentStatus) IsValid() bool {
	for _, candidate := range validPaymentStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// IsSuccessful reports whether the payment cleared.
func (p PaymentStatus) IsSuccessful() bool {
	return p == PaymentStatusSucceeded
}

// ParsePaymentStatus converts raw provider input into a PaymentStatus.
// Unknown provider states return an error; callers treat that as a
// non-successful payment.
func ParsePaymentStatus(value string) (PaymentStatus, error) {
	for _, candidate := range validPaymentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment status %q", value)
}
