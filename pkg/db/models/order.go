package models

import (
	"time"

	"github.com/google/uuid"
)

// Order records a completed purchase. PaymentIntentID is unique so replayed
// fulfillment requests for the same payment land on the existing row, and
// (email, product_id) is unique so a customer cannot buy the same product
// twice.
type Order struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID       uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_orders_email_product"`
	Email           string    `gorm:"column:email;not null;uniqueIndex:idx_orders_email_product"`
	PricePaidCents  int64     `gorm:"column:price_paid_cents;not null"`
	PaymentIntentID string    `gorm:"column:payment_intent_id;not null;uniqueIndex"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
