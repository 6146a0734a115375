package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avellaneda-dev/storefront-backend/pkg/db/models"
)

// View is the admin-facing order payload.
type View struct {
	ID              uuid.UUID `json:"id"`
	ProductID       uuid.UUID `json:"product_id"`
	ProductName     string    `json:"product_name,omitempty"`
	Email           string    `json:"email"`
	PricePaidCents  int64     `json:"price_paid_cents"`
	PricePaid       string    `json:"price_paid"`
	PaymentIntentID string    `json:"payment_intent_id"`
	CreatedAt       time.Time `json:"created_at"`
}

// Page is one page of admin order views.
type Page struct {
	Orders     []View `json:"orders"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// ToView maps an order row (with optional product preload) to its payload.
func ToView(order *models.Order) View {
	view := View{
		ID:              order.ID,
		ProductID:       order.ProductID,
		Email:           order.Email,
		PricePaidCents:  order.PricePaidCents,
		PricePaid:       decimal.NewFromInt(order.PricePaidCents).Div(decimal.NewFromInt(100)).StringFixed(2),
		PaymentIntentID: order.PaymentIntentID,
		CreatedAt:       order.CreatedAt,
	}
	if order.Product != nil {
		view.ProductName = order.Product.Name
	}
	return view
}

// ToPage maps a repository page to its payload.
func ToPage(result *ListResult) Page {
	views := make([]View, 0, len(result.Orders))
	for i := range result.Orders {
		views = append(views, ToView(&result.Orders[i]))
	}
	return Page{Orders: views, NextCursor: result.NextCursor}
}
