package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avellaneda-dev/storefront-backend/pkg/db/models"
)

// View is the product payload returned to clients. Price carries both the
// raw cents and a formatted major-unit string.
type View struct {
	ID                     uuid.UUID `json:"id"`
	Name                   string    `json:"name"`
	Description            string    `json:"description"`
	PriceCents             int64     `json:"price_cents"`
	Price                  string    `json:"price"`
	ImagePath              string    `json:"image_path"`
	IsAvailableForPurchase bool      `json:"is_available_for_purchase"`
	CreatedAt              time.Time `json:"created_at"`
}

// CreateInput carries the admin create payload.
type CreateInput struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"required"`
	PriceCents  int64  `json:"price_cents" validate:"required,min=0"`
	FilePath    string `json:"file_path" validate:"required"`
	ImagePath   string `json:"image_path" validate:"required"`
}

// UpdateInput carries the admin partial-update payload.
type UpdateInput struct {
	Name                   *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description            *string `json:"description,omitempty"`
	PriceCents             *int64  `json:"price_cents,omitempty" validate:"omitempty,min=0"`
	FilePath               *string `json:"file_path,omitempty"`
	ImagePath              *string `json:"image_path,omitempty"`
	IsAvailableForPurchase *bool   `json:"is_available_for_purchase,omitempty"`
}

func toView(product *models.Product) View {
	return View{
		ID:                     product.ID,
		Name:                   product.Name,
		Description:            product.Description,
		PriceCents:             product.PriceCents,
		Price:                  formatCents(product.PriceCents),
		ImagePath:              product.ImagePath,
		IsAvailableForPurchase: product.IsAvailableForPurchase,
		CreatedAt:              product.CreatedAt,
	}
}

func formatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}
