package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a digital item sold through the storefront. FilePath points at
// the deliverable asset served through download tokens; ImagePath is the
// listing artwork.
type Product struct {
	ID                     uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name                   string    `gorm:"column:name;not null"`
	Description            string    `gorm:"column:description;not null"`
	PriceCents             int64     `gorm:"column:price_cents;not null"`
	FilePath               string    `gorm:"column:file_path;not null"`
	ImagePath              string    `gorm:"column:image_path;not null"`
	IsAvailableForPurchase bool      `gorm:"column:is_available_for_purchase;not null;default:true"`
	CreatedAt              time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
