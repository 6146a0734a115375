package models

import (
	"time"

	"github.com/google/uuid"
)

// DownloadToken grants time-boxed access to a single product's file.
// Expiry is checked at read time; stale rows are never mutated.
type DownloadToken struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
