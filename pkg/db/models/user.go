package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a storefront customer, keyed by email. Rows are created lazily the
// first time an email completes checkout.
type User struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email     string    `gorm:"column:email;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
