package adminauth

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/avellaneda-dev/storefront-backend/pkg/db/models"
)

// Repository loads admin accounts.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{db: conn}
}

// FindByEmail loads an admin account by email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var admin models.AdminUser
	normalized := strings.ToLower(strings.TrimSpace(email))
	if err := r.db.WithContext(ctx).First(&admin, "email = ?", normalized).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}
