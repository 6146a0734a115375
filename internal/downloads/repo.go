package downloads

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avellaneda-dev/storefront-backend/pkg/db/models"
)

// Repository persists download tokens.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{db: conn}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a token row.
func (r *Repository) Create(ctx context.Context, token *models.DownloadToken) (*models.DownloadToken, error) {
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return nil, err
	}
	return token, nil
}

// FindByID loads a token with its product.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.DownloadToken, error) {
	var token models.DownloadToken
	if err := r.db.WithContext(ctx).Preload("Product").First(&token, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &token, nil
}
