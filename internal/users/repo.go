package users

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/avellaneda-dev/storefront-backend/pkg/db"
	"github.com/avellaneda-dev/storefront-backend/pkg/db/models"
)

// Repository persists storefront customers.
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

// FirstOrCreateByEmail returns the customer row for the email, creating it on
// first purchase. Emails are stored lowercased.
func (r *Repository) FirstOrCreateByEmail(ctx context.Context, email string) (*models.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", normalized).
		Attrs(models.User{Email: normalized}).
		FirstOrCreate(&user).
		Error
	if err != nil {
		if !db.IsUniqueViolation(err) {
			return nil, err
		}
		// lost a race with a concurrent signup; the row exists now
		if findErr := r.db.WithContext(ctx).First(&user, "email = ?", normalized).Error; findErr != nil {
			return nil, findErr
		}
	}
	return &user, nil
}

// CountInRange counts customers created inside the window. A nil start
// leaves the lower bound open.
func (r *Repository) CountInRange(ctx context.Context, start *time.Time, end time.Time) (int64, error) {
	qb := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("created_at <= ?", end)
	if start != nil {
		qb = qb.Where("created_at >= ?", *start)
	}

	var count int64
	if err := qb.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListSignupsInRange returns the signup timestamps inside the window,
// oldest first. A nil start leaves the lower bound open.
func (r *Repository) ListSignupsInRange(ctx context.Context, start *time.Time, end time.Time) ([]time.Time, error) {
	qb := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("created_at <= ?", end).
		Order("created_at ASC")
	if start != nil {
		qb = qb.Where("created_at >= ?", *start)
	}

	var stamps []time.Time
	if err := qb.Pluck("created_at", &stamps).Error; err != nil {
		return nil, err
	}
	return stamps, nil
}

// EarliestUserAt returns the first signup timestamp, or nil with no users.
func (r *Repository) EarliestUserAt(ctx context.Context) (*time.Time, error) {
	var user models.User
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&user).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	at := user.CreatedAt
	return &at, nil
}
