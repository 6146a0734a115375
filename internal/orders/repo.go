package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avellaneda-dev/storefront-backend/internal/reports"
	"github.com/avellaneda-dev/storefront-backend/pkg/db"
	"github.com/avellaneda-dev/storefront-backend/pkg/db/models"
	"github.com/avellaneda-dev/storefront-backend/pkg/pagination"
)

// Repository persists orders and answers the read paths used by fulfillment
// and reporting.
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

// CreateIfAbsent inserts the order, treating a unique violation as "already
// recorded". On conflict it reloads the row for the same payment intent and
// reports created=false; a conflict with no matching payment intent means the
// (email, product) pair is taken by a different payment and surfaces as a
// unique-violation error for the caller to classify.
func (r *Repository) CreateIfAbsent(ctx context.Context, order *models.Order) (*models.Order, bool, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		if !db.IsUniqueViolation(err) {
			return nil, false, err
		}
		existing, findErr := r.FindByPaymentIntentID(ctx, order.PaymentIntentID)
		if findErr != nil {
			if db.IsNotFound(findErr) {
				return nil, false, err
			}
			return nil, false, findErr
		}
		return existing, false, nil
	}
	return order, true, nil
}

// FindByPaymentIntentID loads the order recorded for a payment intent.
func (r *Repository) FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "payment_intent_id = ?", paymentIntentID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByID loads an order by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Product").First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// HasPurchased reports whether the email already owns the product.
func (r *Repository) HasPurchased(ctx context.Context, email string, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("email = ? AND product_id = ?", email, productID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes an order by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Order{}).Error
}

// ListInRange returns the report records for orders inside the window. A nil
// start leaves the lower bound open.
func (r *Repository) ListInRange(ctx context.Context, start *time.Time, end time.Time) ([]reports.OrderRecord, error) {
	qb := r.db.WithContext(ctx).
		Table("orders o").
		Select("o.product_id, p.name AS product_name, o.price_paid_cents AS amount_cents, o.created_at").
		Joins("JOIN products p ON p.id = o.product_id").
		Where("o.created_at <= ?", end)
	if start != nil {
		qb = qb.Where("o.created_at >= ?", *start)
	}

	var records []reports.OrderRecord
	if err := qb.Order("o.created_at ASC").Scan(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// AggregateTotals sums paid cents and counts orders inside the window.
func (r *Repository) AggregateTotals(ctx context.Context, start *time.Time, end time.Time) (*reports.OrderTotals, error) {
	type row struct {
		TotalCents int64
		OrderCount int64
	}

	qb := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("COALESCE(SUM(price_paid_cents), 0) AS total_cents, COUNT(*) AS order_count").
		Where("created_at <= ?", end)
	if start != nil {
		qb = qb.Where("created_at >= ?", *start)
	}

	var result row
	if err := qb.Scan(&result).Error; err != nil {
		return nil, err
	}
	return &reports.OrderTotals{TotalCents: result.TotalCents, OrderCount: result.OrderCount}, nil
}

// EarliestOrderAt returns the timestamp of the first recorded order, or nil
// when the store has none.
func (r *Repository) EarliestOrderAt(ctx context.Context) (*time.Time, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&order).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	at := order.CreatedAt
	return &at, nil
}

// List returns a page of orders for the admin screen, newest first.
func (r *Repository) List(ctx context.Context, params pagination.Params) (*ListResult, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.db.WithContext(ctx).Preload("Product")
	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Order
	if err := qb.Order("created_at DESC").Order("id DESC").Limit(limitWithBuffer).Find(&rows).Error; err != nil {
		return nil, err
	}

	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	return &ListResult{Orders: rows, NextCursor: nextCursor}, nil
}

// ListResult is one page of admin order rows.
type ListResult struct {
	Orders     []models.Order
	NextCursor string
}
