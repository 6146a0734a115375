package products

import (
	"context"

	"github.com/google/uuid"

	"github.com/avellaneda-dev/storefront-backend/pkg/db"
	"github.com/avellaneda-dev/storefront-backend/pkg/db/models"
	pkgerrors "github.com/avellaneda-dev/storefront-backend/pkg/errors"
	"github.com/avellaneda-dev/storefront-backend/pkg/logger"
)

// Service mediates catalog reads for the storefront and writes for the
// admin surface.
type Service struct {
	repo *Repository
	logg *logger.Logger
}

// NewService validates dependencies and builds the product service.
func NewService(repo *Repository, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "product repository is required")
	}
	return &Service{repo: repo, logg: logg}, nil
}

// ListStorefront returns purchasable products only.
func (s *Service) ListStorefront(ctx context.Context) ([]View, error) {
	rows, err := s.repo.ListAvailable(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return toViews(rows), nil
}

// ListAdmin returns the full catalog.
func (s *Service) ListAdmin(ctx context.Context) ([]View, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return toViews(rows), nil
}

// Get returns one product. Unavailable products are hidden unless
// includeHidden is set (admin paths).
func (s *Service) Get(ctx context.Context, id uuid.UUID, includeHidden bool) (*View, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.IsAvailableForPurchase && !includeHidden {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	view := toView(product)
	return &view, nil
}

// Create inserts a new product. New products start available.
func (s *Service) Create(ctx context.Context, input CreateInput) (*View, error) {
	product := &models.Product{
		Name:                   input.Name,
		Description:            input.Description,
		PriceCents:             input.PriceCents,
		FilePath:               input.FilePath,
		ImagePath:              input.ImagePath,
		IsAvailableForPurchase: true,
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithProductID(ctx, created.ID.String()), "product created")
	}
	view := toView(created)
	return &view, nil
}

// Update applies the provided fields to an existing product.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*View, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.PriceCents != nil {
		product.PriceCents = *input.PriceCents
	}
	if input.FilePath != nil {
		product.FilePath = *input.FilePath
	}
	if input.ImagePath != nil {
		product.ImagePath = *input.ImagePath
	}
	if input.IsAvailableForPurchase != nil {
		product.IsAvailableForPurchase = *input.IsAvailableForPurchase
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	view := toView(updated)
	return &view, nil
}

// Delete removes a product from the catalog.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func toViews(rows []models.Product) []View {
	views := make([]View, 0, len(rows))
	for i := range rows {
		views = append(views, toView(&rows[i]))
	}
	return views
}
