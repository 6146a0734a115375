package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/avellaneda-dev/storefront-backend/pkg/db/models"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL,
  price_cents INTEGER NOT NULL,
  file_path TEXT NOT NULL,
  image_path TEXT NOT NULL,
  is_available_for_purchase INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(schema).Error)
	require.NoError(t, conn.Exec(`DELETE FROM products`).Error)
	return conn
}

func seedProduct(t *testing.T, repo *Repository, name string, available bool) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:                     uuid.New(),
		Name:                   name,
		Description:            "desc",
		PriceCents:             1000,
		FilePath:               "files/" + name,
		ImagePath:              "images/" + name,
		IsAvailableForPurchase: available,
	}
	created, err := repo.Create(context.Background(), product)
	require.NoError(t, err)
	return created
}

func TestListAvailableFiltersHidden(t *testing.T) {
	repo := NewRepository(setupProductsTestDB(t))

	seedProduct(t, repo, "visible", true)
	seedProduct(t, repo, "hidden", false)

	rows, err := repo.ListAvailable(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "visible", rows[0].Name)

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCountByAvailability(t *testing.T) {
	repo := NewRepository(setupProductsTestDB(t))

	seedProduct(t, repo, "a", true)
	seedProduct(t, repo, "b", true)
	seedProduct(t, repo, "c", false)

	active, inactive, err := repo.CountByAvailability(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), active)
	assert.Equal(t, int64(1), inactive)
}

func TestUpdateAndDelete(t *testing.T) {
	repo := NewRepository(setupProductsTestDB(t))
	ctx := context.Background()

	product := seedProduct(t, repo, "mutable", true)
	product.PriceCents = 2500
	product.IsAvailableForPurchase = false

	updated, err := repo.Update(ctx, product)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), updated.PriceCents)

	reloaded, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsAvailableForPurchase)

	require.NoError(t, repo.Delete(ctx, product.ID))
	_, err = repo.FindByID(ctx, product.ID)
	assert.Error(t, err)
}
