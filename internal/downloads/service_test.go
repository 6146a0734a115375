package downloads

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/avellaneda-dev/storefront-backend/pkg/config"
	"github.com/avellaneda-dev/storefront-backend/pkg/db/models"
	pkgerrors "github.com/avellaneda-dev/storefront-backend/pkg/errors"
)

func setupDownloadsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	products := `
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
	tokens := `
CREATE TABLE IF NOT EXISTS download_tokens (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  expires_at DATETIME NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, conn.Exec(products).Error)
	require.NoError(t, conn.Exec(tokens).Error)
	require.NoError(t, conn.Exec(`DELETE FROM download_tokens`).Error)
	require.NoError(t, conn.Exec(`DELETE FROM products`).Error)
	return conn
}

func newDownloadService(t *testing.T, conn *gorm.DB) *Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn), config.DownloadsConfig{TokenTTL: 24 * time.Hour}, nil)
	require.NoError(t, err)
	return svc
}

func withFrozenNow(t *testing.T, now time.Time) {
	t.Helper()
	prev := timeNowUTC
	timeNowUTC = func() time.Time { return now }
	t.Cleanup(func() { timeNowUTC = prev })
}

func seedTokenProduct(t *testing.T, conn *gorm.DB) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:                     uuid.New(),
		Name:                   "Sample Pack",
		Description:            "desc",
		PriceCents:             1000,
		FilePath:               "files/sample.zip",
		ImagePath:              "images/sample.png",
		IsAvailableForPurchase: true,
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func TestIssueSetsExpiryFromTTL(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	withFrozenNow(t, now)

	conn := setupDownloadsTestDB(t)
	svc := newDownloadService(t, conn)
	product := seedTokenProduct(t, conn)

	token, err := svc.Issue(context.Background(), product.ID)
	require.NoError(t, err)
	assert.True(t, token.ExpiresAt.Equal(now.Add(24*time.Hour)))
}

func TestResolveJustBeforeExpiry(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	withFrozenNow(t, now)

	conn := setupDownloadsTestDB(t)
	svc := newDownloadService(t, conn)
	product := seedTokenProduct(t, conn)

	token, err := svc.Issue(context.Background(), product.ID)
	require.NoError(t, err)

	withFrozenNow(t, token.ExpiresAt.Add(-time.Second))
	grant, err := svc.Resolve(context.Background(), token.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, grant.ProductID)
	assert.Equal(t, "files/sample.zip", grant.FilePath)
	assert.Equal(t, "Sample Pack", grant.ProductName)
}

func TestResolveAfterExpiryIsGone(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	withFrozenNow(t, now)

	conn := setupDownloadsTestDB(t)
	svc := newDownloadService(t, conn)
	product := seedTokenProduct(t, conn)

	token, err := svc.Issue(context.Background(), product.ID)
	require.NoError(t, err)

	withFrozenNow(t, token.ExpiresAt.Add(time.Second))
	_, err = svc.Resolve(context.Background(), token.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeTokenExpired, typed.Code())
}

func TestResolveUnknownTokenIsNotFound(t *testing.T) {
	conn := setupDownloadsTestDB(t)
	svc := newDownloadService(t, conn)

	_, err := svc.Resolve(context.Background(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
