package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/avellaneda-dev/storefront-backend/pkg/db/models"
)

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  created_at DATETIME
);`
	require.NoError(t, conn.Exec(schema).Error)
	require.NoError(t, conn.Exec(`DELETE FROM users`).Error)
	return conn
}

func TestFirstOrCreateByEmailIsIdempotent(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))
	ctx := context.Background()

	first, err := repo.FirstOrCreateByEmail(ctx, " Buyer@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", first.Email)

	second, err := repo.FirstOrCreateByEmail(ctx, "buyer@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, repo.db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCountInRange(t *testing.T) {
	conn := setupUsersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	seed := []models.User{
		{ID: uuid.New(), Email: "a@example.com", CreatedAt: now.AddDate(0, 0, -1)},
		{ID: uuid.New(), Email: "b@example.com", CreatedAt: now.AddDate(0, 0, -3)},
		{ID: uuid.New(), Email: "c@example.com", CreatedAt: now.AddDate(0, 0, -40)},
	}
	for i := range seed {
		require.NoError(t, conn.Create(&seed[i]).Error)
	}

	start := now.AddDate(0, 0, -7)
	count, err := repo.CountInRange(ctx, &start, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	all, err := repo.CountInRange(ctx, nil, now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), all)
}

func TestListSignupsInRange(t *testing.T) {
	conn := setupUsersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	seed := []models.User{
		{ID: uuid.New(), Email: "a@example.com", CreatedAt: now.AddDate(0, 0, -1)},
		{ID: uuid.New(), Email: "b@example.com", CreatedAt: now.AddDate(0, 0, -3)},
		{ID: uuid.New(), Email: "c@example.com", CreatedAt: now.AddDate(0, 0, -40)},
	}
	for i := range seed {
		require.NoError(t, conn.Create(&seed[i]).Error)
	}

	start := now.AddDate(0, 0, -7)
	stamps, err := repo.ListSignupsInRange(ctx, &start, now)
	require.NoError(t, err)
	require.Len(t, stamps, 2)
	assert.True(t, stamps[0].Equal(seed[1].CreatedAt))
	assert.True(t, stamps[1].Equal(seed[0].CreatedAt))

	all, err := repo.ListSignupsInRange(ctx, nil, now)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestEarliestUserAt(t *testing.T) {
	conn := setupUsersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	earliest, err := repo.EarliestUserAt(ctx)
	require.NoError(t, err)
	assert.Nil(t, earliest)

	first := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, conn.Create(&models.User{ID: uuid.New(), Email: "a@example.com", CreatedAt: first}).Error)
	require.NoError(t, conn.Create(&models.User{ID: uuid.New(), Email: "b@example.com", CreatedAt: first.AddDate(0, 0, 5)}).Error)

	earliest, err = repo.EarliestUserAt(ctx)
	require.NoError(t, err)
	require.NotNil(t, earliest)
	assert.True(t, earliest.Equal(first))
}
