//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/storefront-samples/go-bff-server/internal/domains/products/domain"
	"github.com/storefront-samples/go-bff-server/internal/domains/products/ports"
	"github.com/storefront-samples/go-bff-server/internal/platform/migrations"
)

func setupProductPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestRepository_CreateGetDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db, cleanup := setupProductPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	repo := NewRepository(db)

	saved, err := repo.Create(ctx, &domain.Product{ID: "p1", Name: "Lamp", Category: "Furniture", Price: 20, Stock: 4})
	require.NoError(t, err)
	require.Equal(t, "p1", saved.ID)

	_, err = repo.Create(ctx, &domain.Product{ID: "p1", Name: "Lamp Clone", Category: "Furniture", Price: 20, Stock: 4})
	require.ErrorIs(t, err, ports.ErrDuplicateID)

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "Lamp", got.Name)

	require.NoError(t, repo.Delete(ctx, "p1"))
	require.ErrorIs(t, repo.Delete(ctx, "p1"), ports.ErrNotFound)
}

func TestRepository_ListFiltersAndPages(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db, cleanup := setupProductPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	repo := NewRepository(db)
	seed := []*domain.Product{
		{ID: "a", Name: "Oak Desk", Category: "Furniture", Price: 200, Stock: 2},
		{ID: "b", Name: "Pine Desk", Category: "Furniture", Price: 150, Stock: 3},
		{ID: "c", Name: "Desk Lamp", Category: "Electronics", Price: 30, Stock: 9},
	}
	for _, product := range seed {
		_, err := repo.Create(ctx, product)
		require.NoError(t, err)
	}

	items, total, err := repo.List(ctx, ports.ListFilter{Search: "desk", Category: "furniture"})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, items, 2)
	require.Equal(t, "Oak Desk", items[0].Name)

	items, total, err = repo.List(ctx, ports.ListFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, items, 1)
}
