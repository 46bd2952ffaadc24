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

	"github.com/storefront-samples/go-bff-server/internal/platform/migrations"
)

func setupSessionPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("bff_test"),
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

func TestStore_PutGetRemove(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db, cleanup := setupSessionPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	store := NewStore(db, time.Hour)

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Put(ctx, "sid-1", "token=abc"))
	cookie, ok, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "token=abc", cookie)

	// Upsert keeps one row per session id.
	require.NoError(t, store.Put(ctx, "sid-1", "token=def"))
	cookie, ok, err = store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "token=def", cookie)

	require.NoError(t, store.Remove(ctx, "sid-1"))
	_, ok, err = store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, store.Remove(ctx, "sid-1"))
}

func TestStore_ExpiredSessionsReadAbsentAndPurge(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db, cleanup := setupSessionPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	store := NewStore(db, time.Millisecond)
	require.NoError(t, store.Put(ctx, "sid-exp", "token=abc"))
	time.Sleep(50 * time.Millisecond)

	_, ok, err := store.Get(ctx, "sid-exp")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.PurgeExpired(ctx))

	var count int64
	require.NoError(t, db.WithContext(ctx).Table("bridge_sessions").Count(&count).Error)
	require.Zero(t, count)
}
