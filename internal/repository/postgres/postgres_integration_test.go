//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/KretovDmitry/fallback-shortener/internal/config"
	"github.com/KretovDmitry/fallback-shortener/internal/logger"
	"github.com/KretovDmitry/fallback-shortener/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgres(t *testing.T) *config.Config {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("url_shortener"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tc.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cfg := config.NewForTest()
	cfg.Database.DSN = dsn
	cfg.Database.QueryTimeout = 3 * time.Second
	return cfg
}

func TestURLRepository_Integration(t *testing.T) {
	cfg := setupPostgres(t)
	ctx := context.Background()

	l, _ := logger.NewForTest()
	repo, err := NewURLRepository(cfg, l)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	require.True(t, repo.Connect(ctx))
	require.NoError(t, repo.EnsureSchema(ctx))
	// idempotent
	require.NoError(t, repo.EnsureSchema(ctx))

	require.NoError(t, repo.Insert(ctx, *models.NewMapping("first1", "https://one.example")))
	require.NoError(t, repo.Insert(ctx, *models.NewMapping("second", "https://two.example")))
	// existing code is left untouched
	require.NoError(t, repo.Insert(ctx, *models.NewMapping("first1", "https://other.example")))

	repo.IncrementClick(ctx, "first1")
	repo.IncrementClick(ctx, "first1")
	repo.IncrementClick(ctx, "missing")

	all := repo.GetAll(ctx)
	require.Len(t, all, 2)

	byCode := make(map[string]models.URLMapping)
	for _, m := range all {
		byCode[m.ShortCode] = m
	}
	assert.Equal(t, "https://one.example", byCode["first1"].OriginalURL)
	assert.EqualValues(t, 2, byCode["first1"].ClickCount)
	assert.EqualValues(t, 0, byCode["second"].ClickCount)
	assert.False(t, byCode["second"].CreatedTime.IsZero())
}
