//go:build integration

package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/ALDWIL/doxrep/internal/domain"
	"github.com/ALDWIL/doxrep/internal/pkg/id"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run with: TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/infrastructure/postgres/
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, Bootstrap(ctx, pool))
	return pool
}

func TestVerificationClaim_ExpiredCodeFails(t *testing.T) {
	pool := testPool(t)
	repo := NewVerificationRepo(pool)
	ctx := context.Background()

	email := fmt.Sprintf("%s@integration.test", id.New())
	require.NoError(t, repo.Create(ctx, email, "123456", time.Now().Add(-time.Minute)))
	t.Cleanup(func() { _ = repo.Delete(ctx, email, "123456") })

	_, err := repo.Claim(ctx, email, "123456")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestVerificationClaim_SucceedsOnce(t *testing.T) {
	pool := testPool(t)
	repo := NewVerificationRepo(pool)
	ctx := context.Background()

	email := fmt.Sprintf("%s@integration.test", id.New())
	require.NoError(t, repo.Create(ctx, email, "654321", time.Now().Add(5*time.Minute)))
	t.Cleanup(func() { _ = repo.Delete(ctx, email, "654321") })

	got, err := repo.Claim(ctx, email, "654321")
	require.NoError(t, err)
	assert.True(t, got.Used)

	_, err = repo.Claim(ctx, email, "654321")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestPromoRedeem_UseCapEnforced(t *testing.T) {
	pool := testPool(t)
	repo := NewPromoRepo(pool)
	ctx := context.Background()

	code := "it-" + id.New()
	_, err := pool.Exec(ctx,
		`INSERT INTO promo_codes (code, is_active, uses, max_uses) VALUES ($1, TRUE, 0, 2)`, code)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM promo_codes WHERE code = $1`, code)
	})

	for i := 1; i <= 2; i++ {
		p, err := repo.Redeem(ctx, code)
		require.NoError(t, err, "redemption %d", i)
		assert.Equal(t, i, p.Uses)
	}

	_, err = repo.Redeem(ctx, code)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestPromoRedeem_ExpiredCodeFails(t *testing.T) {
	pool := testPool(t)
	repo := NewPromoRepo(pool)
	ctx := context.Background()

	code := "it-" + id.New()
	_, err := pool.Exec(ctx,
		`INSERT INTO promo_codes (code, is_active, uses, max_uses, expires_at)
		 VALUES ($1, TRUE, 0, NULL, NOW() - INTERVAL '1 minute')`, code)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM promo_codes WHERE code = $1`, code)
	})

	_, err = repo.Redeem(ctx, code)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
