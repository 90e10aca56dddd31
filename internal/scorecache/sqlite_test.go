package scorecache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cris-labs/cris/internal/model"
	"github.com/cris-labs/cris/pkg/churn"
)

func newTestSQLiteCache(t *testing.T) *SQLiteCache {
	t.Helper()
	c, err := NewSQLite(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	require.NoError(t, c.Migrate(context.Background()))
	return c
}

func TestSQLiteSetAndGet(t *testing.T) {
	c := newTestSQLiteCache(t)
	ctx := context.Background()

	p := churn.Prediction{Label: model.StatusChurned, Probability: 0.91}
	require.NoError(t, c.Set(ctx, "CU-1", p, time.Hour))

	e, err := c.Get(ctx, "CU-1")
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "CU-1", e.CustomerID)
	assert.Equal(t, model.StatusChurned, e.Label)
	assert.InDelta(t, 0.91, e.Probability, 1e-9)
}

func TestSQLiteGetMiss(t *testing.T) {
	c := newTestSQLiteCache(t)

	e, err := c.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestSQLiteTTLExpiry(t *testing.T) {
	c := newTestSQLiteCache(t)
	ctx := context.Background()

	p := churn.Prediction{Label: model.StatusStayed, Probability: 0.4}
	require.NoError(t, c.Set(ctx, "CU-2", p, -time.Second))

	e, err := c.Get(ctx, "CU-2")
	require.NoError(t, err)
	assert.Nil(t, e)

	n, err := c.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSQLiteNewestEntryWins(t *testing.T) {
	c := newTestSQLiteCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "CU-3", churn.Prediction{Label: model.StatusStayed, Probability: 0.2}, time.Hour))
	time.Sleep(1100 * time.Millisecond) // sqlite datetime has second precision
	require.NoError(t, c.Set(ctx, "CU-3", churn.Prediction{Label: model.StatusChurned, Probability: 0.8}, time.Hour))

	e, err := c.Get(ctx, "CU-3")
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, model.StatusChurned, e.Label)
}
