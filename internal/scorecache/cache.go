// Package scorecache caches churn predictions for the probability overlay so
// the model server is not re-queried on every map render. The roster itself
// stays a flat CSV; this is a disposable cache.
package scorecache

import (
	"context"
	"time"

	"github.com/cris-labs/cris/internal/model"
	"github.com/cris-labs/cris/pkg/churn"
)

// Entry is one cached prediction.
type Entry struct {
	CustomerID  string       `json:"customer_id"`
	Label       model.Status `json:"label"`
	Probability float64      `json:"probability"`
	ScoredAt    time.Time    `json:"scored_at"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

// Cache stores predictions with a TTL.
type Cache interface {
	// Get returns the cached prediction, or nil when absent or expired.
	Get(ctx context.Context, customerID string) (*Entry, error)

	// Set stores a prediction with the given TTL.
	Set(ctx context.Context, customerID string, p churn.Prediction, ttl time.Duration) error

	// DeleteExpired removes stale entries and reports how many were dropped.
	DeleteExpired(ctx context.Context) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
