package scorecache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cris-labs/cris/internal/model"
	"github.com/cris-labs/cris/pkg/churn"
)

// Scorer fills in predictions for the probability overlay. Records already
// carrying a prediction are left alone; Churned records are never scored
// (already resolved, nothing to predict); the rest go through the cache and,
// on a miss, the model server.
type Scorer struct {
	predictor   churn.Predictor
	cache       Cache // optional
	ttl         time.Duration
	concurrency int
}

// NewScorer creates a Scorer. cache may be nil to score without caching.
func NewScorer(predictor churn.Predictor, cache Cache, ttl time.Duration, concurrency int) *Scorer {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Scorer{predictor: predictor, cache: cache, ttl: ttl, concurrency: concurrency}
}

// ScoreAll returns a copy of records with predictions attached where possible.
// Individual scoring failures are logged and leave that record unscored; the
// map builder then reports it rather than dropping the whole overlay.
func (s *Scorer) ScoreAll(ctx context.Context, records []model.Customer) ([]model.Customer, error) {
	out := make([]model.Customer, len(records))
	copy(out, records)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	var mu sync.Mutex

	for i := range out {
		if out[i].Scored() || out[i].Status == model.StatusChurned {
			continue
		}
		i := i
		g.Go(func() error {
			p, err := s.score(ctx, &out[i])
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				zap.L().Warn("scoring failed, leaving record unscored",
					zap.String("customer_id", out[i].ID),
					zap.Error(err),
				)
				return nil
			}
			mu.Lock()
			out[i].PredictedLabel = p.Label
			prob := p.Probability
			out[i].PredictionProbability = &prob
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Scorer) score(ctx context.Context, c *model.Customer) (*churn.Prediction, error) {
	if s.cache != nil {
		if e, err := s.cache.Get(ctx, c.ID); err != nil {
			zap.L().Warn("score cache read failed", zap.Error(err))
		} else if e != nil {
			return &churn.Prediction{Label: e.Label, Probability: e.Probability}, nil
		}
	}

	p, err := s.predictor.Predict(ctx, c.Features())
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, c.ID, *p, s.ttl); err != nil {
			zap.L().Warn("score cache write failed", zap.Error(err))
		}
	}
	return p, nil
}
