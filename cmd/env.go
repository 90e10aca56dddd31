package main

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/cris-labs/cris/internal/avatar"
	"github.com/cris-labs/cris/internal/roster"
	"github.com/cris-labs/cris/internal/scorecache"
	"github.com/cris-labs/cris/pkg/churn"
)

// env bundles the components a command needs once the roster is loaded.
type env struct {
	Store     *roster.CSVStore
	Predictor churn.Predictor
	Avatars   map[string]string
	Cache     scorecache.Cache // nil when disabled
}

// initEnv loads the roster (fatal if unreadable), builds the predictor client,
// and assigns avatars for this process.
func initEnv(ctx context.Context) (*env, error) {
	store := roster.NewCSV(cfg.Roster.Path)
	records, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}

	opts := []churn.Option{
		churn.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Predictor.TimeoutSecs) * time.Second}),
	}
	if cfg.Predictor.RateLimitRPS > 0 {
		opts = append(opts, churn.WithRateLimit(cfg.Predictor.RateLimitRPS, cfg.Predictor.RateBurst))
	}
	predictor := churn.NewClient(cfg.Predictor.BaseURL, opts...)

	assignerOpts := []avatar.Option{}
	if cfg.Avatar.BaseURL != "" {
		assignerOpts = append(assignerOpts, avatar.WithBaseURL(cfg.Avatar.BaseURL))
	}
	if cfg.Avatar.Space > 0 {
		assignerOpts = append(assignerOpts, avatar.WithSpace(cfg.Avatar.Space))
	}
	avatars := avatar.New(cfg.Avatar.Seed, assignerOpts...).Assign(records)

	return &env{Store: store, Predictor: predictor, Avatars: avatars}, nil
}

// openCache opens the configured score cache, or returns nil when it is off.
func (e *env) openCache(ctx context.Context) (scorecache.Cache, error) {
	switch cfg.ScoreCache.Driver {
	case "off", "":
		return nil, nil
	case "sqlite":
		c, err := scorecache.NewSQLite(cfg.ScoreCache.DSN)
		if err != nil {
			return nil, err
		}
		if err := c.Migrate(ctx); err != nil {
			c.Close()
			return nil, err
		}
		return c, nil
	case "postgres":
		c, err := scorecache.NewPostgres(ctx, cfg.ScoreCache.DSN)
		if err != nil {
			return nil, err
		}
		if err := c.Migrate(ctx); err != nil {
			c.Close()
			return nil, err
		}
		return c, nil
	default:
		zap.L().Warn("unknown score cache driver, disabling cache",
			zap.String("driver", cfg.ScoreCache.Driver),
		)
		return nil, nil
	}
}

func (e *env) Close() {
	if e.Cache != nil {
		_ = e.Cache.Close()
	}
}
