package scorecache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/cris-labs/cris/internal/model"
	"github.com/cris-labs/cris/pkg/churn"
)

// Pool is the subset of pgxpool.Pool the cache needs; pgxmock satisfies it.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresCache implements Cache using pgx.
type PostgresCache struct {
	pool Pool
}

// NewPostgres creates a PostgresCache with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresCache, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresCache{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS score_cache (
	id          TEXT PRIMARY KEY,
	customer_id TEXT NOT NULL,
	label       TEXT NOT NULL,
	probability DOUBLE PRECISION NOT NULL,
	scored_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	expires_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_score_cache_customer_id ON score_cache(customer_id);
CREATE INDEX IF NOT EXISTS idx_score_cache_expires_at ON score_cache(expires_at);
`

func (c *PostgresCache) Migrate(ctx context.Context) error {
	_, err := c.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (c *PostgresCache) Close() error {
	c.pool.Close()
	return nil
}

func (c *PostgresCache) Get(ctx context.Context, customerID string) (*Entry, error) {
	row := c.pool.QueryRow(ctx,
		`SELECT customer_id, label, probability, scored_at, expires_at FROM score_cache
		 WHERE customer_id = $1 AND expires_at > now()
		 ORDER BY scored_at DESC LIMIT 1`,
		customerID,
	)

	var e Entry
	var label string
	err := row.Scan(&e.CustomerID, &label, &e.Probability, &e.ScoredAt, &e.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get score")
	}
	e.Label = model.Status(label)
	return &e, nil
}

func (c *PostgresCache) Set(ctx context.Context, customerID string, p churn.Prediction, ttl time.Duration) error {
	now := time.Now().UTC()
	_, err := c.pool.Exec(ctx,
		`INSERT INTO score_cache (id, customer_id, label, probability, scored_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New().String(), customerID, string(p.Label), p.Probability, now, now.Add(ttl),
	)
	return eris.Wrap(err, "postgres: set score")
}

func (c *PostgresCache) DeleteExpired(ctx context.Context) (int, error) {
	tag, err := c.pool.Exec(ctx,
		`DELETE FROM score_cache WHERE expires_at <= now()`,
	)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: delete expired scores")
	}
	return int(tag.RowsAffected()), nil
}
