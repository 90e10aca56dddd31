package scorecache

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/cris-labs/cris/internal/model"
	"github.com/cris-labs/cris/pkg/churn"
)

// SQLiteCache implements Cache using modernc.org/sqlite.
type SQLiteCache struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteCache{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS score_cache (
	id          TEXT PRIMARY KEY,
	customer_id TEXT NOT NULL,
	label       TEXT NOT NULL,
	probability REAL NOT NULL,
	scored_at   DATETIME NOT NULL DEFAULT (datetime('now')),
	expires_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_score_cache_customer_id ON score_cache(customer_id);
CREATE INDEX IF NOT EXISTS idx_score_cache_expires_at ON score_cache(expires_at);
`

func (c *SQLiteCache) Migrate(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

func (c *SQLiteCache) Get(ctx context.Context, customerID string) (*Entry, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT customer_id, label, probability, scored_at, expires_at FROM score_cache
		 WHERE customer_id = ? AND expires_at > datetime('now')
		 ORDER BY scored_at DESC LIMIT 1`,
		customerID,
	)

	var e Entry
	var label string
	err := row.Scan(&e.CustomerID, &label, &e.Probability, &e.ScoredAt, &e.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get score")
	}
	e.Label = model.Status(label)
	return &e, nil
}

func (c *SQLiteCache) Set(ctx context.Context, customerID string, p churn.Prediction, ttl time.Duration) error {
	now := time.Now().UTC()
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO score_cache (id, customer_id, label, probability, scored_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), customerID, string(p.Label), p.Probability, now, now.Add(ttl),
	)
	return eris.Wrap(err, "sqlite: set score")
}

func (c *SQLiteCache) DeleteExpired(ctx context.Context) (int, error) {
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM score_cache WHERE expires_at <= datetime('now')`,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: delete expired scores")
	}
	n, err := res.RowsAffected()
	return int(n), eris.Wrap(err, "sqlite: rows affected")
}
