package fetch

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Caches fetched responses in PostgreSQL, for deployments where
// several processes share one cache.
type Postgres struct {
	db *sql.DB

	TimeNow func() time.Time
}

func NewPostgres(connStr string) (*Postgres, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS response (
    url TEXT PRIMARY KEY,
    body BYTEA NOT NULL,
    retrieved_at TIMESTAMPTZ NOT NULL
);`)
	if err != nil {
		return nil, fmt.Errorf("creating response table: %w", err)
	}

	return &Postgres{db: db, TimeNow: time.Now}, nil
}

func (p *Postgres) Get(ctx context.Context, url string, options Options) ([]byte, error) {
	if options.Cache {
		var body []byte
		var retrievedAt time.Time
		err := p.db.QueryRowContext(
			ctx,
			"SELECT body, retrieved_at FROM response WHERE url = $1",
			url,
		).Scan(&body, &retrievedAt)
		if err == nil && retrievedAt.Add(options.CacheTTL).After(p.TimeNow()) {
			return body, nil
		}
		if err != nil && err != sql.ErrNoRows {
			return nil, fmt.Errorf("reading cache: %w", err)
		}
	}

	body, err := HTTPGet(ctx, url, options)
	if err != nil {
		return nil, err
	}

	if options.Cache {
		_, err = p.db.ExecContext(
			ctx,
			`INSERT INTO response (url, body, retrieved_at) VALUES ($1, $2, $3)
			 ON CONFLICT (url) DO UPDATE SET body = $2, retrieved_at = $3`,
			url, body, p.TimeNow().UTC(),
		)
		if err != nil {
			return nil, fmt.Errorf("writing cache: %w", err)
		}
	}

	return body, nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}
