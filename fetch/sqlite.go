package fetch

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Caches fetched responses in a SQLite database, so repeated runs of
// a command line tool don't hammer the providers.
type SQLite struct {
	db *sql.DB

	TimeNow func() time.Time
}

// NewSQLite opens (and if needed creates) a response cache at path.
// An empty path selects an in-memory database.
func NewSQLite(path string) (*SQLite, error) {
	sourceName := ":memory:"
	if path != "" {
		sourceName = path
	}

	db, err := sql.Open("sqlite3", sourceName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS response (
    url TEXT PRIMARY KEY,
    body BLOB NOT NULL,
    retrieved_at TIMESTAMP NOT NULL
);`)
	if err != nil {
		return nil, fmt.Errorf("creating response table: %w", err)
	}

	return &SQLite{db: db, TimeNow: time.Now}, nil
}

func (s *SQLite) Get(ctx context.Context, url string, options Options) ([]byte, error) {
	if options.Cache {
		var body []byte
		var retrievedAt time.Time
		err := s.db.QueryRowContext(
			ctx,
			"SELECT body, retrieved_at FROM response WHERE url = ?",
			url,
		).Scan(&body, &retrievedAt)
		if err == nil && retrievedAt.Add(options.CacheTTL).After(s.TimeNow()) {
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
		_, err = s.db.ExecContext(
			ctx,
			"INSERT OR REPLACE INTO response (url, body, retrieved_at) VALUES (?, ?, ?)",
			url, body, s.TimeNow().UTC(),
		)
		if err != nil {
			return nil, fmt.Errorf("writing cache: %w", err)
		}
	}

	return body, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
