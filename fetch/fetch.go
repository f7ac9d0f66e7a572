package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Options struct {
	MaxSize  int
	Timeout  time.Duration
	Cache    bool
	CacheTTL time.Duration
}

// A thing capable of fetching a URL, optionally with caching. Only
// raw provider responses are ever cached; nothing derived from them
// is persisted.
type Getter interface {
	Get(ctx context.Context, url string, options Options) ([]byte, error)
}

// Fetches a URL. Doesn't cache. Provided as convenience for
// implementing custom Getters.
func HTTPGet(ctx context.Context, url string, options Options) ([]byte, error) {
	client := &http.Client{
		Timeout: options.Timeout,
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if options.MaxSize > 0 {
		reader = io.LimitReader(resp.Body, int64(options.MaxSize))
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	return body, nil
}
