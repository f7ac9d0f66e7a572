package fetch

import (
	"context"
	"sync"
	"time"
)

// Caches fetched responses in memory.
type Memory struct {
	mutex sync.Mutex
	cache map[string]memoryCacheEntry

	TimeNow func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		cache:   make(map[string]memoryCacheEntry),
		TimeNow: time.Now,
	}
}

type memoryCacheEntry struct {
	data       []byte
	expiration time.Time
}

func (m *Memory) Get(ctx context.Context, url string, options Options) ([]byte, error) {
	if options.Cache {
		m.mutex.Lock()
		defer m.mutex.Unlock()

		if entry, ok := m.cache[url]; ok {
			if entry.expiration.After(m.TimeNow()) {
				return entry.data, nil
			}
		}
	}

	body, err := HTTPGet(ctx, url, options)
	if err != nil {
		return nil, err
	}

	if options.Cache {
		m.cache[url] = memoryCacheEntry{
			data:       body,
			expiration: m.TimeNow().Add(options.CacheTTL),
		}
	}

	return body, nil
}
