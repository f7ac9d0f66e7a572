package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingServer(hits *int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		fmt.Fprintf(w, "response %d", *hits)
	}))
}

func testGetterCaching(t *testing.T, getter Getter, setNow func(time.Time)) {
	hits := 0
	srv := countingServer(&hits)
	defer srv.Close()

	now := time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)
	setNow(now)

	options := Options{Cache: true, CacheTTL: time.Minute}

	body, err := getter.Get(context.Background(), srv.URL, options)
	require.NoError(t, err)
	assert.Equal(t, "response 1", string(body))

	// Fresh entry served from cache.
	body, err = getter.Get(context.Background(), srv.URL, options)
	require.NoError(t, err)
	assert.Equal(t, "response 1", string(body))
	assert.Equal(t, 1, hits)

	// Expired entry refetched.
	setNow(now.Add(2 * time.Minute))
	body, err = getter.Get(context.Background(), srv.URL, options)
	require.NoError(t, err)
	assert.Equal(t, "response 2", string(body))
	assert.Equal(t, 2, hits)

	// Cache disabled: always fetches.
	_, err = getter.Get(context.Background(), srv.URL, Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, hits)
}

func TestMemoryCaching(t *testing.T) {
	m := NewMemory()
	testGetterCaching(t, m, func(now time.Time) {
		m.TimeNow = func() time.Time { return now }
	})
}

func TestSQLiteCaching(t *testing.T) {
	s, err := NewSQLite("")
	require.NoError(t, err)
	defer s.Close()

	testGetterCaching(t, s, func(now time.Time) {
		s.TimeNow = func() time.Time { return now }
	})
}

func TestHTTPGetStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := HTTPGet(context.Background(), srv.URL, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestHTTPGetMaxSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("0123456789"))
	}))
	defer srv.Close()

	body, err := HTTPGet(context.Background(), srv.URL, Options{MaxSize: 4})
	require.NoError(t, err)
	assert.Equal(t, "0123", string(body))
}
