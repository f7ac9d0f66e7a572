package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const valid = `
ptv:
  devid: "3001234"
  key: "9c132d31-6a30-4cac-8d8b-8a1970834799"
walking:
  key: "maps-key"
cache:
  backend: sqlite
  dsn: /tmp/responses.db
  ttl_minutes: 720
`

func TestParse(t *testing.T) {
	cfg, err := Parse(strings.NewReader(valid))
	require.NoError(t, err)

	assert.Equal(t, "3001234", cfg.PTV.DevID)
	assert.Equal(t, "maps-key", cfg.Walking.Key)
	assert.Equal(t, "sqlite", cfg.Cache.Backend)
	assert.Equal(t, 720, cfg.Cache.TTLMinutes)
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader("ptv:\n  devid: \"1\"\n  key: \"k\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Empty(t, cfg.Walking.Key)
}

func TestParseStripsBOM(t *testing.T) {
	_, err := Parse(strings.NewReader("\xef\xbb\xbf" + valid))
	require.NoError(t, err)
}

func TestParseMissingCredentials(t *testing.T) {
	_, err := Parse(strings.NewReader("ptv:\n  devid: \"1\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ptv credentials")
}

func TestParseUnknownBackend(t *testing.T) {
	_, err := Parse(strings.NewReader("ptv:\n  devid: \"1\"\n  key: \"k\"\ncache:\n  backend: redis\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache settings")
}
