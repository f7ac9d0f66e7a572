// Package ptv is a minimal client for the Public Transport Victoria
// (PTV) timetable API, v3. For documentation and instructions to
// obtain an id/key pair see
// https://www.ptv.vic.gov.au/footer/data-and-reporting/datasets/ptv-timetable-api
package ptv

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"time"

	"github.com/pkg/errors"

	"github.com/r1cc4rdo/transit/fetch"
)

const DefaultBaseURL = "https://timetableapi.ptv.vic.gov.au"

const (
	DefaultTimeout  = 30 * time.Second
	DefaultCacheTTL = 12 * time.Hour
)

// Client signs and performs timetable API requests. Stops, routes
// and direction listings change rarely and may be served from the
// response cache; departures are always fetched fresh.
type Client struct {
	devID   string
	key     []byte
	baseURL string

	getter   fetch.Getter
	timeout  time.Duration
	cacheTTL time.Duration
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func WithGetter(g fetch.Getter) Option {
	return func(c *Client) { c.getter = g }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithCacheTTL(d time.Duration) Option {
	return func(c *Client) { c.cacheTTL = d }
}

func New(devID, key string, opts ...Option) *Client {
	c := &Client{
		devID:    devID,
		key:      []byte(key),
		baseURL:  DefaultBaseURL,
		getter:   fetch.NewMemory(),
		timeout:  DefaultTimeout,
		cacheTTL: DefaultCacheTTL,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SignedURL builds the full request URL for an endpoint path. The
// developer id rides along as a query parameter, list-valued
// parameters appear as repeated keys, and the whole path?query string
// is signed with HMAC-SHA1 of the developer key.
func (c *Client) SignedURL(path string, params url.Values) string {
	signed := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			signed.Add(k, v)
		}
	}
	signed.Set("devid", c.devID)

	request := path + "?" + signed.Encode()

	mac := hmac.New(sha1.New, c.key)
	mac.Write([]byte(request))
	signature := hex.EncodeToString(mac.Sum(nil))

	return c.baseURL + request + "&signature=" + signature
}

// Query performs a signed request and decodes the JSON response into
// out. Transport faults and non-success statuses are errors; they are
// never retried here.
func (c *Client) Query(ctx context.Context, path string, params url.Values, cache bool, out interface{}) error {
	body, err := c.getter.Get(ctx, c.SignedURL(path, params), fetch.Options{
		Timeout:  c.timeout,
		Cache:    cache,
		CacheTTL: c.cacheTTL,
	})
	if err != nil {
		return errors.Wrapf(err, "querying %s", path)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(err, "decoding %s response", path)
	}

	return nil
}
