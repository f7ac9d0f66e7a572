// Package distance is a client for a Distance Matrix style
// walking-distance provider: one origin, many destinations, walking
// mode, with response arrays aligned to the request's destination
// order.
package distance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/r1cc4rdo/transit"
	"github.com/r1cc4rdo/transit/fetch"
	"github.com/r1cc4rdo/transit/model"
)

const DefaultBaseURL = "https://maps.googleapis.com/maps/api/distancematrix/json"

// The provider caps the number of elements per request; larger
// destination sets are chunked and reassembled in order.
const DefaultMaxDestinations = 25

const DefaultTimeout = 30 * time.Second

var _ transit.WalkingMeasurer = (*Client)(nil)

type Client struct {
	key     string
	baseURL string

	getter          fetch.Getter
	timeout         time.Duration
	maxDestinations int
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func WithGetter(g fetch.Getter) Option {
	return func(c *Client) { c.getter = g }
}

func WithMaxDestinations(n int) Option {
	return func(c *Client) { c.maxDestinations = n }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func New(key string, opts ...Option) *Client {
	c := &Client{
		key:             key,
		baseURL:         DefaultBaseURL,
		getter:          fetch.NewMemory(),
		timeout:         DefaultTimeout,
		maxDestinations: DefaultMaxDestinations,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type matrixResponse struct {
	Status               string   `json:"status"`
	DestinationAddresses []string `json:"destination_addresses"`
	Rows                 []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value int `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

// Matrix measures walking distance and time from origin to every
// destination, batching requests as needed. Elements and addresses of
// the result line up with destinations.
func (c *Client) Matrix(ctx context.Context, origin model.Point, destinations []model.Point) (*model.WalkingMatrix, error) {
	matrix := &model.WalkingMatrix{}

	for start := 0; start < len(destinations); start += c.maxDestinations {
		end := start + c.maxDestinations
		if end > len(destinations) {
			end = len(destinations)
		}

		resp, err := c.query(ctx, origin, destinations[start:end])
		if err != nil {
			return nil, err
		}

		matrix.Addresses = append(matrix.Addresses, resp.DestinationAddresses...)
		for _, element := range resp.Rows[0].Elements {
			matrix.Elements = append(matrix.Elements, model.MatrixElement{
				Status:          element.Status,
				DistanceMeters:  element.Distance.Value,
				DurationSeconds: element.Duration.Value,
			})
		}
	}

	if len(matrix.Elements) != len(destinations) {
		return nil, fmt.Errorf("matrix returned %d elements for %d destinations", len(matrix.Elements), len(destinations))
	}

	return matrix, nil
}

func (c *Client) query(ctx context.Context, origin model.Point, destinations []model.Point) (*matrixResponse, error) {
	formatted := make([]string, len(destinations))
	for i, d := range destinations {
		formatted[i] = d.String()
	}

	params := url.Values{}
	params.Set("origins", origin.String())
	params.Set("destinations", strings.Join(formatted, "|"))
	params.Set("mode", "walking")
	params.Set("units", "metric")
	params.Set("key", c.key)

	body, err := c.getter.Get(ctx, c.baseURL+"?"+params.Encode(), fetch.Options{Timeout: c.timeout})
	if err != nil {
		return nil, fmt.Errorf("querying walking matrix: %w", err)
	}

	resp := &matrixResponse{}
	if err := json.Unmarshal(body, resp); err != nil {
		return nil, fmt.Errorf("decoding walking matrix: %w", err)
	}

	if resp.Status != model.MatrixStatusOK {
		return nil, fmt.Errorf("walking matrix status %q", resp.Status)
	}
	if len(resp.Rows) != 1 {
		return nil, fmt.Errorf("walking matrix returned %d rows for one origin", len(resp.Rows))
	}
	if len(resp.Rows[0].Elements) != len(destinations) {
		return nil, fmt.Errorf("walking matrix returned %d elements for %d destinations", len(resp.Rows[0].Elements), len(destinations))
	}

	return resp, nil
}
