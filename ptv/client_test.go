package ptv

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r1cc4rdo/transit/model"
)

func signature(key, request string) string {
	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(request))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestSignedURL(t *testing.T) {
	c := New("dev123", "secret")

	params := url.Values{}
	params.Set("max_distance", "500")
	params.Add("route_types", "1")
	params.Add("route_types", "2")

	got := c.SignedURL("/v3/stops/location/-37.9,145.05", params)

	// Keys encode in sorted order, list values as repeated keys,
	// devid included in the signed portion.
	request := "/v3/stops/location/-37.9,145.05?devid=dev123&max_distance=500&route_types=1&route_types=2"
	want := DefaultBaseURL + request + "&signature=" + signature("secret", request)
	assert.Equal(t, want, got)
}

// Starts a server that verifies each request's HMAC before answering.
func signedServer(t *testing.T, key string, handler http.HandlerFunc) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.RawQuery
		cut := strings.Index(raw, "&signature=")
		if !assert.GreaterOrEqual(t, cut, 0, "unsigned request %s", r.URL) {
			http.Error(w, "unsigned", http.StatusForbidden)
			return
		}

		want := signature(key, r.URL.Path+"?"+raw[:cut])
		if !assert.Equal(t, want, raw[cut+len("&signature="):], "bad signature for %s", r.URL) {
			http.Error(w, "bad signature", http.StatusForbidden)
			return
		}

		handler(w, r)
	}))
}

func TestStopsNearby(t *testing.T) {
	srv := signedServer(t, "secret", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/stops/location/-37.9055333,145.0519582", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("route_types"))
		assert.Equal(t, "500", r.URL.Query().Get("max_distance"))
		w.Write([]byte(`{
			"stops": [{
				"stop_id": 13950,
				"stop_name": "North Rd/Koornang Rd",
				"stop_latitude": -37.90537,
				"stop_longitude": 145.053925,
				"stop_distance": 173.807861,
				"routes": [{
					"route_id": 15248,
					"route_type": 2,
					"route_number": "626",
					"route_name": "Middle Brighton - Chadstone via McKinnon & Carnegie"
				}]
			}]
		}`))
	})
	defer srv.Close()

	c := New("dev123", "secret", WithBaseURL(srv.URL))
	stops, err := c.StopsNearby(context.Background(), model.Point{Lat: -37.9055333, Lon: 145.0519582}, model.RouteTypeBus, 500)
	require.NoError(t, err)

	require.Len(t, stops, 1)
	assert.Equal(t, 13950, stops[0].ID)
	assert.Equal(t, 173.807861, stops[0].DistanceMeters)
	require.Len(t, stops[0].Routes, 1)
	assert.Equal(t, model.RouteSummary{
		ID: 15248, Type: model.RouteTypeBus, Number: "626",
		Name: "Middle Brighton - Chadstone via McKinnon & Carnegie",
	}, stops[0].Routes[0])
}

func TestStopsAlongRouteExcludesSentinel(t *testing.T) {
	srv := signedServer(t, "secret", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/stops/route/15248/route_type/2", r.URL.Path)
		assert.Equal(t, "185", r.URL.Query().Get("direction_id"))
		w.Write([]byte(`{
			"stops": [
				{"stop_id": 13950, "stop_sequence": 29},
				{"stop_id": 13991, "stop_sequence": 0},
				{"stop_id": 16942, "stop_sequence": 30}
			]
		}`))
	})
	defer srv.Close()

	c := New("dev123", "secret", WithBaseURL(srv.URL))
	entries, err := c.StopsAlongRoute(context.Background(), 15248, model.RouteTypeBus, 185)
	require.NoError(t, err)

	assert.Equal(t, []model.SequenceEntry{
		{StopID: 13950, Sequence: 29},
		{StopID: 16942, Sequence: 30},
	}, entries)
}

func TestDepartures(t *testing.T) {
	srv := signedServer(t, "secret", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/departures/route_type/2/stop/13950/route/15248", r.URL.Path)
		assert.Equal(t, "185", r.URL.Query().Get("direction_id"))
		assert.Equal(t, "100", r.URL.Query().Get("max_results"))
		assert.Equal(t, "all", r.URL.Query().Get("expand"))
		w.Write([]byte(`{
			"departures": [
				{"run_ref": "951", "scheduled_departure_utc": "2024-05-17T01:00:27Z"},
				{"run_ref": "952", "scheduled_departure_utc": "2024-05-17T01:02:36.240509912Z"}
			]
		}`))
	})
	defer srv.Close()

	c := New("dev123", "secret", WithBaseURL(srv.URL))
	departures, err := c.Departures(context.Background(), model.RouteTypeBus, 13950, 15248, 185, 100)
	require.NoError(t, err)

	require.Len(t, departures, 2)
	assert.Equal(t, "951", departures[0].RunRef)
	assert.Equal(t, "2024-05-17T01:02:36.240509Z", departures[1].Scheduled.Format("2006-01-02T15:04:05.000000Z"))
}

func TestDeparturesMalformedTimestamp(t *testing.T) {
	srv := signedServer(t, "secret", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"departures": [{"run_ref": "951", "scheduled_departure_utc": "2024-05-17 01:00:27"}]}`))
	})
	defer srv.Close()

	c := New("dev123", "secret", WithBaseURL(srv.URL))
	_, err := c.Departures(context.Background(), model.RouteTypeBus, 13950, 15248, 185, 100)
	require.Error(t, err)
}

func TestQueryTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	c := New("dev123", "wrong", WithBaseURL(srv.URL))
	_, err := c.Directions(context.Background(), 15248)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}
