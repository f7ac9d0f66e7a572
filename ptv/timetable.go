package ptv

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/r1cc4rdo/transit"
	"github.com/r1cc4rdo/transit/model"
	"github.com/r1cc4rdo/transit/parse"
)

var _ transit.Timetable = (*Client)(nil)

// StopsNearby lists stops of the given mode within maxDistanceMeters
// of a point, with the routes serving each stop.
func (c *Client) StopsNearby(ctx context.Context, pt model.Point, routeType model.RouteType, maxDistanceMeters int) ([]model.NearbyStop, error) {
	path := fmt.Sprintf("/v3/stops/location/%v,%v", pt.Lat, pt.Lon)
	params := url.Values{}
	params.Set("route_types", strconv.Itoa(int(routeType)))
	params.Set("max_distance", strconv.Itoa(maxDistanceMeters))

	var resp stopsNearbyResponse
	if err := c.Query(ctx, path, params, true, &resp); err != nil {
		return nil, err
	}

	stops := make([]model.NearbyStop, 0, len(resp.Stops))
	for _, s := range resp.Stops {
		stop := model.NearbyStop{
			ID:             s.StopID,
			Name:           s.StopName,
			Point:          model.Point{Lat: s.StopLatitude, Lon: s.StopLongitude},
			DistanceMeters: s.StopDistance,
		}
		for _, r := range s.Routes {
			stop.Routes = append(stop.Routes, model.RouteSummary{
				ID:     r.RouteID,
				Type:   model.RouteType(r.RouteType),
				Number: r.RouteNumber,
				Name:   r.RouteName,
			})
		}
		stops = append(stops, stop)
	}

	return stops, nil
}

// Directions lists the directions of travel of a route.
func (c *Client) Directions(ctx context.Context, routeID int) ([]model.DirectionRef, error) {
	path := fmt.Sprintf("/v3/directions/route/%d", routeID)

	var resp directionsResponse
	if err := c.Query(ctx, path, url.Values{}, true, &resp); err != nil {
		return nil, err
	}

	refs := make([]model.DirectionRef, 0, len(resp.Directions))
	for _, d := range resp.Directions {
		refs = append(refs, model.DirectionRef{ID: d.DirectionID, Name: d.DirectionName})
	}

	return refs, nil
}

// StopsAlongRoute lists the ordered stop sequence along one direction
// of a route. Entries carrying the provider's "not on this direction"
// sentinel (sequence 0) are excluded.
func (c *Client) StopsAlongRoute(ctx context.Context, routeID int, routeType model.RouteType, directionID int) ([]model.SequenceEntry, error) {
	path := fmt.Sprintf("/v3/stops/route/%d/route_type/%d", routeID, int(routeType))
	params := url.Values{}
	params.Set("direction_id", strconv.Itoa(directionID))

	var resp routeStopsResponse
	if err := c.Query(ctx, path, params, true, &resp); err != nil {
		return nil, err
	}

	entries := make([]model.SequenceEntry, 0, len(resp.Stops))
	for _, s := range resp.Stops {
		if s.StopSequence == 0 {
			continue
		}
		entries = append(entries, model.SequenceEntry{StopID: s.StopID, Sequence: s.StopSequence})
	}

	return entries, nil
}

// Departures lists scheduled departures from a stop for one route and
// direction. maxResults must be passed explicitly: without it the
// endpoint returns a handful of entries at best.
func (c *Client) Departures(ctx context.Context, routeType model.RouteType, stopID, routeID, directionID, maxResults int) ([]model.Departure, error) {
	path := fmt.Sprintf("/v3/departures/route_type/%d/stop/%d/route/%d", int(routeType), stopID, routeID)
	params := url.Values{}
	params.Set("direction_id", strconv.Itoa(directionID))
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("expand", "all")

	var resp departuresResponse
	if err := c.Query(ctx, path, params, false, &resp); err != nil {
		return nil, err
	}

	departures := make([]model.Departure, 0, len(resp.Departures))
	for _, d := range resp.Departures {
		scheduled, err := parse.ParseUTC(d.ScheduledDepartureUTC)
		if err != nil {
			return nil, errors.Wrapf(err, "departure of run %s", d.RunRef)
		}
		departures = append(departures, model.Departure{RunRef: d.RunRef, Scheduled: scheduled})
	}

	return departures, nil
}
