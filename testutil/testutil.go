package testutil

// In-memory capability fakes for tests.

import (
	"context"
	"fmt"

	"github.com/r1cc4rdo/transit/model"
)

// Key of a per-direction query.
type RouteDirection struct {
	RouteID     int
	DirectionID int
}

// Key of a departures query.
type DepartureQuery struct {
	StopID      int
	RouteID     int
	DirectionID int
}

// Timetable serves canned provider responses. Zero-valued fields act
// as empty listings, so tests only populate what they exercise.
type Timetable struct {
	Nearby         []model.NearbyStop
	NearbyAt       map[model.Point][]model.NearbyStop
	DirectionRefs  map[int][]model.DirectionRef
	Sequences      map[RouteDirection][]model.SequenceEntry
	DepartureLists map[DepartureQuery][]model.Departure

	// Counts departures queries by key, to assert on fallback
	// behavior.
	DepartureCalls map[DepartureQuery]int

	Err error
}

func (t *Timetable) StopsNearby(ctx context.Context, pt model.Point, routeType model.RouteType, maxDistanceMeters int) ([]model.NearbyStop, error) {
	if t.Err != nil {
		return nil, t.Err
	}
	if listing, ok := t.NearbyAt[pt]; ok {
		return listing, nil
	}
	return t.Nearby, nil
}

func (t *Timetable) Directions(ctx context.Context, routeID int) ([]model.DirectionRef, error) {
	if t.Err != nil {
		return nil, t.Err
	}
	return t.DirectionRefs[routeID], nil
}

func (t *Timetable) StopsAlongRoute(ctx context.Context, routeID int, routeType model.RouteType, directionID int) ([]model.SequenceEntry, error) {
	if t.Err != nil {
		return nil, t.Err
	}
	return t.Sequences[RouteDirection{routeID, directionID}], nil
}

func (t *Timetable) Departures(ctx context.Context, routeType model.RouteType, stopID, routeID, directionID, maxResults int) ([]model.Departure, error) {
	if t.Err != nil {
		return nil, t.Err
	}
	key := DepartureQuery{stopID, routeID, directionID}
	if t.DepartureCalls == nil {
		t.DepartureCalls = map[DepartureQuery]int{}
	}
	t.DepartureCalls[key]++
	return t.DepartureLists[key], nil
}

// Walking measures destinations from a canned per-point table.
type Walking struct {
	Elements  map[model.Point]model.MatrixElement
	Addresses map[model.Point]string

	Calls int
	Err   error
}

func (w *Walking) Matrix(ctx context.Context, origin model.Point, destinations []model.Point) (*model.WalkingMatrix, error) {
	w.Calls++
	if w.Err != nil {
		return nil, w.Err
	}

	matrix := &model.WalkingMatrix{}
	for _, d := range destinations {
		element, ok := w.Elements[d]
		if !ok {
			return nil, fmt.Errorf("no canned element for destination %s", d)
		}
		matrix.Elements = append(matrix.Elements, element)
		matrix.Addresses = append(matrix.Addresses, w.Addresses[d])
	}

	return matrix, nil
}

// Minutes builds a reachable element taking the given walking time.
func Minutes(m int) model.MatrixElement {
	return model.MatrixElement{
		Status:          model.MatrixStatusOK,
		DistanceMeters:  m * 80,
		DurationSeconds: m * 60,
	}
}
