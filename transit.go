package transit

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/r1cc4rdo/transit/model"
)

const (
	// Defaults applied by Connect when an Options field is zero.
	DefaultRadiusMeters         = 1500
	DefaultWalkingRadiusMinutes = 10

	// Departure queries silently return near-empty lists unless an
	// explicit result count is passed, so one is always sent.
	DefaultMaxDepartureResults = 100
)

// ErrUnconfigured is returned when an operation needs a capability
// that was never supplied to the Planner.
var ErrUnconfigured = errors.New("capability not configured")

// Timetable is the signed transit-query surface the planner consumes.
// Implementations own transport, authentication and retries, and must
// surface terminal failures as errors; the planner never retries.
type Timetable interface {
	StopsNearby(ctx context.Context, pt model.Point, routeType model.RouteType, maxDistanceMeters int) ([]model.NearbyStop, error)
	Directions(ctx context.Context, routeID int) ([]model.DirectionRef, error)
	StopsAlongRoute(ctx context.Context, routeID int, routeType model.RouteType, directionID int) ([]model.SequenceEntry, error)
	Departures(ctx context.Context, routeType model.RouteType, stopID, routeID, directionID, maxResults int) ([]model.Departure, error)
}

// WalkingMeasurer measures pedestrian distance from one origin to
// many destinations in a single batch. Addresses and elements of the
// returned matrix must align with the destination order.
type WalkingMeasurer interface {
	Matrix(ctx context.Context, origin model.Point, destinations []model.Point) (*model.WalkingMatrix, error)
}

// InconsistentRouteError reports a route whose direction data
// violates the two-directions structure the providers guarantee.
// It indicates inconsistent provider data, not a routing miss.
type InconsistentRouteError struct {
	RouteID      int
	DirectionIDs []int
}

func (e *InconsistentRouteError) Error() string {
	return fmt.Sprintf("route %d: expected two directions, got %v", e.RouteID, e.DirectionIDs)
}

// Planner resolves locations and finds route connections between
// them. Timetable is required for every operation; Walking only for
// FilterByWalking. A Planner holds no state across calls and is safe
// for concurrent use.
type Planner struct {
	Timetable Timetable
	Walking   WalkingMeasurer

	MaxDepartureResults int
}

func NewPlanner(tt Timetable, wm WalkingMeasurer) *Planner {
	return &Planner{
		Timetable:           tt,
		Walking:             wm,
		MaxDepartureResults: DefaultMaxDepartureResults,
	}
}

// Options configures a Connect run. Zero radii select the defaults.
// RouteType is used as given: mode 0 is a valid mode (train).
type Options struct {
	RouteType            model.RouteType
	RadiusMeters         int
	WalkingRadiusMinutes int
}

// Connect runs the full pipeline between two points: resolve both,
// filter by walking reachability when a measurer is configured, match
// the locations into connections, and estimate ride durations.
func (p *Planner) Connect(ctx context.Context, from, to model.Point, opts Options) (map[int]*model.Connection, error) {
	if opts.RadiusMeters == 0 {
		opts.RadiusMeters = DefaultRadiusMeters
	}
	if opts.WalkingRadiusMinutes == 0 {
		opts.WalkingRadiusMinutes = DefaultWalkingRadiusMinutes
	}

	locations := make([]*model.Location, 2)
	for i, pt := range []model.Point{from, to} {
		loc, err := p.Resolve(ctx, pt, opts.RadiusMeters, opts.RouteType)
		if err != nil {
			return nil, err
		}
		if p.Walking != nil {
			loc, err = p.FilterByWalking(ctx, loc, opts.WalkingRadiusMinutes)
			if err != nil {
				return nil, err
			}
		}
		locations[i] = loc
	}

	connections, err := p.FindConnections(locations[0], locations[1])
	if err != nil {
		return nil, err
	}

	return p.EstimateDurations(ctx, connections)
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
