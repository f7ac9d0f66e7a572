package model

import (
	"fmt"
	"time"
)

// Holds all external facing types for the resolution pipeline.

// RouteType enumerates PTV transport modes.
type RouteType int

const (
	RouteTypeTrain    RouteType = 0
	RouteTypeTram     RouteType = 1
	RouteTypeBus      RouteType = 2
	RouteTypeVLine    RouteType = 3
	RouteTypeNightBus RouteType = 4
)

type Point struct {
	Lat float64
	Lon float64
}

func (p Point) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lon)
}

// One entry of a stops-near-point listing, as reported by the
// timetable provider.
type NearbyStop struct {
	ID             int
	Name           string
	Point          Point
	DistanceMeters float64
	Routes         []RouteSummary
}

// Route display metadata attached to a nearby stop listing.
type RouteSummary struct {
	ID     int
	Type   RouteType
	Number string
	Name   string
}

// A direction of travel of a route. Direction ids are unique across
// the whole network, not per route.
type DirectionRef struct {
	ID   int
	Name string
}

// Position of a stop along one direction of one route. Sequence 0 is
// the provider's sentinel for "not part of this direction" and never
// appears here.
type SequenceEntry struct {
	StopID   int
	Sequence int
}

// A scheduled departure from a stop. RunRef names one physical
// vehicle trip and is shared between all stops that trip calls at.
type Departure struct {
	RunRef    string
	Scheduled time.Time
}

// Pedestrian distance from a search point to a stop.
type Walking struct {
	DistanceMeters  int
	DurationSeconds int
}

// A stop retained in a Location. Present only if it is the canonical
// closest stop for at least one (route, direction) pair.
type Stop struct {
	ID             int
	Name           string
	Point          Point
	DistanceMeters float64

	// Routes maps route id -> direction id -> stop sequence,
	// restricted to the directions this stop is canonical for.
	Routes map[int]map[int]int

	// Set by the walking filter.
	Walking *Walking
	Address string
}

// One direction of a resolved route. StopID is the canonical stop:
// the closest stop to the search point that actually lies along this
// direction. Sequence is that stop's position along it.
type Direction struct {
	Name     string
	StopID   int
	Sequence int
}

type Route struct {
	ID         int
	Type       RouteType
	Number     string
	Name       string
	Directions map[int]Direction
}

// A geographic point resolved into the stops and route directions
// usable from it. Built by Resolve, thinned in place by
// FilterByWalking, read-only afterwards.
type Location struct {
	Point                Point
	WalkingRadiusMinutes int
	Stops                map[int]*Stop
	Routes               map[int]*Route
}

// One travel orientation of a connection: board at Origin, alight at
// Destination, riding direction DirectionID.
type Leg struct {
	DirectionID       int
	OriginStopID      int
	DestinationStopID int
}

// Ride duration statistics over all scheduled runs matched at both
// ends of a connection.
type TripDuration struct {
	MinSeconds int
	MaxSeconds int
	AvgSeconds int
}

// A route usable between two resolved locations. Forward always runs
// start to destination. Reverse is absent when no stop serving the
// opposite direction survived resolution. Duration is nil when no
// departure data could be matched.
type Connection struct {
	RouteID int
	Type    RouteType
	Number  string
	Name    string

	Forward Leg
	Reverse *Leg

	// Walking seconds to every stop referenced by the legs, keyed
	// by stop id.
	WalkingSeconds map[int]int

	Duration *TripDuration
}

// Element status reported by the walking-distance provider for a
// reachable destination. Providers that omit the field are treated
// as reporting OK.
const MatrixStatusOK = "OK"

// One origin-destination measurement of a walking matrix.
type MatrixElement struct {
	Status          string
	DistanceMeters  int
	DurationSeconds int
}

// Walking measurements for one origin and many destinations.
// Addresses and Elements are aligned with the destination order of
// the request.
type WalkingMatrix struct {
	Addresses []string
	Elements  []MatrixElement
}
