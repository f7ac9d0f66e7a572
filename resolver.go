package transit

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/r1cc4rdo/transit/model"
)

// Resolve turns a geographic point into the set of stops and route
// directions actually usable from it.
//
// Stop ids along opposite directions of a route can be either shared
// or separate, and the provider does not expose the many-to-many
// stop/route/direction relationships directly. Keeping only the
// closest stop per route would silently lose one of the two
// directions, so each direction is resolved to its own canonical
// stop: the closest stop to pt that lies along that direction's stop
// sequence.
//
// The result is deterministic: selection depends only on the distance
// order of the nearby-stop listing (ties keep provider order) and on
// sequence-set membership, never on query timing.
func (p *Planner) Resolve(ctx context.Context, pt model.Point, radiusMeters int, routeType model.RouteType) (*model.Location, error) {
	if p.Timetable == nil {
		return nil, fmt.Errorf("timetable: %w", ErrUnconfigured)
	}

	nearby, err := p.Timetable.StopsNearby(ctx, pt, routeType, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("stops near %s: %w", pt, err)
	}

	byDistance := make([]model.NearbyStop, len(nearby))
	copy(byDistance, nearby)
	sort.SliceStable(byDistance, func(i, j int) bool {
		return byDistance[i].DistanceMeters < byDistance[j].DistanceMeters
	})

	// Route display metadata, first listing wins.
	summaries := map[int]model.RouteSummary{}
	for _, stop := range byDistance {
		for _, summary := range stop.Routes {
			if _, ok := summaries[summary.ID]; !ok {
				summaries[summary.ID] = summary
			}
		}
	}

	routes := map[int]*model.Route{}
	for _, routeID := range sortedKeys(summaries) {
		refs, err := p.Timetable.Directions(ctx, routeID)
		if err != nil {
			return nil, fmt.Errorf("directions of route %d: %w", routeID, err)
		}
		sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })

		summary := summaries[routeID]
		route := &model.Route{
			ID:         routeID,
			Type:       summary.Type,
			Number:     summary.Number,
			Name:       strings.TrimSpace(summary.Name),
			Directions: map[int]model.Direction{},
		}

		for _, ref := range refs {
			entries, err := p.Timetable.StopsAlongRoute(ctx, routeID, summary.Type, ref.ID)
			if err != nil {
				return nil, fmt.Errorf("stops of route %d direction %d: %w", routeID, ref.ID, err)
			}

			// Sequence 0 marks stops not served in this direction.
			along := map[int]int{}
			for _, entry := range entries {
				if entry.Sequence != 0 {
					along[entry.StopID] = entry.Sequence
				}
			}

			// The closest nearby stop on the sequence is canonical
			// for this direction.
			for _, stop := range byDistance {
				if seq, ok := along[stop.ID]; ok {
					route.Directions[ref.ID] = model.Direction{
						Name:     ref.Name,
						StopID:   stop.ID,
						Sequence: seq,
					}
					break
				}
			}
		}

		// A route none of whose directions pass through the nearby
		// stops is not reachable from here.
		if len(route.Directions) > 0 {
			routes[routeID] = route
		}
	}

	// Reverse index: per canonical stop, the (route, direction,
	// sequence) tuples that selected it.
	stops := map[int]*model.Stop{}
	for routeID, route := range routes {
		for directionID, direction := range route.Directions {
			stop, ok := stops[direction.StopID]
			if !ok {
				listed, err := findNearby(byDistance, direction.StopID)
				if err != nil {
					return nil, err
				}
				stop = &model.Stop{
					ID:             listed.ID,
					Name:           strings.TrimSpace(listed.Name),
					Point:          listed.Point,
					DistanceMeters: listed.DistanceMeters,
					Routes:         map[int]map[int]int{},
				}
				stops[direction.StopID] = stop
			}
			if stop.Routes[routeID] == nil {
				stop.Routes[routeID] = map[int]int{}
			}
			stop.Routes[routeID][directionID] = direction.Sequence
		}
	}

	return &model.Location{Point: pt, Stops: stops, Routes: routes}, nil
}

func findNearby(listing []model.NearbyStop, stopID int) (model.NearbyStop, error) {
	for _, stop := range listing {
		if stop.ID == stopID {
			return stop, nil
		}
	}
	// Canonical stops are drawn from the listing, so this is
	// unreachable unless the caller mixed inputs.
	return model.NearbyStop{}, fmt.Errorf("stop %d not in nearby listing", stopID)
}
