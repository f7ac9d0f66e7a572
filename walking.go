package transit

import (
	"context"
	"fmt"

	"github.com/r1cc4rdo/transit/model"
)

// FilterByWalking enriches every stop of loc with pedestrian
// distance, duration and resolved address, then prunes stops that
// cannot be reached within walkingRadiusMinutes on foot. Directions
// whose canonical stop was pruned are dropped, and routes left with
// no direction are dropped with them.
//
// loc is mutated and returned; ownership stays with the caller. A
// Location without stops is returned unchanged. Stops the provider
// flags with a non-OK element status are treated as unreachable.
//
// The filter is idempotent for a fixed radius, and shrinking the
// radius can only shrink the surviving stop set.
func (p *Planner) FilterByWalking(ctx context.Context, loc *model.Location, walkingRadiusMinutes int) (*model.Location, error) {
	if p.Walking == nil {
		return nil, fmt.Errorf("walking measurer: %w", ErrUnconfigured)
	}

	loc.WalkingRadiusMinutes = walkingRadiusMinutes
	if len(loc.Stops) == 0 {
		return loc, nil
	}

	// One batched call; destinations submitted in stop id order so
	// responses can be matched back by index.
	stopIDs := sortedKeys(loc.Stops)
	destinations := make([]model.Point, len(stopIDs))
	for i, id := range stopIDs {
		destinations[i] = loc.Stops[id].Point
	}

	matrix, err := p.Walking.Matrix(ctx, loc.Point, destinations)
	if err != nil {
		return nil, fmt.Errorf("walking matrix from %s: %w", loc.Point, err)
	}
	if len(matrix.Elements) != len(stopIDs) {
		return nil, fmt.Errorf("walking matrix returned %d elements for %d stops", len(matrix.Elements), len(stopIDs))
	}

	limit := walkingRadiusMinutes * 60
	for i, id := range stopIDs {
		element := matrix.Elements[i]
		stop := loc.Stops[id]

		stop.Walking = &model.Walking{
			DistanceMeters:  element.DistanceMeters,
			DurationSeconds: element.DurationSeconds,
		}
		if i < len(matrix.Addresses) {
			stop.Address = matrix.Addresses[i]
		}

		unreachable := element.Status != "" && element.Status != model.MatrixStatusOK
		if unreachable || element.DurationSeconds > limit {
			delete(loc.Stops, id)
		}
	}

	// Cascade: directions lose their canonical stop, routes lose
	// their last direction.
	for routeID, route := range loc.Routes {
		for directionID, direction := range route.Directions {
			if _, ok := loc.Stops[direction.StopID]; !ok {
				delete(route.Directions, directionID)
			}
		}
		if len(route.Directions) == 0 {
			delete(loc.Routes, routeID)
		}
	}

	return loc, nil
}
