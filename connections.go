package transit

import (
	"sort"

	"github.com/r1cc4rdo/transit/model"
)

// FindConnections intersects two resolved locations into the routes
// that run between them, with travel orientation worked out per
// direction.
//
// For every route known at both ends, each shared direction id is
// classified by comparing the canonical stop sequence numbers: the
// start boarding earlier than the destination means the direction
// runs start to destination (the forward leg), otherwise it is the
// way back (the reverse leg). Routes with no forward leg are skipped:
// no direction reaches the destination from the start given the
// surviving stop sets.
//
// Both inputs are read-only here and may be reused afterwards.
func (p *Planner) FindConnections(start, dest *model.Location) (map[int]*model.Connection, error) {
	shared := make([]int, 0, len(start.Routes))
	for routeID := range start.Routes {
		if _, ok := dest.Routes[routeID]; ok {
			shared = append(shared, routeID)
		}
	}

	// Ascending display number, then id, for deterministic
	// processing order.
	sort.Slice(shared, func(i, j int) bool {
		a, b := start.Routes[shared[i]], start.Routes[shared[j]]
		if a.Number != b.Number {
			return a.Number < b.Number
		}
		return a.ID < b.ID
	})

	connections := map[int]*model.Connection{}
	for _, routeID := range shared {
		startRoute := start.Routes[routeID]
		destRoute := dest.Routes[routeID]

		union := map[int]bool{}
		for directionID := range startRoute.Directions {
			union[directionID] = true
		}
		for directionID := range destRoute.Directions {
			union[directionID] = true
		}
		if len(union) > 2 {
			return nil, &InconsistentRouteError{RouteID: routeID, DirectionIDs: sortedKeys(union)}
		}

		var sharedDirections []int
		for directionID := range startRoute.Directions {
			if _, ok := destRoute.Directions[directionID]; ok {
				sharedDirections = append(sharedDirections, directionID)
			}
		}
		if len(sharedDirections) == 0 {
			continue
		}
		sort.Ints(sharedDirections)

		var forward, reverse *model.Leg
		for _, directionID := range sharedDirections {
			atStart := startRoute.Directions[directionID]
			atDest := destRoute.Directions[directionID]

			if atStart.Sequence < atDest.Sequence {
				if forward != nil {
					return nil, &InconsistentRouteError{RouteID: routeID, DirectionIDs: sharedDirections}
				}
				forward = &model.Leg{
					DirectionID:       directionID,
					OriginStopID:      atStart.StopID,
					DestinationStopID: atDest.StopID,
				}
			} else {
				// The destination's stop comes physically first.
				// Equal sequences land here too: the direction
				// offers no start-to-destination travel.
				reverse = &model.Leg{
					DirectionID:       directionID,
					OriginStopID:      atDest.StopID,
					DestinationStopID: atStart.StopID,
				}
			}
		}

		if forward == nil {
			continue
		}

		connection := &model.Connection{
			RouteID:        routeID,
			Type:           startRoute.Type,
			Number:         startRoute.Number,
			Name:           startRoute.Name,
			Forward:        *forward,
			Reverse:        reverse,
			WalkingSeconds: map[int]int{},
		}

		recordWalking(connection, start, forward.OriginStopID)
		recordWalking(connection, dest, forward.DestinationStopID)
		if reverse != nil {
			recordWalking(connection, dest, reverse.OriginStopID)
			recordWalking(connection, start, reverse.DestinationStopID)
		}

		connections[routeID] = connection
	}

	return connections, nil
}

func recordWalking(c *model.Connection, loc *model.Location, stopID int) {
	if stop, ok := loc.Stops[stopID]; ok && stop.Walking != nil {
		c.WalkingSeconds[stopID] = stop.Walking.DurationSeconds
	}
}
