package transit

import (
	"context"
	"fmt"
	"math"

	"github.com/r1cc4rdo/transit/model"
)

const secondsPerDay = 86400

// EstimateDurations fills in the Duration field of every connection
// by joining live departure schedules at both ends of the ride.
//
// Departures are queried for the forward leg's origin and destination
// stops. A terminus never appears as a scheduled origin, so when
// either list comes back empty the reverse leg's stops are tried
// instead; the schedule join works the same either way because run
// references name whole vehicle trips. If no attempt produces
// departures at both ends, or the run-reference join is empty, the
// duration stays nil. That is data, not a failure: a route whose both
// ends are termini simply has no usable schedule.
//
// The map is mutated and returned.
func (p *Planner) EstimateDurations(ctx context.Context, connections map[int]*model.Connection) (map[int]*model.Connection, error) {
	if p.Timetable == nil {
		return nil, fmt.Errorf("timetable: %w", ErrUnconfigured)
	}

	for _, routeID := range sortedKeys(connections) {
		connection := connections[routeID]

		durations, emptyEnd, err := p.legDurations(ctx, connection, connection.Forward)
		if err != nil {
			return nil, err
		}
		if emptyEnd && connection.Reverse != nil {
			durations, _, err = p.legDurations(ctx, connection, *connection.Reverse)
			if err != nil {
				return nil, err
			}
		}

		connection.Duration = summarize(durations)
	}

	return connections, nil
}

// legDurations queries scheduled departures at both stops of a leg
// and returns the ride seconds for every run seen at both ends.
// emptyEnd reports that one of the two departure lists was empty, the
// cue for the caller to retry via the opposite leg.
func (p *Planner) legDurations(ctx context.Context, c *model.Connection, leg model.Leg) ([]int, bool, error) {
	maxResults := p.MaxDepartureResults
	if maxResults <= 0 {
		maxResults = DefaultMaxDepartureResults
	}

	atOrigin, err := p.Timetable.Departures(ctx, c.Type, leg.OriginStopID, c.RouteID, leg.DirectionID, maxResults)
	if err != nil {
		return nil, false, fmt.Errorf("departures at stop %d route %d: %w", leg.OriginStopID, c.RouteID, err)
	}
	atDestination, err := p.Timetable.Departures(ctx, c.Type, leg.DestinationStopID, c.RouteID, leg.DirectionID, maxResults)
	if err != nil {
		return nil, false, fmt.Errorf("departures at stop %d route %d: %w", leg.DestinationStopID, c.RouteID, err)
	}
	if len(atOrigin) == 0 || len(atDestination) == 0 {
		return nil, true, nil
	}

	boarded := map[string]model.Departure{}
	for _, departure := range atOrigin {
		if _, ok := boarded[departure.RunRef]; !ok {
			boarded[departure.RunRef] = departure
		}
	}

	var durations []int
	for _, arrival := range atDestination {
		origin, ok := boarded[arrival.RunRef]
		if !ok {
			continue
		}
		// Runs crossing midnight make the difference wrap; a mod-day
		// fold discards the artifact.
		seconds := int(arrival.Scheduled.Sub(origin.Scheduled).Seconds()) % secondsPerDay
		if seconds < 0 {
			seconds += secondsPerDay
		}
		durations = append(durations, seconds)
	}

	return durations, false, nil
}

func summarize(durations []int) *model.TripDuration {
	if len(durations) == 0 {
		return nil
	}

	min, max, sum := durations[0], durations[0], 0
	for _, d := range durations {
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
		sum += d
	}

	return &model.TripDuration{
		MinSeconds: min,
		MaxSeconds: max,
		AvgSeconds: int(math.Round(float64(sum) / float64(len(durations)))),
	}
}
