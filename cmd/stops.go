package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/r1cc4rdo/transit/model"
)

var stopsCmd = &cobra.Command{
	Use:   "stops <lat> <lon>",
	Short: "Lists reachable stops and routes around a geographical location",
	Args:  cobra.ExactArgs(2),
	RunE:  stops,
}

func init() {
	rootCmd.AddCommand(stopsCmd)
}

func stops(cmd *cobra.Command, args []string) error {
	pt, err := parsePoint(args[0], args[1])
	if err != nil {
		return err
	}

	planner, err := buildPlanner()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	location, err := planner.Resolve(ctx, pt, radius, model.RouteType(routeType))
	if err != nil {
		return err
	}

	if planner.Walking != nil && walkRadius > 0 {
		location, err = planner.FilterByWalking(ctx, location, walkRadius)
		if err != nil {
			return err
		}
	}

	stopIDs := make([]int, 0, len(location.Stops))
	for id := range location.Stops {
		stopIDs = append(stopIDs, id)
	}
	sort.Slice(stopIDs, func(i, j int) bool {
		return location.Stops[stopIDs[i]].DistanceMeters < location.Stops[stopIDs[j]].DistanceMeters
	})

	for _, id := range stopIDs {
		stop := location.Stops[id]
		if stop.Walking != nil {
			fmt.Printf("%d: %s (%.0fm, %ds on foot)\n", stop.ID, stop.Name, stop.DistanceMeters, stop.Walking.DurationSeconds)
		} else {
			fmt.Printf("%d: %s (%.0fm)\n", stop.ID, stop.Name, stop.DistanceMeters)
		}
		for _, routeID := range sortedIntKeys(stop.Routes) {
			route := location.Routes[routeID]
			for _, directionID := range sortedIntKeys(stop.Routes[routeID]) {
				fmt.Printf("    %s to %s (route %d direction %d)\n",
					route.Number, route.Directions[directionID].Name, routeID, directionID)
			}
		}
	}

	return nil
}

func sortedIntKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
