package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"github.com/r1cc4rdo/transit"
	"github.com/r1cc4rdo/transit/model"
)

var connectionsCmd = &cobra.Command{
	Use:   "connections <from_lat> <from_lon> <to_lat> <to_lon>",
	Short: "Lists route connections between two geographical locations",
	Args:  cobra.ExactArgs(4),
	RunE:  connections,
}

var csvOutput bool

func init() {
	connectionsCmd.Flags().BoolVarP(&csvOutput, "csv", "", false, "Emit CSV instead of text")
	rootCmd.AddCommand(connectionsCmd)
}

type connectionRow struct {
	RouteID    int    `csv:"route_id"`
	Number     string `csv:"number"`
	Name       string `csv:"name"`
	Direction  int    `csv:"direction_id"`
	BoardAt    int    `csv:"board_stop_id"`
	AlightAt   int    `csv:"alight_stop_id"`
	HasReturn  bool   `csv:"has_return"`
	MinSeconds int    `csv:"min_seconds"`
	MaxSeconds int    `csv:"max_seconds"`
	AvgSeconds int    `csv:"avg_seconds"`
}

func connections(cmd *cobra.Command, args []string) error {
	from, err := parsePoint(args[0], args[1])
	if err != nil {
		return err
	}
	to, err := parsePoint(args[2], args[3])
	if err != nil {
		return err
	}

	planner, err := buildPlanner()
	if err != nil {
		return err
	}
	if walkRadius == 0 {
		planner.Walking = nil
	}

	found, err := planner.Connect(cmd.Context(), from, to, transit.Options{
		RouteType:            model.RouteType(routeType),
		RadiusMeters:         radius,
		WalkingRadiusMinutes: walkRadius,
	})
	if err != nil {
		return err
	}

	ordered := make([]*model.Connection, 0, len(found))
	for _, c := range found {
		ordered = append(ordered, c)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Number != ordered[j].Number {
			return ordered[i].Number < ordered[j].Number
		}
		return ordered[i].RouteID < ordered[j].RouteID
	})

	if csvOutput {
		rows := make([]connectionRow, 0, len(ordered))
		for _, c := range ordered {
			row := connectionRow{
				RouteID:   c.RouteID,
				Number:    c.Number,
				Name:      c.Name,
				Direction: c.Forward.DirectionID,
				BoardAt:   c.Forward.OriginStopID,
				AlightAt:  c.Forward.DestinationStopID,
				HasReturn: c.Reverse != nil,
			}
			if c.Duration != nil {
				row.MinSeconds = c.Duration.MinSeconds
				row.MaxSeconds = c.Duration.MaxSeconds
				row.AvgSeconds = c.Duration.AvgSeconds
			}
			rows = append(rows, row)
		}
		return gocsv.Marshal(rows, os.Stdout)
	}

	for _, c := range ordered {
		ride := "ride time unknown"
		if c.Duration != nil {
			ride = fmt.Sprintf("%d-%ds, avg %ds", c.Duration.MinSeconds, c.Duration.MaxSeconds, c.Duration.AvgSeconds)
		}
		fmt.Printf("%s %s: board %d, alight %d (%s)\n", c.Number, c.Name, c.Forward.OriginStopID, c.Forward.DestinationStopID, ride)
	}

	return nil
}
