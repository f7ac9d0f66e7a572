package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/r1cc4rdo/transit"
	"github.com/r1cc4rdo/transit/config"
	"github.com/r1cc4rdo/transit/distance"
	"github.com/r1cc4rdo/transit/fetch"
	"github.com/r1cc4rdo/transit/model"
	"github.com/r1cc4rdo/transit/ptv"
)

var rootCmd = &cobra.Command{
	Use:          "transit",
	Short:        "PTV reachability tool",
	Long:         "Resolves stops, routes and connections around geographic points",
	SilenceUsage: true,
}

var (
	configPath string
	radius     int
	routeType  int
	walkRadius int
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yml", "Config file with PTV credentials")
	rootCmd.PersistentFlags().IntVarP(&radius, "radius", "r", transit.DefaultRadiusMeters, "Stop search radius in meters")
	rootCmd.PersistentFlags().IntVarP(&routeType, "route-type", "t", int(model.RouteTypeBus), "Transport mode (0=train 1=tram 2=bus 3=vline 4=night bus)")
	rootCmd.PersistentFlags().IntVarP(&walkRadius, "walk", "w", transit.DefaultWalkingRadiusMinutes, "Walking radius in minutes (0 disables filtering)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func buildPlanner() (*transit.Planner, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	var getter fetch.Getter
	switch cfg.Cache.Backend {
	case "sqlite":
		getter, err = fetch.NewSQLite(cfg.Cache.DSN)
	case "postgres":
		getter, err = fetch.NewPostgres(cfg.Cache.DSN)
	default:
		getter = fetch.NewMemory()
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s cache: %w", cfg.Cache.Backend, err)
	}

	opts := []ptv.Option{ptv.WithGetter(getter)}
	if cfg.Cache.TTLMinutes > 0 {
		opts = append(opts, ptv.WithCacheTTL(time.Duration(cfg.Cache.TTLMinutes)*time.Minute))
	}
	timetable := ptv.New(cfg.PTV.DevID, cfg.PTV.Key, opts...)

	var walking transit.WalkingMeasurer
	if cfg.Walking.Key != "" {
		walking = distance.New(cfg.Walking.Key, distance.WithGetter(getter))
	}

	return transit.NewPlanner(timetable, walking), nil
}

func parsePoint(latArg, lonArg string) (model.Point, error) {
	lat, err := strconv.ParseFloat(latArg, 64)
	if err != nil {
		return model.Point{}, fmt.Errorf("invalid lat: %w", err)
	}
	lon, err := strconv.ParseFloat(lonArg, 64)
	if err != nil {
		return model.Point{}, fmt.Errorf("invalid lon: %w", err)
	}
	return model.Point{Lat: lat, Lon: lon}, nil
}
