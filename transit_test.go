package transit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r1cc4rdo/transit/model"
	"github.com/r1cc4rdo/transit/testutil"
)

// End to end: two points on route 626, walking filter on, durations
// joined from schedules.
func TestConnectPipeline(t *testing.T) {
	carnegie := model.Point{Lat: -37.9055333, Lon: 145.0519582}
	chadstone := model.Point{Lat: -37.8866, Lon: 145.0828}
	stop14100 := model.Point{Lat: -37.8868, Lon: 145.0831}

	summary626 := model.RouteSummary{
		ID: 15248, Type: model.RouteTypeBus, Number: "626",
		Name: "Middle Brighton - Chadstone via McKinnon & Carnegie",
	}

	tt := &testutil.Timetable{
		NearbyAt: map[model.Point][]model.NearbyStop{
			carnegie: {
				{ID: 13950, Name: "North Rd/Koornang Rd", Point: point13950, DistanceMeters: 173.8,
					Routes: []model.RouteSummary{summary626}},
			},
			chadstone: {
				{ID: 14100, Name: "Chadstone SC/Princes Hwy", Point: stop14100, DistanceMeters: 95.2,
					Routes: []model.RouteSummary{summary626}},
			},
		},
		DirectionRefs: map[int][]model.DirectionRef{
			15248: {{ID: 185, Name: "Chadstone"}, {ID: 186, Name: "Middle Brighton"}},
		},
		Sequences: map[testutil.RouteDirection][]model.SequenceEntry{
			{RouteID: 15248, DirectionID: 185}: {{StopID: 13950, Sequence: 29}, {StopID: 14100, Sequence: 35}},
			{RouteID: 15248, DirectionID: 186}: {{StopID: 14100, Sequence: 11}, {StopID: 13950, Sequence: 17}},
		},
		DepartureLists: map[testutil.DepartureQuery][]model.Departure{
			{StopID: 13950, RouteID: 15248, DirectionID: 185}: {
				{RunRef: "951", Scheduled: time.Date(2024, 5, 17, 10, 0, 0, 0, time.UTC)},
			},
			{StopID: 14100, RouteID: 15248, DirectionID: 185}: {
				{RunRef: "951", Scheduled: time.Date(2024, 5, 17, 10, 12, 0, 0, time.UTC)},
			},
		},
	}

	wm := &testutil.Walking{
		Elements: map[model.Point]model.MatrixElement{
			point13950: testutil.Minutes(3),
			stop14100:  testutil.Minutes(2),
		},
		Addresses: map[model.Point]string{
			point13950: "2 Koornang Rd, Carnegie VIC",
			stop14100:  "Princes Hwy, Chadstone VIC",
		},
	}

	conns, err := NewPlanner(tt, wm).Connect(context.Background(), carnegie, chadstone, Options{})
	require.NoError(t, err)
	require.Len(t, conns, 1)

	c := conns[15248]
	require.NotNil(t, c)
	assert.Equal(t, "626", c.Number)
	assert.Equal(t, model.Leg{DirectionID: 185, OriginStopID: 13950, DestinationStopID: 14100}, c.Forward)
	require.NotNil(t, c.Reverse)
	assert.Equal(t, model.Leg{DirectionID: 186, OriginStopID: 14100, DestinationStopID: 13950}, *c.Reverse)
	assert.Equal(t, map[int]int{13950: 180, 14100: 120}, c.WalkingSeconds)

	require.NotNil(t, c.Duration)
	assert.Equal(t, 720, c.Duration.MinSeconds)
	assert.Equal(t, 720, c.Duration.MaxSeconds)
	assert.Equal(t, 720, c.Duration.AvgSeconds)
}

// Without a walking measurer, Connect still works; locations just
// keep all resolved stops.
func TestConnectWithoutWalking(t *testing.T) {
	p := NewPlanner(carnegieTimetable(), nil)

	conns, err := p.Connect(context.Background(), searchPoint, searchPoint, Options{})
	require.NoError(t, err)
	// Same point at both ends: every shared direction compares
	// equal, so nothing runs "forward".
	assert.Empty(t, conns)
}
