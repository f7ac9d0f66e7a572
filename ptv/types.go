package ptv

// Wire shapes of the consumed v3 endpoints. Only the fields the
// pipeline needs are decoded.

type stopsNearbyResponse struct {
	Stops []struct {
		StopID        int     `json:"stop_id"`
		StopName      string  `json:"stop_name"`
		StopLatitude  float64 `json:"stop_latitude"`
		StopLongitude float64 `json:"stop_longitude"`
		StopDistance  float64 `json:"stop_distance"`
		Routes        []struct {
			RouteID     int    `json:"route_id"`
			RouteType   int    `json:"route_type"`
			RouteNumber string `json:"route_number"`
			RouteName   string `json:"route_name"`
		} `json:"routes"`
	} `json:"stops"`
}

type directionsResponse struct {
	Directions []struct {
		DirectionID   int    `json:"direction_id"`
		DirectionName string `json:"direction_name"`
	} `json:"directions"`
}

type routeStopsResponse struct {
	Stops []struct {
		StopID       int `json:"stop_id"`
		StopSequence int `json:"stop_sequence"`
	} `json:"stops"`
}

type departuresResponse struct {
	Departures []struct {
		RunRef                string `json:"run_ref"`
		ScheduledDepartureUTC string `json:"scheduled_departure_utc"`
	} `json:"departures"`
}
