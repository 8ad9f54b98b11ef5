package domain

// CommuteDirection is the rider-facing phase of the commute.
// Inside the campus geofence the rider needs a drop-off (OUTGOING);
// outside it they are heading toward campus (INCOMING).
type CommuteDirection string

const (
	CommuteIncoming CommuteDirection = "INCOMING"
	CommuteOutgoing CommuteDirection = "OUTGOING"
)

// AvailableBus is one live bus candidate in a commute-status response.
type AvailableBus struct {
	BusNumber  string  `json:"busNumber"`
	RouteName  string  `json:"routeName"`
	Capacity   int     `json:"capacity"`
	Lat        float64 `json:"latitude"`
	Lng        float64 `json:"longitude"`
	DistanceKm float64 `json:"distanceKm"`
	ETAMinutes int     `json:"etaMinutes"`
}

// CommuteStatus is derived per query and never persisted.
type CommuteStatus struct {
	Direction      CommuteDirection `json:"direction"`
	NearestStop    *Stop            `json:"nearestStop"`
	AvailableBuses []AvailableBus   `json:"availableBuses"`
}
