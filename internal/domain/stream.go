package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names shared between the API process and the arrival-alert worker.
const (
	StreamPositionReports = "stream:positions:reports"
	StreamArrivalAlerts   = "stream:arrivals:alerts"
)

// StreamMessage is one raw entry read from a redis stream.
type StreamMessage struct {
	ID   string
	Data string
}

// ArrivalAlert is emitted when a live bus crosses into the approach radius
// of a stop on its route.
type ArrivalAlert struct {
	BusID      uuid.UUID `json:"busId"`
	BusNumber  string    `json:"busNumber"`
	StopID     uuid.UUID `json:"stopId"`
	StopName   string    `json:"stopName"`
	DistanceM  float64   `json:"distanceM"`
	ReportedAt time.Time `json:"reportedAt"`
}
