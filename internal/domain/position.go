package domain

import (
	"time"

	"github.com/google/uuid"
)

// PositionReport is a single GPS sample from an active driver session.
// Only the latest report per bus is retained authoritatively; history
// exists solely as transient messages on the position stream.
type PositionReport struct {
	BusID      uuid.UUID `json:"busId"`
	BusNumber  string    `json:"busNumber"`
	ScheduleID uuid.UUID `json:"scheduleId"`
	Lat        float64   `json:"latitude"`
	Lng        float64   `json:"longitude"`
	SpeedKmh   float64   `json:"speed"`
	ReportedAt time.Time `json:"reportedAt"`
}

// IsFresh reports whether the sample is recent enough for live matching.
func (p *PositionReport) IsFresh(now time.Time, window time.Duration) bool {
	return now.Sub(p.ReportedAt) <= window
}
