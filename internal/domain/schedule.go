package domain

import (
	"time"

	"github.com/google/uuid"
)

type ScheduleStatus string

const (
	ScheduleStatusIdle      ScheduleStatus = "IDLE"
	ScheduleStatusActive    ScheduleStatus = "ACTIVE"
	ScheduleStatusCompleted ScheduleStatus = "COMPLETED"
)

// Schedule links a Route to a Bus for one service day and direction.
// A bus with status ACTIVE has exactly one open (IDLE or ACTIVE) schedule.
type Schedule struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	RouteID     uuid.UUID      `json:"routeId" db:"route_id"`
	BusID       uuid.UUID      `json:"busId" db:"bus_id"`
	DriverID    *uuid.UUID     `json:"driverId,omitempty" db:"driver_id"`
	Direction   RouteDirection `json:"direction" db:"direction"`
	ServiceDate time.Time      `json:"serviceDate" db:"service_date"`
	Status      ScheduleStatus `json:"status" db:"status"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
}

// IsOpen reports whether the schedule still occupies its bus for the day.
func (s *Schedule) IsOpen() bool {
	return s.Status == ScheduleStatusIdle || s.Status == ScheduleStatusActive
}

// ScheduleDetails is a schedule joined with its bus and route reference data,
// the shape the matching engine and the driver dashboard consume.
type ScheduleDetails struct {
	Schedule
	BusNumber   string `json:"busNumber" db:"bus_number"`
	BusCapacity int    `json:"busCapacity" db:"bus_capacity"`
	RouteName   string `json:"routeName" db:"route_name"`
}
