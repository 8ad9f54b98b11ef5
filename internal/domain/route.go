package domain

import (
	"time"

	"github.com/google/uuid"
)

type RouteDirection string

const (
	DirectionInbound  RouteDirection = "INBOUND"
	DirectionOutbound RouteDirection = "OUTBOUND"
)

func IsValidRouteDirection(s string) bool {
	switch RouteDirection(s) {
	case DirectionInbound, DirectionOutbound:
		return true
	}
	return false
}

type Route struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	Name      string         `json:"name" db:"name"`
	Direction RouteDirection `json:"direction" db:"direction"`
	Stops     []*Stop        `json:"stops,omitempty"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" db:"updated_at"`
}

// ServesStop reports whether the route passes through the given stop.
func (r *Route) ServesStop(stopID uuid.UUID) bool {
	for _, s := range r.Stops {
		if s.ID == stopID {
			return true
		}
	}
	return false
}
