package dto

import (
	"github.com/campus-commute-service/internal/domain"
	"github.com/campus-commute-service/internal/pkg/utils"
)

// LoginResponse - issued token plus the role the client switches its UI on
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	Role        string `json:"role"`
}

// CommuteStatusResponse mirrors domain.CommuteStatus on the wire.
type CommuteStatusResponse struct {
	Direction      string                `json:"direction"`
	NearestStop    *StopWithDistance     `json:"nearestStop"`
	AvailableBuses []domain.AvailableBus `json:"availableBuses"`
}

// StopWithDistance - a stop annotated with the distance from the query point
type StopWithDistance struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	DistanceKm float64 `json:"distanceKm"`
}

// LiveBusResponse - one bus with a fresh position, for the live map
type LiveBusResponse struct {
	BusNumber  string  `json:"busNumber"`
	Lat        float64 `json:"latitude"`
	Lng        float64 `json:"longitude"`
	SpeedKmh   float64 `json:"speed"`
	ReportedAt int64   `json:"reportedAt"`
}

// ScheduledBusResponse - a bus serving a stop on a given date
type ScheduledBusResponse struct {
	ScheduleID string `json:"scheduleId"`
	BusNumber  string `json:"busNumber"`
	RouteName  string `json:"routeName"`
	Capacity   int    `json:"capacity"`
	Direction  string `json:"direction"`
	Status     string `json:"status"`
}

func ConvertStopWithDistance(stop *domain.Stop, queryLat, queryLng float64) *StopWithDistance {
	if stop == nil {
		return nil
	}
	return &StopWithDistance{
		ID:         stop.ID.String(),
		Name:       stop.Name,
		Lat:        stop.Lat,
		Lng:        stop.Lng,
		DistanceKm: utils.HaversineDistance(queryLat, queryLng, stop.Lat, stop.Lng),
	}
}
