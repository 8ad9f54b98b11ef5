package dto

// LoginRequest - credentials for token issuance
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterRequest - new user signup
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"required,min=2"`
	Role     string `json:"role" validate:"required,oneof=ADMIN DRIVER STUDENT"`
}

// LocationReportRequest - one driver GPS sample. Range checks live in the
// ingest usecase so a bad report is rejected with INVALID_COORDINATES rather
// than a generic validation error.
type LocationReportRequest struct {
	ScheduleID string  `json:"scheduleId" validate:"required,uuid"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Speed      float64 `json:"speed" validate:"omitempty,min=0"`
	BusNumber  string  `json:"busNumber" validate:"required"`
}

// CommuteStatusRequest - rider coordinates plus an optional chosen drop-off
type CommuteStatusRequest struct {
	Latitude          float64 `query:"latitude"`
	Longitude         float64 `query:"longitude"`
	DestinationStopID string  `query:"destinationStopId" validate:"omitempty,uuid"`
}

// NearbyStopsRequest - stop search around rider coordinates
type NearbyStopsRequest struct {
	Latitude  float64 `query:"latitude"`
	Longitude float64 `query:"longitude"`
	RadiusM   float64 `query:"radius" validate:"omitempty,min=100,max=50000"`
}

// MorningBusesRequest - buses serving a stop on a date
type MorningBusesRequest struct {
	StopID string `query:"stopId" validate:"required,uuid"`
	Date   string `query:"date" validate:"omitempty,datetime=2006-01-02"`
}

// AddBusRequest - admin fleet registration
type AddBusRequest struct {
	BusNumber string `json:"busNumber" validate:"required,min=1,max=16"`
	Capacity  int    `json:"capacity" validate:"omitempty,min=1,max=200"`
	Status    string `json:"status" validate:"omitempty,oneof=IDLE ACTIVE MAINTENANCE"`
}

// CreateRouteRequest - admin route creation with an ordered stop sequence
type CreateRouteRequest struct {
	Name      string   `json:"name" validate:"required,min=2"`
	Direction string   `json:"direction" validate:"required,oneof=INBOUND OUTBOUND"`
	StopIDs   []string `json:"stopIds" validate:"required,min=2,dive,uuid"`
}

// CreateScheduleRequest - admin bus/route assignment
type CreateScheduleRequest struct {
	RouteID   string `json:"routeId" validate:"required,uuid"`
	BusID     string `json:"busId" validate:"required,uuid"`
	Direction string `json:"direction" validate:"required,oneof=INBOUND OUTBOUND"`
	DriverID  string `json:"driverId" validate:"omitempty,uuid"`
}

// UpdateScheduleRequest - reassign a bus onto an existing schedule slot
type UpdateScheduleRequest struct {
	BusID string `json:"busId" validate:"required,uuid"`
}
