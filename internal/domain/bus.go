package domain

import (
	"time"

	"github.com/google/uuid"
)

type BusStatus string

const (
	BusStatusIdle        BusStatus = "IDLE"
	BusStatusActive      BusStatus = "ACTIVE"
	BusStatusMaintenance BusStatus = "MAINTENANCE"
)

func IsValidBusStatus(s string) bool {
	switch BusStatus(s) {
	case BusStatusIdle, BusStatusActive, BusStatusMaintenance:
		return true
	}
	return false
}

type Bus struct {
	ID        uuid.UUID `json:"id" db:"id"`
	BusNumber string    `json:"busNumber" db:"bus_number"`
	Capacity  int       `json:"capacity" db:"capacity"`
	Status    BusStatus `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
