package utils

import "math"

const earthRadiusKm = 6371.0

// HaversineDistance returns the great-circle distance between two points in kilometers.
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLng := (lng2 - lng1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// ValidateCoordinates reports whether lat/lng are inside the plausible range.
func ValidateCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// EstimateETAMinutes converts a distance to an arrival estimate in whole minutes.
// Speeds below minPlausibleSpeedKmh (stationary bus, GPS jitter, unreported)
// fall back to fallbackSpeedKmh so a positive distance never yields zero or
// a division by zero. The result is floored at one minute while distance > 0.
func EstimateETAMinutes(distanceKm, reportedSpeedKmh, fallbackSpeedKmh, minPlausibleSpeedKmh float64) int {
	if distanceKm <= 0 {
		return 0
	}

	speed := reportedSpeedKmh
	if speed < minPlausibleSpeedKmh {
		speed = fallbackSpeedKmh
	}

	minutes := int(math.Round(distanceKm / speed * 60))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
