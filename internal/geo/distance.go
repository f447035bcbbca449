package geo

import (
	"fmt"
	"math"
	"strings"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// DurationNotAvailable is returned by EstimateDuration when no finite estimate exists.
const DurationNotAvailable = "N/A"

// Mode is a transport mode used for duration estimates.
type Mode string

const (
	ModeCar    Mode = "car"
	ModeTrain  Mode = "train"
	ModeFlight Mode = "flight"
)

// ParseMode maps a mode string to a Mode. An empty string means car.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeCar:
		return ModeCar, nil
	case ModeTrain:
		return ModeTrain, nil
	case ModeFlight:
		return ModeFlight, nil
	default:
		return "", fmt.Errorf("unsupported transport mode %q", s)
	}
}

// SpeedTable holds average speeds in km/h per transport mode.
type SpeedTable map[Mode]float64

// DefaultSpeeds is the reference table: car 60, train 90, flight 700 km/h.
func DefaultSpeeds() SpeedTable {
	return SpeedTable{
		ModeCar:    60,
		ModeTrain:  90,
		ModeFlight: 700,
	}
}

// HaversineKm returns the great-circle distance between a and b in kilometers.
func HaversineKm(a, b Coordinates) float64 {
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := lat2 - lat1
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// Rounding can push h slightly above 1 for antipodal points.
	h = math.Min(1, math.Max(0, h))

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// EstimateDuration divides distanceKm by the table's speed for mode and formats the
// result as "{hours}h {minutes}m". Unknown modes, zero speeds and non-finite distances
// yield DurationNotAvailable.
func (t SpeedTable) EstimateDuration(distanceKm float64, mode Mode) string {
	hours := distanceKm / t[mode]
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return DurationNotAvailable
	}

	totalMinutes := int64(math.Floor(hours * 60))
	return fmt.Sprintf("%dh %dm", totalMinutes/60, totalMinutes%60)
}

// EstimateDuration uses DefaultSpeeds.
func EstimateDuration(distanceKm float64, mode Mode) string {
	return DefaultSpeeds().EstimateDuration(distanceKm, mode)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
