package geo

import "github.com/luwei/smart-travel/internal/domain/outfit"

// Location is a point with optional human-readable context.
type Location struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Address   string  `json:"address,omitempty"`
	City      string  `json:"city,omitempty"`
}

// RouteStep is a single navigation instruction.
type RouteStep struct {
	Instruction string  `json:"instruction"`
	Distance    float64 `json:"distance"` // meters
	Duration    int     `json:"duration"` // seconds
	Polyline    string  `json:"polyline,omitempty"`
}

// Route is a planned route between two locations.
type Route struct {
	Origin        Location             `json:"origin"`
	Destination   Location             `json:"destination"`
	Mode          outfit.TransportMode `json:"transportMode"`
	TotalDistance float64              `json:"totalDistance"` // meters
	TotalDuration int                  `json:"totalDuration"` // seconds
	Steps         []RouteStep          `json:"steps,omitempty"`
	Polyline      string               `json:"polyline,omitempty"`
	WeatherImpact string               `json:"weatherImpact,omitempty"`
}

// ValidCoordinates reports whether the pair is a plausible WGS84 point.
func ValidCoordinates(lng, lat float64) bool {
	return lng >= -180 && lng <= 180 && lat >= -90 && lat <= 90
}
