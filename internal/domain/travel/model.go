package travel

import (
	"time"

	"github.com/luwei/smart-travel/internal/domain/geo"
	"github.com/luwei/smart-travel/internal/domain/outfit"
	"github.com/luwei/smart-travel/internal/domain/weather"
)

// PlanRequest asks for a full travel plan. Origin and Destination accept
// either "lng,lat" pairs or free-form addresses to geocode.
type PlanRequest struct {
	Origin           string                  `json:"origin"`
	Destination      string                  `json:"destination"`
	Mode             string                  `json:"transportMode"`
	PreferredArrival string                  `json:"preferredArrivalTime,omitempty"` // HH:MM
	Preferences      *outfit.UserPreferences `json:"preferences,omitempty"`
}

// RouteRequest plans a bare route, optionally annotated with weather impact.
type RouteRequest struct {
	Origin       geo.Location `json:"origin"`
	Destination  geo.Location `json:"destination"`
	Mode         string       `json:"transportMode"`
	AvoidWeather bool         `json:"avoidWeather"`
}

// Impact levels, ordered from benign to severe.
const (
	ImpactLow      = "low"
	ImpactModerate = "moderate"
	ImpactHigh     = "high"
)

// Impact describes how the destination weather affects the trip.
type Impact struct {
	Level           string   `json:"level"`
	DurationFactor  float64  `json:"durationFactor"`
	Warnings        []string `json:"warnings,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// Timing holds the departure computation results. Clock values are HH:MM in
// the server's local time.
type Timing struct {
	OptimalDeparture        string `json:"optimalDeparture"`
	EstimatedArrival        string `json:"estimatedArrival"`
	BaseDurationMinutes     int    `json:"baseDurationMinutes"`
	AdjustedDurationMinutes int    `json:"adjustedDurationMinutes"`
	BufferMinutes           int    `json:"bufferMinutes"`
	TotalDurationMinutes    int    `json:"totalDurationMinutes"`
}

// Plan is the combined travel recommendation.
type Plan struct {
	PlanID      string                  `json:"planId"`
	Origin      geo.Location            `json:"origin"`
	Destination geo.Location            `json:"destination"`
	Mode        outfit.TransportMode    `json:"transportMode"`
	Route       geo.Route               `json:"route"`
	Weather     weather.Observation     `json:"weather"`
	Outfit      []outfit.Recommendation `json:"outfitRecommendations"`
	Impact      Impact                  `json:"weatherImpact"`
	Timing      Timing                  `json:"timing"`
	Tips        []string                `json:"travelTips"`
	CreatedAt   time.Time               `json:"createdAt"`
}
