package outfit

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	apperrors "github.com/luwei/smart-travel/pkg/errors"
)

// WeatherSource resolves coordinates to an engine-ready snapshot.
type WeatherSource interface {
	Snapshot(ctx context.Context, lng, lat float64) (WeatherSnapshot, error)
}

// Coordinates locates the request when no snapshot is supplied inline.
type Coordinates struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// TripRequest is the wire form of TripContext.
type TripRequest struct {
	Mode            string `json:"mode"`
	DurationMinutes int    `json:"durationMinutes"`
	TimeOfDay       string `json:"timeOfDay"`
}

// Request accepts either a location to fetch weather for, or an explicit
// snapshot (location wins the weather endpoint round-trip; snapshot keeps the
// engine callable without any upstream provider).
type Request struct {
	Location    *Coordinates     `json:"location,omitempty"`
	Weather     *WeatherSnapshot `json:"weather,omitempty"`
	Trip        TripRequest      `json:"trip"`
	Preferences *UserPreferences `json:"preferences,omitempty"`
}

// Response is serialized back to API consumers.
type Response struct {
	Weather         WeatherSnapshot  `json:"weather"`
	Recommendations []Recommendation `json:"recommendations"`
	ComfortScore    float64          `json:"comfortScore"` // 0-10
	StyleTips       []string         `json:"styleTips"`
	Reason          string           `json:"reason"`
}

// Service exposes outfit recommendation to the HTTP layer.
type Service interface {
	Recommend(ctx context.Context, req Request) (Response, error)
}

type service struct {
	weather WeatherSource
	logger  *slog.Logger
}

// NewService wires up the outfit domain.
func NewService(weather WeatherSource, logger *slog.Logger) Service {
	return &service{weather: weather, logger: logger.With("component", "outfit.service")}
}

func (s *service) Recommend(ctx context.Context, req Request) (Response, error) {
	snapshot, err := s.resolveWeather(ctx, req)
	if err != nil {
		return Response{}, err
	}

	trip := TripContext{
		Mode:      TransportMode(req.Trip.Mode),
		Duration:  time.Duration(req.Trip.DurationMinutes) * time.Minute,
		TimeOfDay: TimeOfDay(req.Trip.TimeOfDay),
	}
	if trip.Mode == "" {
		trip.Mode = ModeWalking
	}

	recommendations, err := Recommend(snapshot, trip, req.Preferences)
	if err != nil {
		return Response{}, err
	}
	s.logger.Info("outfit recommendation built", "condition", snapshot.Condition, "temp", snapshot.Temperature, "items", len(recommendations))

	return Response{
		Weather:         snapshot,
		Recommendations: recommendations,
		ComfortScore:    ComfortScore(snapshot),
		StyleTips:       styleTips(snapshot),
		Reason:          fmt.Sprintf("based on %.0f°C and %s conditions", snapshot.Temperature, snapshot.Condition),
	}, nil
}

func (s *service) resolveWeather(ctx context.Context, req Request) (WeatherSnapshot, error) {
	if req.Weather != nil {
		return *req.Weather, nil
	}
	if req.Location == nil {
		return WeatherSnapshot{}, apperrors.Wrap("invalid_input", "either location or weather must be provided", nil)
	}
	snapshot, err := s.weather.Snapshot(ctx, req.Location.Longitude, req.Location.Latitude)
	if err != nil {
		return WeatherSnapshot{}, err
	}
	return snapshot, nil
}

// ComfortScore rates the conditions on a 0-10 scale. 21°C, moderate humidity
// and light wind score highest; precipitation and poor visibility subtract.
func ComfortScore(w WeatherSnapshot) float64 {
	score := 10.0
	score -= math.Min(5, math.Abs(w.Temperature-21)*0.25)
	if w.Humidity > 60 {
		score -= math.Min(2, (w.Humidity-60)*0.05)
	}
	if w.WindSpeed > 15 {
		score -= math.Min(2, (w.WindSpeed-15)*0.05)
	}
	switch w.Condition {
	case ConditionRain, ConditionFog:
		score -= 1
	case ConditionSnow, ConditionStorm:
		score -= 2
	}
	if score < 0 {
		score = 0
	}
	return math.Round(score*10) / 10
}

func styleTips(w WeatherSnapshot) []string {
	tips := make([]string, 0, 4)
	if w.Temperature >= 30 {
		tips = append(tips, "carry water and reapply sunscreen through the day")
	}
	if w.Temperature < 0 {
		tips = append(tips, "layer up; several thin layers beat one thick one")
	}
	if w.Humidity > 80 {
		tips = append(tips, "pick breathable fabrics, the air will feel muggy")
	}
	if w.WindSpeed > 30 {
		tips = append(tips, "skip loose hats and scarves in this wind")
	}
	if w.Condition == ConditionRain || w.Condition == ConditionStorm {
		tips = append(tips, "wear shoes that can take a soaking")
	}
	if len(tips) == 0 {
		tips = append(tips, "comfortable weather, dress as you like")
	}
	return tips
}
