package travel

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/luwei/smart-travel/internal/domain/geo"
	"github.com/luwei/smart-travel/internal/domain/outfit"
	"github.com/luwei/smart-travel/internal/domain/weather"
	apperrors "github.com/luwei/smart-travel/pkg/errors"
	"github.com/luwei/smart-travel/pkg/util"
)

// Service builds combined route + weather + outfit travel plans.
type Service interface {
	CreatePlan(ctx context.Context, req PlanRequest) (Plan, error)
	PlanRoute(ctx context.Context, req RouteRequest) (geo.Route, error)
}

type service struct {
	geo     geo.Service
	weather weather.Service
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
}

// NewService wires the travel planning domain.
func NewService(geoSvc geo.Service, weatherSvc weather.Service, logger *slog.Logger) Service {
	return &service{
		geo:     geoSvc,
		weather: weatherSvc,
		logger:  logger.With("component", "travel.service"),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

func (s *service) CreatePlan(ctx context.Context, req PlanRequest) (Plan, error) {
	origin, err := s.resolveLocation(ctx, req.Origin)
	if err != nil {
		return Plan{}, err
	}
	destination, err := s.resolveLocation(ctx, req.Destination)
	if err != nil {
		return Plan{}, err
	}

	mode := outfit.TransportMode(req.Mode)
	if mode == "" {
		mode = outfit.ModeDriving
	}
	if !outfit.KnownMode(mode) {
		return Plan{}, apperrors.Wrap("invalid_input", fmt.Sprintf("unrecognized transport mode %q", mode), nil)
	}

	route, err := s.geo.PlanRoute(ctx, origin, destination, mode)
	if err != nil {
		return Plan{}, err
	}

	obs, err := s.weather.Current(ctx, destination.Longitude, destination.Latitude)
	if err != nil {
		return Plan{}, err
	}

	now := s.now()
	trip := outfit.TripContext{
		Mode:      mode,
		Duration:  time.Duration(route.TotalDuration) * time.Second,
		TimeOfDay: timeOfDayFor(now),
	}
	recommendations, err := outfit.Recommend(obs.Snapshot(), trip, req.Preferences)
	if err != nil {
		return Plan{}, err
	}

	impact := AnalyzeImpact(obs, mode)
	timing, err := computeTiming(route.TotalDuration, impact.DurationFactor, req.PreferredArrival, now)
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{
		PlanID:      s.newID(),
		Origin:      origin,
		Destination: destination,
		Mode:        mode,
		Route:       route,
		Weather:     obs,
		Outfit:      recommendations,
		Impact:      impact,
		Timing:      timing,
		Tips:        travelTips(obs, mode, timing, impact),
		CreatedAt:   now,
	}
	s.logger.Info("travel plan created", "planId", plan.PlanID, "mode", mode, "impact", impact.Level)
	return plan, nil
}

func (s *service) PlanRoute(ctx context.Context, req RouteRequest) (geo.Route, error) {
	route, err := s.geo.PlanRoute(ctx, req.Origin, req.Destination, outfit.TransportMode(req.Mode))
	if err != nil {
		return geo.Route{}, err
	}
	if req.AvoidWeather {
		// Annotation is best effort; a weather outage must not break routing.
		obs, wErr := s.weather.Current(ctx, req.Destination.Longitude, req.Destination.Latitude)
		if wErr != nil {
			s.logger.Warn("skipping weather annotation", "error", wErr)
			return route, nil
		}
		route.WeatherImpact = AnalyzeImpact(obs, route.Mode).Summary()
	}
	return route, nil
}

// resolveLocation accepts "lng,lat" or an address to geocode.
func (s *service) resolveLocation(ctx context.Context, value string) (geo.Location, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return geo.Location{}, apperrors.Wrap("invalid_input", "origin and destination cannot be empty", nil)
	}
	if parts := strings.Split(trimmed, ","); len(parts) == 2 {
		lng, lngErr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		lat, latErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if lngErr == nil && latErr == nil {
			if !geo.ValidCoordinates(lng, lat) {
				return geo.Location{}, apperrors.Wrap("invalid_input",
					fmt.Sprintf("coordinates %q outside valid longitude/latitude ranges", trimmed), nil)
			}
			return geo.Location{Longitude: lng, Latitude: lat}, nil
		}
	}
	return s.geo.Geocode(ctx, trimmed, "")
}

// computeTiming derives departure and arrival clocks from the weather
// adjusted duration plus a buffer of at least ten minutes.
func computeTiming(baseSeconds int, factor float64, preferredArrival string, now time.Time) (Timing, error) {
	baseMinutes := int(math.Round(float64(baseSeconds) / 60))
	adjusted := int(math.Round(float64(baseMinutes) * factor))
	buffer := adjusted / 10
	if buffer < 10 {
		buffer = 10
	}
	total := adjusted + buffer

	departure := now
	if strings.TrimSpace(preferredArrival) != "" {
		clock, err := util.ParseClock(preferredArrival)
		if err != nil {
			return Timing{}, apperrors.Wrap("invalid_input", "preferredArrivalTime must be formatted as HH:MM", err)
		}
		arrival := time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), 0, 0, now.Location())
		if arrival.Before(now) {
			arrival = arrival.Add(24 * time.Hour)
		}
		departure = arrival.Add(-time.Duration(total) * time.Minute)
	}

	return Timing{
		OptimalDeparture:        departure.Format("15:04"),
		EstimatedArrival:        departure.Add(time.Duration(total) * time.Minute).Format("15:04"),
		BaseDurationMinutes:     baseMinutes,
		AdjustedDurationMinutes: adjusted,
		BufferMinutes:           buffer,
		TotalDurationMinutes:    total,
	}, nil
}

func timeOfDayFor(now time.Time) outfit.TimeOfDay {
	switch hour := now.Hour(); {
	case hour >= 5 && hour < 12:
		return outfit.TimeMorning
	case hour >= 12 && hour < 17:
		return outfit.TimeAfternoon
	case hour >= 17 && hour < 21:
		return outfit.TimeEvening
	default:
		return outfit.TimeNight
	}
}

func travelTips(obs weather.Observation, mode outfit.TransportMode, timing Timing, impact Impact) []string {
	tips := []string{
		fmt.Sprintf("the trip takes about %d minutes; leave %d minutes early", timing.AdjustedDurationMinutes, timing.BufferMinutes),
	}

	if obs.Temperature > 30 {
		tips = append(tips, "hot day; pack water and sun protection")
	} else if obs.Temperature < 0 {
		tips = append(tips, "freezing temperatures; surfaces may be icy")
	}
	if obs.Humidity > 80 {
		tips = append(tips, "humid air feels stifling; wear breathable clothes")
	}
	if obs.WindSpeed > 30 {
		tips = append(tips, "strong wind; mind your footing and falling debris")
	}

	switch mode {
	case outfit.ModeDriving:
		tips = append(tips, "follow traffic rules and drive defensively")
		if obs.Condition == outfit.ConditionRain || obs.Condition == outfit.ConditionSnow || obs.Condition == outfit.ConditionStorm {
			tips = append(tips, "wet roads; reduce speed and keep distance")
		}
	case outfit.ModeWalking:
		tips = append(tips, "stick to footpaths and watch for traffic")
	case outfit.ModeCycling:
		tips = append(tips, "wear a helmet and stay visible in traffic")
	case outfit.ModeTransit:
		tips = append(tips, "check the timetable before heading out")
	}

	return append(tips, impact.Recommendations...)
}
