package geo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/luwei/smart-travel/internal/domain/outfit"
	apperrors "github.com/luwei/smart-travel/pkg/errors"
)

// MapClient is the upstream mapping provider boundary.
type MapClient interface {
	Geocode(ctx context.Context, address, city string) (Location, error)
	ReverseGeocode(ctx context.Context, loc Location) (Location, error)
	SearchPlaces(ctx context.Context, keywords, city string) ([]Location, error)
	PlanRoute(ctx context.Context, origin, destination Location, mode outfit.TransportMode) (Route, error)
}

// Service validates requests before they reach the map provider.
type Service interface {
	Geocode(ctx context.Context, address, city string) (Location, error)
	ReverseGeocode(ctx context.Context, loc Location) (Location, error)
	SearchPlaces(ctx context.Context, keywords, city string) ([]Location, error)
	PlanRoute(ctx context.Context, origin, destination Location, mode outfit.TransportMode) (Route, error)
}

type service struct {
	client MapClient
	logger *slog.Logger
}

// NewService wires the geo domain.
func NewService(client MapClient, logger *slog.Logger) Service {
	return &service{client: client, logger: logger.With("component", "geo.service")}
}

func (s *service) Geocode(ctx context.Context, address, city string) (Location, error) {
	if strings.TrimSpace(address) == "" {
		return Location{}, apperrors.Wrap("invalid_input", "address cannot be empty", nil)
	}
	loc, err := s.client.Geocode(ctx, address, city)
	if err != nil {
		return Location{}, apperrors.Wrap("map_api_error", "failed to geocode address", err)
	}
	s.logger.Info("geocoded address", "address", address, "lng", loc.Longitude, "lat", loc.Latitude)
	return loc, nil
}

func (s *service) ReverseGeocode(ctx context.Context, loc Location) (Location, error) {
	if !ValidCoordinates(loc.Longitude, loc.Latitude) {
		return Location{}, invalidCoordinates(loc.Longitude, loc.Latitude)
	}
	resolved, err := s.client.ReverseGeocode(ctx, loc)
	if err != nil {
		return Location{}, apperrors.Wrap("map_api_error", "failed to reverse geocode coordinates", err)
	}
	return resolved, nil
}

func (s *service) SearchPlaces(ctx context.Context, keywords, city string) ([]Location, error) {
	if strings.TrimSpace(keywords) == "" {
		return nil, apperrors.Wrap("invalid_input", "keywords cannot be empty", nil)
	}
	places, err := s.client.SearchPlaces(ctx, keywords, city)
	if err != nil {
		return nil, apperrors.Wrap("map_api_error", "failed to search places", err)
	}
	return places, nil
}

func (s *service) PlanRoute(ctx context.Context, origin, destination Location, mode outfit.TransportMode) (Route, error) {
	if !ValidCoordinates(origin.Longitude, origin.Latitude) {
		return Route{}, invalidCoordinates(origin.Longitude, origin.Latitude)
	}
	if !ValidCoordinates(destination.Longitude, destination.Latitude) {
		return Route{}, invalidCoordinates(destination.Longitude, destination.Latitude)
	}
	if mode == "" {
		mode = outfit.ModeDriving
	}
	if !outfit.KnownMode(mode) {
		return Route{}, apperrors.Wrap("invalid_input", fmt.Sprintf("unrecognized transport mode %q", mode), nil)
	}
	route, err := s.client.PlanRoute(ctx, origin, destination, mode)
	if err != nil {
		return Route{}, apperrors.Wrap("map_api_error", "failed to plan route", err)
	}
	s.logger.Info("route planned", "mode", mode, "distance_m", route.TotalDistance, "duration_s", route.TotalDuration)
	return route, nil
}

func invalidCoordinates(lng, lat float64) error {
	return apperrors.Wrap("invalid_input",
		fmt.Sprintf("coordinates (%.4f, %.4f) outside valid longitude/latitude ranges", lng, lat), nil)
}
