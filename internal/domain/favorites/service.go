package favorites

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/luwei/smart-travel/internal/domain/geo"
	"github.com/luwei/smart-travel/internal/domain/outfit"
	apperrors "github.com/luwei/smart-travel/pkg/errors"
	"github.com/luwei/smart-travel/pkg/util"
)

// Service manages favorite routes.
type Service interface {
	Save(ctx context.Context, req SaveRequest) (Route, error)
	List(ctx context.Context, deviceID string) ([]Route, error)
	Delete(ctx context.Context, deviceID, id string) error
}

type service struct {
	repo   Repository
	logger *slog.Logger
	newID  func() string
}

// NewService wires the favorites domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With("component", "favorites.service"),
		newID:  uuid.NewString,
	}
}

func (s *service) Save(ctx context.Context, req SaveRequest) (Route, error) {
	if strings.TrimSpace(req.DeviceID) == "" {
		return Route{}, apperrors.Wrap("invalid_input", "deviceId cannot be empty", nil)
	}
	if strings.TrimSpace(req.Name) == "" {
		return Route{}, apperrors.Wrap("invalid_input", "name cannot be empty", nil)
	}
	if !geo.ValidCoordinates(req.Origin.Longitude, req.Origin.Latitude) ||
		!geo.ValidCoordinates(req.Destination.Longitude, req.Destination.Latitude) {
		return Route{}, apperrors.Wrap("invalid_input", "origin and destination must carry valid coordinates", nil)
	}
	mode := outfit.TransportMode(req.Mode)
	if mode == "" {
		mode = outfit.ModeDriving
	}
	if !outfit.KnownMode(mode) {
		return Route{}, apperrors.Wrap("invalid_input", fmt.Sprintf("unrecognized transport mode %q", req.Mode), nil)
	}

	route := Route{
		ID:          s.newID(),
		DeviceID:    strings.TrimSpace(req.DeviceID),
		Name:        strings.TrimSpace(req.Name),
		Origin:      req.Origin,
		Destination: req.Destination,
		Mode:        mode,
		CreatedAt:   util.NowUTC(),
	}
	if err := s.repo.Insert(ctx, route); err != nil {
		return Route{}, apperrors.Wrap("storage_error", "failed to save favorite route", err)
	}
	s.logger.Info("favorite route saved", "id", route.ID, "deviceId", route.DeviceID)
	return route, nil
}

func (s *service) List(ctx context.Context, deviceID string) ([]Route, error) {
	if strings.TrimSpace(deviceID) == "" {
		return nil, apperrors.Wrap("invalid_input", "deviceId cannot be empty", nil)
	}
	routes, err := s.repo.ListByDevice(ctx, strings.TrimSpace(deviceID))
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to list favorite routes", err)
	}
	return routes, nil
}

func (s *service) Delete(ctx context.Context, deviceID, id string) error {
	if strings.TrimSpace(deviceID) == "" || strings.TrimSpace(id) == "" {
		return apperrors.Wrap("invalid_input", "deviceId and route id are required", nil)
	}
	deleted, err := s.repo.Delete(ctx, strings.TrimSpace(deviceID), strings.TrimSpace(id))
	if err != nil {
		return apperrors.Wrap("storage_error", "failed to delete favorite route", err)
	}
	if !deleted {
		return apperrors.Wrap("not_found", "favorite route not found", nil)
	}
	s.logger.Info("favorite route deleted", "id", id, "deviceId", deviceID)
	return nil
}
