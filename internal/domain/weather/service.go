package weather

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/luwei/smart-travel/internal/domain/geo"
	"github.com/luwei/smart-travel/internal/domain/outfit"
	apperrors "github.com/luwei/smart-travel/pkg/errors"
)

// Provider is the upstream weather API boundary.
type Provider interface {
	Current(ctx context.Context, lng, lat float64) (Observation, error)
	Forecast(ctx context.Context, lng, lat float64, days int) ([]Observation, error)
}

// Store caches normalized observations with a TTL.
type Store interface {
	GetObservation(ctx context.Context, key string) (Observation, bool, error)
	SaveObservation(ctx context.Context, key string, obs Observation, ttl time.Duration) error
}

// Archive receives raw provider payloads for later replay. Optional.
type Archive interface {
	Store(ctx context.Context, key string, payload []byte) error
}

// Service serves normalized weather readings.
type Service interface {
	Current(ctx context.Context, lng, lat float64) (Observation, error)
	Forecast(ctx context.Context, lng, lat float64, days int) ([]Observation, error)
	// Snapshot satisfies outfit.WeatherSource.
	Snapshot(ctx context.Context, lng, lat float64) (outfit.WeatherSnapshot, error)
}

// Config tunes caching and forecast limits.
type Config struct {
	CacheTTL        time.Duration
	MaxForecastDays int
}

type service struct {
	cfg      Config
	provider Provider
	store    Store
	archive  Archive
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires the weather domain. archive may be nil.
func NewService(cfg Config, provider Provider, store Store, archive Archive, logger *slog.Logger) Service {
	if cfg.MaxForecastDays <= 0 {
		cfg.MaxForecastDays = 7
	}
	return &service{
		cfg:      cfg,
		provider: provider,
		store:    store,
		archive:  archive,
		logger:   logger.With("component", "weather.service"),
		now:      time.Now,
	}
}

func (s *service) Current(ctx context.Context, lng, lat float64) (Observation, error) {
	if !geo.ValidCoordinates(lng, lat) {
		return Observation{}, apperrors.Wrap("invalid_input",
			fmt.Sprintf("coordinates (%.4f, %.4f) outside valid longitude/latitude ranges", lng, lat), nil)
	}

	key := cacheKey("current", lng, lat)
	if cached, ok, err := s.store.GetObservation(ctx, key); err == nil && ok {
		return cached, nil
	} else if err != nil {
		s.logger.Warn("weather cache read failed", "key", key, "error", err)
	}

	obs, err := s.provider.Current(ctx, lng, lat)
	if err != nil {
		return Observation{}, apperrors.Wrap("weather_api_error", "failed to fetch current weather", err)
	}
	s.archiveRaw(ctx, key, obs.Raw)

	if err := s.store.SaveObservation(ctx, key, obs, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("weather cache write failed", "key", key, "error", err)
	}
	s.logger.Info("current weather fetched", "lng", lng, "lat", lat, "condition", obs.Condition, "temp", obs.Temperature)
	return obs, nil
}

func (s *service) Forecast(ctx context.Context, lng, lat float64, days int) ([]Observation, error) {
	if !geo.ValidCoordinates(lng, lat) {
		return nil, apperrors.Wrap("invalid_input",
			fmt.Sprintf("coordinates (%.4f, %.4f) outside valid longitude/latitude ranges", lng, lat), nil)
	}
	if days <= 0 {
		days = 3
	}
	if days > s.cfg.MaxForecastDays {
		return nil, apperrors.Wrap("invalid_input",
			fmt.Sprintf("forecast window of %d days exceeds the %d day limit", days, s.cfg.MaxForecastDays), nil)
	}

	forecasts, err := s.provider.Forecast(ctx, lng, lat, days)
	if err != nil {
		return nil, apperrors.Wrap("weather_api_error", "failed to fetch weather forecast", err)
	}
	if len(forecasts) == 0 {
		return nil, apperrors.Wrap("weather_api_error", "provider returned no forecast entries", nil)
	}
	return forecasts, nil
}

func (s *service) Snapshot(ctx context.Context, lng, lat float64) (outfit.WeatherSnapshot, error) {
	obs, err := s.Current(ctx, lng, lat)
	if err != nil {
		return outfit.WeatherSnapshot{}, err
	}
	return obs.Snapshot(), nil
}

// archiveRaw is best effort; a broken archive never fails a request.
func (s *service) archiveRaw(ctx context.Context, key string, payload []byte) {
	if s.archive == nil || len(payload) == 0 {
		return
	}
	archiveKey := fmt.Sprintf("%s/%s.json", s.now().UTC().Format("2006/01/02"), key)
	if err := s.archive.Store(ctx, archiveKey, payload); err != nil {
		s.logger.Warn("payload archive failed", "key", archiveKey, "error", err)
	}
}

func cacheKey(kind string, lng, lat float64) string {
	return fmt.Sprintf("wx:%s:%.4f:%.4f", kind, lng, lat)
}
