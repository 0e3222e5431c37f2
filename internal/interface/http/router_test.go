package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/luwei/smart-travel/internal/domain/favorites"
	"github.com/luwei/smart-travel/internal/domain/geo"
	"github.com/luwei/smart-travel/internal/domain/outfit"
	"github.com/luwei/smart-travel/internal/domain/travel"
	"github.com/luwei/smart-travel/internal/domain/weather"
	"github.com/luwei/smart-travel/internal/infra/config"
	apperrors "github.com/luwei/smart-travel/pkg/errors"
)

func TestRouter_CurrentWeather(t *testing.T) {
	stubs := newStubServices()
	stubs.weather.current = weather.Observation{Temperature: 12, Condition: outfit.ConditionCloudy}

	rec := performRequest(http.MethodGet, "/api/v1/weather/current?lng=116.4&lat=39.9", "", newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusOK, rec.Code)

	var got weather.Observation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, 12.0, got.Temperature)
}

func TestRouter_CurrentWeatherMissingCoordinates(t *testing.T) {
	rec := performRequest(http.MethodGet, "/api/v1/weather/current", "", newRouterUnderTest(t, newStubServices()))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
}

func TestRouter_CurrentWeatherUpstreamFailure(t *testing.T) {
	stubs := newStubServices()
	stubs.weather.currentErr = apperrors.Wrap("weather_api_error", "upstream down", nil)

	rec := performRequest(http.MethodGet, "/api/v1/weather/current?lng=116.4&lat=39.9", "", newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusBadGateway, rec.Code)

	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "weather_api_error", errBody["error"]["code"])
}

func TestRouter_RecommendOutfit(t *testing.T) {
	stubs := newStubServices()
	stubs.outfit.response = outfit.Response{
		Recommendations: []outfit.Recommendation{
			{Category: outfit.CategoryOuterwear, Label: "waterproof rain jacket", Confidence: 0.92},
		},
		ComfortScore: 6.5,
	}

	body := `{"weather":{"temperature":5,"humidity":70,"condition":"rain","windSpeed":20}}`
	rec := performRequest(http.MethodPost, "/api/v1/outfit/recommendations", body, newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusOK, rec.Code)

	var got outfit.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Recommendations, 1)
	require.Equal(t, "waterproof rain jacket", got.Recommendations[0].Label)
}

func TestRouter_RecommendOutfitInvalidJSON(t *testing.T) {
	rec := performRequest(http.MethodPost, "/api/v1/outfit/recommendations", `{"weather":"nope"}`, newRouterUnderTest(t, newStubServices()))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
}

func TestRouter_RecommendOutfitInvalidInput(t *testing.T) {
	stubs := newStubServices()
	stubs.outfit.err = apperrors.Wrap("invalid_input", "temperature 75.0°C outside plausible range [-60, 60]", nil)

	rec := performRequest(http.MethodPost, "/api/v1/outfit/recommendations", `{"weather":{"temperature":75}}`, newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "invalid_input", errBody["error"]["code"])
	require.Contains(t, errBody["error"]["message"], "plausible range")
}

func TestRouter_CreateTravelPlan(t *testing.T) {
	stubs := newStubServices()
	stubs.travel.plan = travel.Plan{PlanID: "plan-1", Mode: outfit.ModeDriving}

	body := `{"origin":"116.40,39.90","destination":"116.50,39.80","transportMode":"driving"}`
	rec := performRequest(http.MethodPost, "/api/v1/travel/plan", body, newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusOK, rec.Code)

	var got travel.Plan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "plan-1", got.PlanID)
}

func TestRouter_GeocodeByAddress(t *testing.T) {
	stubs := newStubServices()
	stubs.geo.geocodeResult = geo.Location{Longitude: 116.4, Latitude: 39.9, Address: "天安门"}

	rec := performRequest(http.MethodGet, "/api/v1/geo/geocode?address=%E5%A4%A9%E5%AE%89%E9%97%A8", "", newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusOK, rec.Code)

	var got geo.Location
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "天安门", got.Address)
}

func TestRouter_GeocodeReverse(t *testing.T) {
	stubs := newStubServices()

	rec := performRequest(http.MethodGet, "/api/v1/geo/geocode?location=116.4,39.9", "", newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, geo.Location{Longitude: 116.4, Latitude: 39.9}, stubs.geo.lastReverse)
}

func TestRouter_GeocodeUpstreamFailure(t *testing.T) {
	stubs := newStubServices()
	stubs.geo.geocodeErr = apperrors.Wrap("map_api_error", "failed to geocode address", nil)

	rec := performRequest(http.MethodGet, "/api/v1/geo/geocode?address=%E5%A4%A9%E5%AE%89%E9%97%A8", "", newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusBadGateway, rec.Code)

	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "map_api_error", errBody["error"]["code"])
}

func TestRouter_FavoritesLifecycle(t *testing.T) {
	stubs := newStubServices()
	stubs.favorites.saved = favorites.Route{ID: "route-1", DeviceID: "device-1", Name: "commute"}

	body := `{"deviceId":"device-1","name":"commute","origin":{"longitude":116.4,"latitude":39.9},"destination":{"longitude":116.5,"latitude":39.8}}`
	rec := performRequest(http.MethodPost, "/api/v1/favorites/routes", body, newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = performRequest(http.MethodGet, "/api/v1/favorites/routes?deviceId=device-1", "", newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusOK, rec.Code)

	stubs.favorites.deleteErr = apperrors.Wrap("not_found", "favorite route not found", nil)
	rec = performRequest(http.MethodDelete, "/api/v1/favorites/routes/missing?deviceId=device-1", "", newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_RetriesTransientFailures(t *testing.T) {
	stubs := newStubServices()
	stubs.weather.failures = 1
	stubs.weather.current = weather.Observation{Temperature: 12, Condition: outfit.ConditionCloudy}

	server := newRouterWithRetry(t, stubs)
	rec := performRequest(http.MethodGet, "/api/v1/weather/current?lng=116.4&lat=39.9", "", server)
	require.Equal(t, http.StatusOK, rec.Code, "one transient 502 should be retried away")
}

func performRequest(method, path, body string, server *http.Server) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func newRouterUnderTest(t *testing.T, stubs *stubServices) *http.Server {
	t.Helper()
	return NewRouter(testConfig(), newTestHandler(stubs))
}

func newRouterWithRetry(t *testing.T, stubs *stubServices) *http.Server {
	t.Helper()
	cfg := testConfig()
	cfg.HTTP.Retry = config.RetryConfig{Enabled: true, MaxAttempts: 3, BaseBackoff: time.Millisecond}
	return NewRouter(cfg, newTestHandler(stubs))
}

func newTestHandler(stubs *stubServices) *Handler {
	return NewHandler(stubs.weather, stubs.outfit, stubs.geo, stubs.travel, stubs.favorites, newTestLogger())
}

func testConfig() *config.Config {
	return &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

type stubServices struct {
	weather   *stubWeatherService
	outfit    *stubOutfitService
	geo       *stubGeoService
	travel    *stubTravelService
	favorites *stubFavoritesService
}

func newStubServices() *stubServices {
	return &stubServices{
		weather:   &stubWeatherService{},
		outfit:    &stubOutfitService{},
		geo:       &stubGeoService{},
		travel:    &stubTravelService{},
		favorites: &stubFavoritesService{},
	}
}

type stubWeatherService struct {
	current    weather.Observation
	currentErr error
	// failures counts how many calls fail transiently before succeeding.
	failures int
}

func (s *stubWeatherService) Current(_ context.Context, lng, lat float64) (weather.Observation, error) {
	if s.failures > 0 {
		s.failures--
		return weather.Observation{}, apperrors.Wrap("weather_api_error", "flaky upstream", nil)
	}
	if s.currentErr != nil {
		return weather.Observation{}, s.currentErr
	}
	return s.current, nil
}

func (s *stubWeatherService) Forecast(_ context.Context, lng, lat float64, days int) ([]weather.Observation, error) {
	return []weather.Observation{s.current}, nil
}

func (s *stubWeatherService) Snapshot(ctx context.Context, lng, lat float64) (outfit.WeatherSnapshot, error) {
	obs, err := s.Current(ctx, lng, lat)
	if err != nil {
		return outfit.WeatherSnapshot{}, err
	}
	return obs.Snapshot(), nil
}

type stubOutfitService struct {
	response outfit.Response
	err      error
}

func (s *stubOutfitService) Recommend(_ context.Context, req outfit.Request) (outfit.Response, error) {
	if s.err != nil {
		return outfit.Response{}, s.err
	}
	return s.response, nil
}

type stubGeoService struct {
	geocodeResult geo.Location
	geocodeErr    error
	lastReverse   geo.Location
}

func (s *stubGeoService) Geocode(_ context.Context, address, city string) (geo.Location, error) {
	if s.geocodeErr != nil {
		return geo.Location{}, s.geocodeErr
	}
	return s.geocodeResult, nil
}

func (s *stubGeoService) ReverseGeocode(_ context.Context, loc geo.Location) (geo.Location, error) {
	s.lastReverse = loc
	return loc, nil
}

func (s *stubGeoService) SearchPlaces(_ context.Context, keywords, city string) ([]geo.Location, error) {
	return nil, nil
}

func (s *stubGeoService) PlanRoute(_ context.Context, origin, destination geo.Location, mode outfit.TransportMode) (geo.Route, error) {
	return geo.Route{}, nil
}

type stubTravelService struct {
	plan travel.Plan
}

func (s *stubTravelService) CreatePlan(_ context.Context, req travel.PlanRequest) (travel.Plan, error) {
	return s.plan, nil
}

func (s *stubTravelService) PlanRoute(_ context.Context, req travel.RouteRequest) (geo.Route, error) {
	return geo.Route{}, nil
}

type stubFavoritesService struct {
	saved     favorites.Route
	deleteErr error
}

func (s *stubFavoritesService) Save(_ context.Context, req favorites.SaveRequest) (favorites.Route, error) {
	return s.saved, nil
}

func (s *stubFavoritesService) List(_ context.Context, deviceID string) ([]favorites.Route, error) {
	return []favorites.Route{s.saved}, nil
}

func (s *stubFavoritesService) Delete(_ context.Context, deviceID, id string) error {
	return s.deleteErr
}
