package geo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luwei/smart-travel/internal/domain/outfit"
	apperrors "github.com/luwei/smart-travel/pkg/errors"
)

func TestGeocodeRejectsEmptyAddress(t *testing.T) {
	svc := NewService(&stubMapClient{}, newTestLogger())

	_, err := svc.Geocode(context.Background(), "   ", "")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestGeocodePassesThrough(t *testing.T) {
	client := &stubMapClient{
		geocodeResult: Location{Longitude: 116.4, Latitude: 39.9, Address: "天安门", City: "北京"},
	}
	svc := NewService(client, newTestLogger())

	loc, err := svc.Geocode(context.Background(), "天安门", "北京")
	require.NoError(t, err)
	require.Equal(t, client.geocodeResult, loc)
}

func TestReverseGeocodeValidatesCoordinates(t *testing.T) {
	svc := NewService(&stubMapClient{}, newTestLogger())

	_, err := svc.ReverseGeocode(context.Background(), Location{Longitude: 181, Latitude: 0})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	_, err = svc.ReverseGeocode(context.Background(), Location{Longitude: 0, Latitude: 91})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestSearchPlacesRejectsEmptyKeywords(t *testing.T) {
	svc := NewService(&stubMapClient{}, newTestLogger())

	_, err := svc.SearchPlaces(context.Background(), "", "北京")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestPlanRouteDefaultsToDriving(t *testing.T) {
	client := &stubMapClient{
		route: Route{TotalDistance: 1200, TotalDuration: 300},
	}
	svc := NewService(client, newTestLogger())

	_, err := svc.PlanRoute(context.Background(),
		Location{Longitude: 116.4, Latitude: 39.9},
		Location{Longitude: 116.5, Latitude: 39.8}, "")
	require.NoError(t, err)
	require.Equal(t, outfit.ModeDriving, client.lastMode)
}

func TestPlanRouteRejectsUnknownMode(t *testing.T) {
	svc := NewService(&stubMapClient{}, newTestLogger())

	_, err := svc.PlanRoute(context.Background(),
		Location{Longitude: 116.4, Latitude: 39.9},
		Location{Longitude: 116.5, Latitude: 39.8}, "rocket")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestClientFailuresCarryProviderErrorCode(t *testing.T) {
	client := &stubMapClient{err: errors.New("map api error: INVALID_USER_KEY")}
	svc := NewService(client, newTestLogger())
	ctx := context.Background()
	origin := Location{Longitude: 116.4, Latitude: 39.9}
	destination := Location{Longitude: 116.5, Latitude: 39.8}

	_, err := svc.Geocode(ctx, "天安门", "")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "map_api_error"))

	_, err = svc.ReverseGeocode(ctx, origin)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "map_api_error"))

	_, err = svc.SearchPlaces(ctx, "咖啡", "北京")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "map_api_error"))

	_, err = svc.PlanRoute(ctx, origin, destination, outfit.ModeDriving)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "map_api_error"))
}

func TestValidCoordinates(t *testing.T) {
	require.True(t, ValidCoordinates(0, 0))
	require.True(t, ValidCoordinates(-180, -90))
	require.True(t, ValidCoordinates(180, 90))
	require.False(t, ValidCoordinates(-180.1, 0))
	require.False(t, ValidCoordinates(0, 90.1))
}

type stubMapClient struct {
	geocodeResult Location
	route         Route
	lastMode      outfit.TransportMode
	err           error
}

func (s *stubMapClient) Geocode(_ context.Context, address, city string) (Location, error) {
	return s.geocodeResult, s.err
}

func (s *stubMapClient) ReverseGeocode(_ context.Context, loc Location) (Location, error) {
	return loc, s.err
}

func (s *stubMapClient) SearchPlaces(_ context.Context, keywords, city string) ([]Location, error) {
	return nil, s.err
}

func (s *stubMapClient) PlanRoute(_ context.Context, origin, destination Location, mode outfit.TransportMode) (Route, error) {
	s.lastMode = mode
	return s.route, s.err
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
