package outfit

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/luwei/smart-travel/pkg/errors"
)

func TestServiceRecommendWithInlineWeather(t *testing.T) {
	source := &stubWeatherSource{}
	svc := NewService(source, newTestLogger())

	resp, err := svc.Recommend(context.Background(), Request{
		Weather: &WeatherSnapshot{Temperature: 5, Humidity: 70, Condition: ConditionRain, WindSpeed: 20},
		Trip:    TripRequest{Mode: "walking", DurationMinutes: 30},
	})
	require.NoError(t, err)
	require.Equal(t, 0, source.calls, "inline weather must not hit the provider")
	require.NotEmpty(t, resp.Recommendations)
	require.Equal(t, "waterproof rain jacket", resp.Recommendations[0].Label)
	require.Contains(t, resp.Reason, "rain")
}

func TestServiceRecommendFetchesWeatherByLocation(t *testing.T) {
	source := &stubWeatherSource{
		snapshot: WeatherSnapshot{Temperature: 28, Humidity: 40, Condition: ConditionClear, WindSpeed: 5},
	}
	svc := NewService(source, newTestLogger())

	resp, err := svc.Recommend(context.Background(), Request{
		Location: &Coordinates{Longitude: 116.4, Latitude: 39.9},
	})
	require.NoError(t, err)
	require.Equal(t, 1, source.calls)
	require.Equal(t, 116.4, source.lastLng)
	require.Equal(t, 39.9, source.lastLat)
	require.Equal(t, source.snapshot, resp.Weather)
}

func TestServiceRecommendRequiresLocationOrWeather(t *testing.T) {
	svc := NewService(&stubWeatherSource{}, newTestLogger())

	_, err := svc.Recommend(context.Background(), Request{})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestServiceRecommendPropagatesSourceError(t *testing.T) {
	source := &stubWeatherSource{err: apperrors.Wrap("weather_api_error", "upstream down", nil)}
	svc := NewService(source, newTestLogger())

	_, err := svc.Recommend(context.Background(), Request{Location: &Coordinates{Longitude: 1, Latitude: 1}})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "weather_api_error"))
}

func TestServiceRecommendDefaultsModeToWalking(t *testing.T) {
	svc := NewService(&stubWeatherSource{}, newTestLogger())

	// 27°C and an hour outdoors triggers the hydration rule only when the
	// empty mode defaults to walking.
	resp, err := svc.Recommend(context.Background(), Request{
		Weather: &WeatherSnapshot{Temperature: 27, Humidity: 50, Condition: ConditionOvercast},
		Trip:    TripRequest{DurationMinutes: 60},
	})
	require.NoError(t, err)
	require.NotNil(t, categoryOrNil(resp.Recommendations, CategoryAccessory, "water bottle"))
}

func TestComfortScore(t *testing.T) {
	perfect := ComfortScore(WeatherSnapshot{Temperature: 21, Humidity: 50, WindSpeed: 5, Condition: ConditionClear})
	require.Equal(t, 10.0, perfect)

	miserable := ComfortScore(WeatherSnapshot{Temperature: -20, Humidity: 95, WindSpeed: 60, Condition: ConditionStorm})
	require.Less(t, miserable, 3.0)
	require.GreaterOrEqual(t, miserable, 0.0)

	rainy := ComfortScore(WeatherSnapshot{Temperature: 21, Humidity: 50, WindSpeed: 5, Condition: ConditionRain})
	require.Equal(t, 9.0, rainy)
}

func TestStyleTipsNeverEmpty(t *testing.T) {
	tips := styleTips(WeatherSnapshot{Temperature: 21, Humidity: 50, WindSpeed: 5, Condition: ConditionClear})
	require.NotEmpty(t, tips)
}

type stubWeatherSource struct {
	snapshot WeatherSnapshot
	err      error
	calls    int
	lastLng  float64
	lastLat  float64
}

func (s *stubWeatherSource) Snapshot(_ context.Context, lng, lat float64) (WeatherSnapshot, error) {
	s.calls++
	s.lastLng = lng
	s.lastLat = lat
	if s.err != nil {
		return WeatherSnapshot{}, s.err
	}
	return s.snapshot, nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
