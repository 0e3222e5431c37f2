package qweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/luwei/smart-travel/internal/domain/weather"
)

const defaultBaseURL = "https://devapi.qweather.com"

// Client fetches observations from the QWeather (HeFeng) API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(base, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Current retrieves the live observation for a coordinate pair.
func (c *Client) Current(ctx context.Context, lng, lat float64) (weather.Observation, error) {
	endpoint := fmt.Sprintf("%s/v7/weather/now?location=%.4f,%.4f&key=%s", c.baseURL, lng, lat, c.apiKey)
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return weather.Observation{}, err
	}

	var raw nowResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return weather.Observation{}, fmt.Errorf("decode weather response: %w", err)
	}
	if raw.Code != "200" {
		return weather.Observation{}, fmt.Errorf("weather api error: code=%s", raw.Code)
	}

	obs := normalizeReading(raw.Now)
	obs.Raw = body
	return obs, nil
}

// Forecast retrieves the daily forecast. QWeather supports fixed windows;
// requested days are rounded up to the nearest supported endpoint.
func (c *Client) Forecast(ctx context.Context, lng, lat float64, days int) ([]weather.Observation, error) {
	window := forecastWindow(days)
	endpoint := fmt.Sprintf("%s/v7/weather/%dd?location=%.4f,%.4f&key=%s", c.baseURL, window, lng, lat, c.apiKey)
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var raw forecastResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode forecast response: %w", err)
	}
	if raw.Code != "200" {
		return nil, fmt.Errorf("forecast api error: code=%s", raw.Code)
	}

	forecasts := make([]weather.Observation, 0, len(raw.Daily))
	for _, day := range raw.Daily {
		obs := normalizeDaily(day)
		forecasts = append(forecasts, obs)
		if len(forecasts) == days {
			break
		}
	}
	return forecasts, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("weather request error: status=%d body=%s", resp.StatusCode, string(payload))
	}
	return io.ReadAll(resp.Body)
}

// QWeather encodes all numeric fields as strings.
type nowResponse struct {
	Code string     `json:"code"`
	Now  nowReading `json:"now"`
}

type nowReading struct {
	ObsTime   string `json:"obsTime"`
	Temp      string `json:"temp"`
	FeelsLike string `json:"feelsLike"`
	Humidity  string `json:"humidity"`
	WindSpeed string `json:"windSpeed"`
	WindDir   string `json:"windDir"`
	Text      string `json:"text"`
	Vis       string `json:"vis"`
	Pressure  string `json:"pressure"`
}

type forecastResponse struct {
	Code  string         `json:"code"`
	Daily []dailyReading `json:"daily"`
}

type dailyReading struct {
	FxDate    string `json:"fxDate"`
	TempMax   string `json:"tempMax"`
	TempMin   string `json:"tempMin"`
	Humidity  string `json:"humidity"`
	WindSpeed string `json:"windSpeedDay"`
	WindDir   string `json:"windDirDay"`
	TextDay   string `json:"textDay"`
	Vis       string `json:"vis"`
	Pressure  string `json:"pressure"`
}

func normalizeReading(r nowReading) weather.Observation {
	temp := parseFloat(r.Temp, 0)
	return weather.Observation{
		Temperature:   temp,
		FeelsLike:     parseFloat(r.FeelsLike, temp),
		Humidity:      parseFloat(r.Humidity, 0),
		WindSpeed:     parseFloat(r.WindSpeed, 0),
		WindDirection: r.WindDir,
		Condition:     weather.MapCondition(r.Text),
		Description:   r.Text,
		Visibility:    parseFloat(r.Vis, 10),
		Pressure:      parseFloat(r.Pressure, 1013),
		ObservedAt:    parseTime(r.ObsTime),
	}
}

func normalizeDaily(d dailyReading) weather.Observation {
	temp := parseFloat(d.TempMax, 0)
	return weather.Observation{
		Temperature:   temp,
		FeelsLike:     temp,
		Humidity:      parseFloat(d.Humidity, 0),
		WindSpeed:     parseFloat(d.WindSpeed, 0),
		WindDirection: d.WindDir,
		Condition:     weather.MapCondition(d.TextDay),
		Description:   d.TextDay,
		Visibility:    parseFloat(d.Vis, 10),
		Pressure:      parseFloat(d.Pressure, 1013),
		ObservedAt:    parseDate(d.FxDate),
	}
}

func forecastWindow(days int) int {
	switch {
	case days <= 3:
		return 3
	case days <= 7:
		return 7
	default:
		return 10
	}
}

func parseFloat(value string, fallback float64) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseTime(value string) time.Time {
	if strings.TrimSpace(value) == "" {
		return time.Time{}
	}
	// obsTime looks like 2024-07-01T18:00+08:00.
	for _, layout := range []string{"2006-01-02T15:04-07:00", time.RFC3339} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func parseDate(value string) time.Time {
	ts, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}
	}
	return ts
}

var _ weather.Provider = (*Client)(nil)
