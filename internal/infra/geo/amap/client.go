package amap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/luwei/smart-travel/internal/domain/geo"
	"github.com/luwei/smart-travel/internal/domain/outfit"
)

const defaultBaseURL = "https://restapi.amap.com"

// Client talks to the AMap (Gaode) REST API. The vendor returns deeply
// nested, loosely typed JSON, so responses are extracted with gjson instead
// of mirroring every shape as structs.
type Client struct {
	baseURL     string
	apiKey      string
	securityKey string
	httpClient  *http.Client
}

// NewClient builds an API client.
func NewClient(baseURL, apiKey, securityKey string, timeout time.Duration) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:     strings.TrimRight(base, "/"),
		apiKey:      apiKey,
		securityKey: securityKey,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// Geocode resolves an address to coordinates.
func (c *Client) Geocode(ctx context.Context, address, city string) (geo.Location, error) {
	params := c.baseParams()
	params.Set("address", address)
	if city != "" {
		params.Set("city", city)
	}
	body, err := c.get(ctx, "/v3/geocode/geo", params)
	if err != nil {
		return geo.Location{}, err
	}
	if err := checkStatus(body); err != nil {
		return geo.Location{}, err
	}

	first := gjson.GetBytes(body, "geocodes.0")
	if !first.Exists() {
		return geo.Location{}, fmt.Errorf("no geocode result for %q", address)
	}
	lng, lat, err := splitLocation(first.Get("location").String())
	if err != nil {
		return geo.Location{}, err
	}
	return geo.Location{
		Longitude: lng,
		Latitude:  lat,
		Address:   firstNonEmpty(first.Get("formatted_address").String(), address),
		City:      firstNonEmpty(first.Get("city").String(), city),
	}, nil
}

// ReverseGeocode resolves coordinates to an address.
func (c *Client) ReverseGeocode(ctx context.Context, loc geo.Location) (geo.Location, error) {
	params := c.baseParams()
	params.Set("location", formatLocation(loc))
	params.Set("radius", "1000")
	params.Set("extensions", "base")
	body, err := c.get(ctx, "/v3/geocode/regeo", params)
	if err != nil {
		return geo.Location{}, err
	}
	if err := checkStatus(body); err != nil {
		return geo.Location{}, err
	}

	regeo := gjson.GetBytes(body, "regeocode")
	return geo.Location{
		Longitude: loc.Longitude,
		Latitude:  loc.Latitude,
		Address:   regeo.Get("formatted_address").String(),
		City:      regeo.Get("addressComponent.city").String(),
	}, nil
}

// SearchPlaces runs a POI keyword search.
func (c *Client) SearchPlaces(ctx context.Context, keywords, city string) ([]geo.Location, error) {
	params := c.baseParams()
	params.Set("keywords", keywords)
	params.Set("extensions", "base")
	if city != "" {
		params.Set("city", city)
	}
	body, err := c.get(ctx, "/v3/place/text", params)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(body); err != nil {
		return nil, err
	}

	var locations []geo.Location
	for _, poi := range gjson.GetBytes(body, "pois").Array() {
		lng, lat, err := splitLocation(poi.Get("location").String())
		if err != nil {
			continue
		}
		locations = append(locations, geo.Location{
			Longitude: lng,
			Latitude:  lat,
			Address:   strings.TrimSpace(poi.Get("name").String() + " " + poi.Get("address").String()),
			City:      firstNonEmpty(poi.Get("cityname").String(), city),
		})
	}
	return locations, nil
}

// PlanRoute plans a route for the given transport mode.
func (c *Client) PlanRoute(ctx context.Context, origin, destination geo.Location, mode outfit.TransportMode) (geo.Route, error) {
	params := c.baseParams()
	params.Set("origin", formatLocation(origin))
	params.Set("destination", formatLocation(destination))

	var path string
	switch mode {
	case outfit.ModeDriving:
		path = "/v3/direction/driving"
		params.Set("extensions", "all")
	case outfit.ModeWalking:
		path = "/v3/direction/walking"
	case outfit.ModeCycling:
		path = "/v4/direction/bicycling"
	case outfit.ModeTransit:
		path = "/v3/direction/transit/integrated"
		params.Set("city", firstNonEmpty(origin.City, destination.City, "北京"))
	default:
		return geo.Route{}, fmt.Errorf("unsupported transport mode %q", mode)
	}

	body, err := c.get(ctx, path, params)
	if err != nil {
		return geo.Route{}, err
	}

	route := geo.Route{Origin: origin, Destination: destination, Mode: mode}
	switch mode {
	case outfit.ModeCycling:
		// The bicycling endpoint is v4 with its own envelope.
		if code := gjson.GetBytes(body, "errcode").Int(); code != 0 {
			return geo.Route{}, fmt.Errorf("route planning failed: errcode=%d %s", code, gjson.GetBytes(body, "errmsg").String())
		}
		fillFromPath(&route, gjson.GetBytes(body, "data.paths.0"))
	case outfit.ModeTransit:
		if err := checkStatus(body); err != nil {
			return geo.Route{}, err
		}
		transit := gjson.GetBytes(body, "route.transits.0")
		if !transit.Exists() {
			return geo.Route{}, fmt.Errorf("no transit route found")
		}
		route.TotalDistance = transit.Get("distance").Float()
		route.TotalDuration = int(transit.Get("duration").Int())
	default:
		if err := checkStatus(body); err != nil {
			return geo.Route{}, err
		}
		fillFromPath(&route, gjson.GetBytes(body, "route.paths.0"))
	}

	if route.TotalDuration == 0 && route.TotalDistance == 0 {
		return geo.Route{}, fmt.Errorf("no route found between %s and %s", formatLocation(origin), formatLocation(destination))
	}
	return route, nil
}

func fillFromPath(route *geo.Route, path gjson.Result) {
	route.TotalDistance = path.Get("distance").Float()
	route.TotalDuration = int(path.Get("duration").Int())

	var polylines []string
	for _, step := range path.Get("steps").Array() {
		route.Steps = append(route.Steps, geo.RouteStep{
			Instruction: step.Get("instruction").String(),
			Distance:    step.Get("distance").Float(),
			Duration:    int(step.Get("duration").Int()),
			Polyline:    step.Get("polyline").String(),
		})
		if pl := step.Get("polyline").String(); pl != "" {
			polylines = append(polylines, pl)
		}
	}
	route.Polyline = strings.Join(polylines, ";")
}

func (c *Client) baseParams() url.Values {
	params := url.Values{}
	params.Set("key", c.apiKey)
	if c.securityKey != "" {
		params.Set("jscode", c.securityKey)
	}
	return params
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	endpoint := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build map request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("map request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("map request error: status=%d body=%s", resp.StatusCode, string(payload))
	}
	return io.ReadAll(resp.Body)
}

func checkStatus(body []byte) error {
	if gjson.GetBytes(body, "status").String() != "1" {
		return fmt.Errorf("map api error: %s", gjson.GetBytes(body, "info").String())
	}
	return nil
}

func splitLocation(value string) (float64, float64, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed location %q", value)
	}
	lng, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed longitude %q", parts[0])
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed latitude %q", parts[1])
	}
	return lng, lat, nil
}

func formatLocation(loc geo.Location) string {
	return fmt.Sprintf("%.6f,%.6f", loc.Longitude, loc.Latitude)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

var _ geo.MapClient = (*Client)(nil)
