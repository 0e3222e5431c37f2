package amap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/luwei/smart-travel/internal/domain/geo"
	"github.com/luwei/smart-travel/internal/domain/outfit"
)

func TestClientGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v3/geocode/geo", r.URL.Path)
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.Equal(t, "天安门", r.URL.Query().Get("address"))
		w.Write([]byte(`{"status":"1","geocodes":[{"location":"116.397428,39.909187","formatted_address":"北京市东城区天安门","city":"北京市"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "", time.Second)
	loc, err := client.Geocode(context.Background(), "天安门", "北京")
	require.NoError(t, err)
	require.InDelta(t, 116.397428, loc.Longitude, 1e-9)
	require.InDelta(t, 39.909187, loc.Latitude, 1e-9)
	require.Equal(t, "北京市东城区天安门", loc.Address)
	require.Equal(t, "北京市", loc.City)
}

func TestClientGeocodeNoResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"1","geocodes":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "", time.Second)
	_, err := client.Geocode(context.Background(), "nowhere", "")
	require.Error(t, err)
}

func TestClientStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"0","info":"INVALID_USER_KEY"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-key", "", time.Second)
	_, err := client.Geocode(context.Background(), "天安门", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "INVALID_USER_KEY")
}

func TestClientReverseGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v3/geocode/regeo", r.URL.Path)
		require.Equal(t, "116.397400,39.909200", r.URL.Query().Get("location"))
		w.Write([]byte(`{"status":"1","regeocode":{"formatted_address":"北京市东城区","addressComponent":{"city":"北京市"}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "", time.Second)
	loc, err := client.ReverseGeocode(context.Background(), geo.Location{Longitude: 116.3974, Latitude: 39.9092})
	require.NoError(t, err)
	require.Equal(t, "北京市东城区", loc.Address)
	require.Equal(t, "北京市", loc.City)
}

func TestClientSearchPlaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v3/place/text", r.URL.Path)
		w.Write([]byte(`{"status":"1","pois":[
			{"name":"咖啡店","address":"某街1号","location":"116.40,39.90","cityname":"北京市"},
			{"name":"bad poi","address":"","location":"","cityname":""}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "", time.Second)
	places, err := client.SearchPlaces(context.Background(), "咖啡", "北京")
	require.NoError(t, err)
	require.Len(t, places, 1, "malformed locations are skipped")
	require.Equal(t, "咖啡店 某街1号", places[0].Address)
}

func TestClientPlanRouteDriving(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v3/direction/driving", r.URL.Path)
		w.Write([]byte(`{"status":"1","route":{"paths":[{"distance":"5000","duration":"900","steps":[
			{"instruction":"向北行驶","distance":"2000","duration":"400","polyline":"116.40,39.90;116.41,39.91"},
			{"instruction":"右转","distance":"3000","duration":"500","polyline":"116.41,39.91;116.42,39.92"}
		]}]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "", time.Second)
	route, err := client.PlanRoute(context.Background(),
		geo.Location{Longitude: 116.40, Latitude: 39.90},
		geo.Location{Longitude: 116.42, Latitude: 39.92},
		outfit.ModeDriving)
	require.NoError(t, err)
	require.Equal(t, 5000.0, route.TotalDistance)
	require.Equal(t, 900, route.TotalDuration)
	require.Len(t, route.Steps, 2)
	require.Equal(t, "向北行驶", route.Steps[0].Instruction)
	require.NotEmpty(t, route.Polyline)
}

func TestClientPlanRouteCyclingEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v4/direction/bicycling", r.URL.Path)
		w.Write([]byte(`{"errcode":0,"errmsg":"OK","data":{"paths":[{"distance":3200,"duration":800,"steps":[]}]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "", time.Second)
	route, err := client.PlanRoute(context.Background(),
		geo.Location{Longitude: 116.40, Latitude: 39.90},
		geo.Location{Longitude: 116.42, Latitude: 39.92},
		outfit.ModeCycling)
	require.NoError(t, err)
	require.Equal(t, 3200.0, route.TotalDistance)
	require.Equal(t, 800, route.TotalDuration)
}

func TestClientPlanRouteTransit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v3/direction/transit/integrated", r.URL.Path)
		require.NotEmpty(t, r.URL.Query().Get("city"))
		w.Write([]byte(`{"status":"1","route":{"transits":[{"distance":"8000","duration":"2400"}]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "", time.Second)
	route, err := client.PlanRoute(context.Background(),
		geo.Location{Longitude: 116.40, Latitude: 39.90, City: "北京"},
		geo.Location{Longitude: 116.42, Latitude: 39.92},
		outfit.ModeTransit)
	require.NoError(t, err)
	require.Equal(t, 8000.0, route.TotalDistance)
	require.Equal(t, 2400, route.TotalDuration)
}

func TestClientPlanRouteNoRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"1","route":{"paths":[]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "", time.Second)
	_, err := client.PlanRoute(context.Background(),
		geo.Location{Longitude: 116.40, Latitude: 39.90},
		geo.Location{Longitude: 116.42, Latitude: 39.92},
		outfit.ModeWalking)
	require.Error(t, err)
}

func TestSplitLocation(t *testing.T) {
	lng, lat, err := splitLocation("116.39,39.91")
	require.NoError(t, err)
	require.Equal(t, 116.39, lng)
	require.Equal(t, 39.91, lat)

	_, _, err = splitLocation("garbage")
	require.Error(t, err)
}
