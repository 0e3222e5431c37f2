package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/luwei/smart-travel/internal/domain/favorites"
	"github.com/luwei/smart-travel/internal/domain/geo"
	"github.com/luwei/smart-travel/internal/domain/outfit"
	"github.com/luwei/smart-travel/internal/domain/travel"
	"github.com/luwei/smart-travel/internal/domain/weather"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	weatherSvc   weather.Service
	outfitSvc    outfit.Service
	geoSvc       geo.Service
	travelSvc    travel.Service
	favoritesSvc favorites.Service
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(weatherSvc weather.Service, outfitSvc outfit.Service, geoSvc geo.Service, travelSvc travel.Service, favoritesSvc favorites.Service, logger *slog.Logger) *Handler {
	return &Handler{
		weatherSvc:   weatherSvc,
		outfitSvc:    outfitSvc,
		geoSvc:       geoSvc,
		travelSvc:    travelSvc,
		favoritesSvc: favoritesSvc,
		logger:       logger.With("component", "http.handler"),
	}
}

// CurrentWeather returns the live observation for a coordinate pair.
func (h *Handler) CurrentWeather(c *gin.Context) {
	lng, lat, err := coordinateQuery(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	obs, svcErr := h.weatherSvc.Current(c.Request.Context(), lng, lat)
	if svcErr != nil {
		abortWithError(c, fromDomainError(svcErr))
		return
	}
	c.JSON(http.StatusOK, obs)
}

// WeatherForecast returns the daily forecast for a coordinate pair.
func (h *Handler) WeatherForecast(c *gin.Context) {
	lng, lat, err := coordinateQuery(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, parseErr := strconv.Atoi(raw)
		if parseErr != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "days must be an integer", parseErr))
			return
		}
		days = parsed
	}

	forecasts, svcErr := h.weatherSvc.Forecast(c.Request.Context(), lng, lat, days)
	if svcErr != nil {
		abortWithError(c, fromDomainError(svcErr))
		return
	}
	c.JSON(http.StatusOK, gin.H{"forecasts": forecasts})
}

// RecommendOutfit turns weather and trip context into clothing suggestions.
func (h *Handler) RecommendOutfit(c *gin.Context) {
	var req outfit.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.outfitSvc.Recommend(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PlanRoute plans a route, optionally annotated with weather impact.
func (h *Handler) PlanRoute(c *gin.Context) {
	var req travel.RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	route, err := h.travelSvc.PlanRoute(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, route)
}

// Geocode resolves an address to coordinates, or coordinates back to an
// address when a location query parameter is supplied instead.
func (h *Handler) Geocode(c *gin.Context) {
	ctx := c.Request.Context()

	if raw := c.Query("location"); raw != "" {
		loc, err := parseLocationQuery(raw)
		if err != nil {
			abortWithError(c, err)
			return
		}
		resolved, svcErr := h.geoSvc.ReverseGeocode(ctx, loc)
		if svcErr != nil {
			abortWithError(c, fromDomainError(svcErr))
			return
		}
		c.JSON(http.StatusOK, resolved)
		return
	}

	resolved, err := h.geoSvc.Geocode(ctx, c.Query("address"), c.Query("city"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resolved)
}

// SearchPlaces runs a POI keyword search.
func (h *Handler) SearchPlaces(c *gin.Context) {
	places, err := h.geoSvc.SearchPlaces(c.Request.Context(), c.Query("keywords"), c.Query("city"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"places": places})
}

// CreateTravelPlan builds the combined route, weather and outfit plan.
func (h *Handler) CreateTravelPlan(c *gin.Context) {
	var req travel.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	plan, err := h.travelSvc.CreatePlan(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, plan)
}

// SaveFavoriteRoute stores a route under the caller's device ID.
func (h *Handler) SaveFavoriteRoute(c *gin.Context) {
	var req favorites.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	route, err := h.favoritesSvc.Save(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusCreated, route)
}

// ListFavoriteRoutes returns the caller's saved routes, newest first.
func (h *Handler) ListFavoriteRoutes(c *gin.Context) {
	routes, err := h.favoritesSvc.List(c.Request.Context(), c.Query("deviceId"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	if routes == nil {
		routes = []favorites.Route{}
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

// DeleteFavoriteRoute removes a saved route.
func (h *Handler) DeleteFavoriteRoute(c *gin.Context) {
	err := h.favoritesSvc.Delete(c.Request.Context(), c.Query("deviceId"), c.Param("id"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func coordinateQuery(c *gin.Context) (float64, float64, *HTTPError) {
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	if lngErr != nil || latErr != nil {
		return 0, 0, NewHTTPError(http.StatusBadRequest, "invalid_request", "lng and lat query parameters are required numbers", nil)
	}
	return lng, lat, nil
}

func parseLocationQuery(raw string) (geo.Location, *HTTPError) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return geo.Location{}, NewHTTPError(http.StatusBadRequest, "invalid_request", "location must be formatted as lng,lat", nil)
	}
	lng, lngErr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if lngErr != nil || latErr != nil {
		return geo.Location{}, NewHTTPError(http.StatusBadRequest, "invalid_request", "location must be formatted as lng,lat", nil)
	}
	return geo.Location{Longitude: lng, Latitude: lat}, nil
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
