//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/luwei/smart-travel/internal/bootstrap"
	"github.com/luwei/smart-travel/internal/domain/favorites"
	"github.com/luwei/smart-travel/internal/domain/geo"
	"github.com/luwei/smart-travel/internal/domain/outfit"
	"github.com/luwei/smart-travel/internal/domain/travel"
	"github.com/luwei/smart-travel/internal/domain/weather"
	"github.com/luwei/smart-travel/internal/infra/config"
	"github.com/luwei/smart-travel/internal/infra/geo/amap"
	"github.com/luwei/smart-travel/internal/infra/weather/qweather"
	httpiface "github.com/luwei/smart-travel/internal/interface/http"
	"github.com/luwei/smart-travel/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideWeatherConfig,
		provideQWeatherClient,
		provideAMapClient,
		provideWeatherStore,
		provideWeatherArchive,
		provideFavoritesRepository,
		weather.NewService,
		geo.NewService,
		outfit.NewService,
		travel.NewService,
		favorites.NewService,
		wire.Bind(new(weather.Provider), new(*qweather.Client)),
		wire.Bind(new(geo.MapClient), new(*amap.Client)),
		wire.Bind(new(outfit.WeatherSource), new(weather.Service)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
