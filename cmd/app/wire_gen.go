// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package main

import (
	"github.com/luwei/smart-travel/internal/bootstrap"
	"github.com/luwei/smart-travel/internal/domain/favorites"
	"github.com/luwei/smart-travel/internal/domain/geo"
	"github.com/luwei/smart-travel/internal/domain/outfit"
	"github.com/luwei/smart-travel/internal/domain/travel"
	"github.com/luwei/smart-travel/internal/domain/weather"
	"github.com/luwei/smart-travel/internal/infra/config"
	"github.com/luwei/smart-travel/internal/interface/http"
	"github.com/luwei/smart-travel/pkg/logger"
)

// Injectors from wire.go:

func initializeApp() (*bootstrap.App, error) {
	configConfig, err := config.Load()
	if err != nil {
		return nil, err
	}
	slogLogger := logger.New()
	weatherConfig := provideWeatherConfig(configConfig)
	client := provideQWeatherClient(configConfig)
	store := provideWeatherStore(configConfig, slogLogger)
	archive := provideWeatherArchive(configConfig, slogLogger)
	service := weather.NewService(weatherConfig, client, store, archive, slogLogger)
	outfitService := outfit.NewService(service, slogLogger)
	amapClient := provideAMapClient(configConfig)
	geoService := geo.NewService(amapClient, slogLogger)
	travelService := travel.NewService(geoService, service, slogLogger)
	repository := provideFavoritesRepository(configConfig, slogLogger)
	favoritesService := favorites.NewService(repository, slogLogger)
	handler := http.NewHandler(service, outfitService, geoService, travelService, favoritesService, slogLogger)
	server := http.NewRouter(configConfig, handler)
	app := bootstrap.NewApp(configConfig, slogLogger, server)
	return app, nil
}
