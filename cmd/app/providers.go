package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/luwei/smart-travel/internal/domain/favorites"
	"github.com/luwei/smart-travel/internal/domain/weather"
	"github.com/luwei/smart-travel/internal/infra/archive"
	"github.com/luwei/smart-travel/internal/infra/config"
	"github.com/luwei/smart-travel/internal/infra/favoritesrepo"
	"github.com/luwei/smart-travel/internal/infra/geo/amap"
	"github.com/luwei/smart-travel/internal/infra/weather/qweather"
	"github.com/luwei/smart-travel/internal/infra/weatherstore"
)

func provideWeatherConfig(cfg *config.Config) weather.Config {
	return weather.Config{
		CacheTTL:        cfg.Weather.CacheTTL,
		MaxForecastDays: cfg.Weather.MaxForecastDays,
	}
}

func provideQWeatherClient(cfg *config.Config) *qweather.Client {
	return qweather.NewClient(cfg.QWeather.BaseURL, cfg.QWeather.APIKey, cfg.QWeather.Timeout)
}

func provideAMapClient(cfg *config.Config) *amap.Client {
	return amap.NewClient(cfg.AMap.BaseURL, cfg.AMap.APIKey, cfg.AMap.SecurityKey, cfg.AMap.Timeout)
}

func provideWeatherStore(cfg *config.Config, logger *slog.Logger) weather.Store {
	if cfg.Weather.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return weatherstore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return weatherstore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
			client.Close()
		} else {
			logger.Info("valkey weather cache enabled", "addr", cfg.Weather.Valkey.Addr)
			return weatherstore.NewValkeyStore(client, "weather")
		}
	}
	return weatherstore.NewMemoryStore()
}

func provideWeatherArchive(cfg *config.Config, logger *slog.Logger) weather.Archive {
	if !cfg.Archive.Enabled {
		return nil
	}
	a, err := archive.NewMinioArchive(cfg.Archive.Endpoint, cfg.Archive.AccessKey, cfg.Archive.SecretKey, cfg.Archive.Bucket, cfg.Archive.Region, logger)
	if err != nil {
		logger.Error("failed to initialize payload archive, continuing without it", "error", err)
		return nil
	}
	logger.Info("payload archive enabled", "bucket", cfg.Archive.Bucket)
	return a
}

func provideFavoritesRepository(cfg *config.Config, logger *slog.Logger) favorites.Repository {
	fallback := favoritesrepo.NewMemoryRepository()
	dsn := strings.TrimSpace(cfg.Favorites.Postgres.DSN)
	if dsn == "" {
		logger.Info("favorites postgres dsn not set, using memory repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback
	}
	if cfg.Favorites.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Favorites.Postgres.MaxConns
	}
	if cfg.Favorites.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Favorites.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("favorites postgres repository enabled")
	return favoritesrepo.NewPostgresRepository(pool)
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Weather.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Weather.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Weather.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
