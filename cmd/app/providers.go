package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/agrivision/agrivision/internal/domain/advisorchat"
	"github.com/agrivision/agrivision/internal/domain/diagnosis"
	"github.com/agrivision/agrivision/internal/domain/region"
	"github.com/agrivision/agrivision/internal/domain/report"
	"github.com/agrivision/agrivision/internal/domain/session"
	"github.com/agrivision/agrivision/internal/domain/weather"
	"github.com/agrivision/agrivision/internal/infra/config"
	"github.com/agrivision/agrivision/internal/infra/imagestore"
	"github.com/agrivision/agrivision/internal/infra/llm/gemini"
	"github.com/agrivision/agrivision/internal/infra/weather/openmeteo"
	"github.com/agrivision/agrivision/internal/infra/weathercache"
)

func provideGeminiClient(cfg *config.Config) (*gemini.Client, error) {
	return gemini.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model)
}

func provideForecastClient(cfg *config.Config) *openmeteo.Client {
	return openmeteo.NewClient(cfg.Weather.APIBaseURL)
}

func provideDiagnosisConfig(cfg *config.Config) diagnosis.Config {
	return diagnosis.Config{
		Temperature: cfg.LLM.AnalysisTemperature,
	}
}

func provideChatConfig(cfg *config.Config) advisorchat.Config {
	return advisorchat.Config{
		Persona:            cfg.Chat.Persona,
		HistoryTokenBudget: cfg.Chat.HistoryTokenBudget,
	}
}

func provideWeatherConfig(cfg *config.Config) weather.Config {
	return weather.Config{
		CacheTTL:   cfg.Weather.CacheTTL,
		DefaultLat: cfg.Weather.DefaultLat,
		DefaultLon: cfg.Weather.DefaultLon,
	}
}

func provideSessionConfig(cfg *config.Config) session.Config {
	return session.Config{
		IdleTTL:    cfg.Session.IdleTTL,
		DefaultLat: cfg.Weather.DefaultLat,
		DefaultLon: cfg.Weather.DefaultLon,
	}
}

func provideSessionManager(cfg session.Config) *session.Manager {
	return session.NewManager(cfg.IdleTTL)
}

func provideSnapshotCache(cfg *config.Config, logger *slog.Logger) weather.SnapshotCache {
	if cfg.Weather.Valkey.Enabled {
		client, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{cfg.Weather.Valkey.Addr}})
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return weathercache.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		} else {
			logger.Info("weather valkey cache enabled", "addr", cfg.Weather.Valkey.Addr)
			return weathercache.NewValkeyStore(client, "wx", logger)
		}
	}
	return weathercache.NewMemoryStore()
}

func provideImageStore(cfg *config.Config, logger *slog.Logger) session.ImageStore {
	if cfg.Images.Endpoint == "" || cfg.Images.AccessKey == "" {
		logger.Info("object storage not configured, using memory image store")
		return imagestore.NewMemoryStore()
	}
	store, err := imagestore.NewMinioStore(cfg.Images.Endpoint, cfg.Images.AccessKey, cfg.Images.SecretKey, cfg.Images.Bucket, cfg.Images.Region, logger)
	if err != nil {
		logger.Error("failed to initialize object storage, using memory image store", "error", err)
		return imagestore.NewMemoryStore()
	}
	logger.Info("object image store enabled", "bucket", cfg.Images.Bucket)
	return store
}

func provideController(
	cfg session.Config,
	sessions *session.Manager,
	images session.ImageStore,
	diagnose diagnosis.Service,
	chat advisorchat.Service,
	reports report.Service,
	regions region.Service,
	weatherSvc weather.Service,
	logger *slog.Logger,
) *session.Controller {
	return session.NewController(cfg, sessions, images, diagnose, chat, reports, regions, weatherSvc, logger)
}
