//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/agrivision/agrivision/internal/bootstrap"
	"github.com/agrivision/agrivision/internal/domain/advisorchat"
	"github.com/agrivision/agrivision/internal/domain/diagnosis"
	"github.com/agrivision/agrivision/internal/domain/region"
	"github.com/agrivision/agrivision/internal/domain/report"
	"github.com/agrivision/agrivision/internal/domain/weather"
	"github.com/agrivision/agrivision/internal/infra/config"
	"github.com/agrivision/agrivision/internal/infra/llm/gemini"
	"github.com/agrivision/agrivision/internal/infra/weather/openmeteo"
	httpiface "github.com/agrivision/agrivision/internal/interface/http"
	"github.com/agrivision/agrivision/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideGeminiClient,
		provideForecastClient,
		provideSnapshotCache,
		provideImageStore,
		provideDiagnosisConfig,
		provideChatConfig,
		provideWeatherConfig,
		provideSessionConfig,
		provideSessionManager,
		diagnosis.NewService,
		advisorchat.NewService,
		report.NewService,
		region.NewService,
		weather.NewService,
		provideController,
		wire.Bind(new(diagnosis.ProviderClient), new(*gemini.Client)),
		wire.Bind(new(advisorchat.ProviderClient), new(*gemini.Client)),
		wire.Bind(new(report.ProviderClient), new(*gemini.Client)),
		wire.Bind(new(region.ProviderClient), new(*gemini.Client)),
		wire.Bind(new(weather.ForecastClient), new(*openmeteo.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
