//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/skinfit/internal/bootstrap"
	"github.com/yanqian/skinfit/internal/domain/advisor"
	"github.com/yanqian/skinfit/internal/domain/dashboard"
	"github.com/yanqian/skinfit/internal/domain/recommend"
	"github.com/yanqian/skinfit/internal/infra/config"
	httpiface "github.com/yanqian/skinfit/internal/interface/http"
	"github.com/yanqian/skinfit/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideCatalogSource,
		provideCatalog,
		provideRecommendConfig,
		provideEngine,
		provideAdvisorConfig,
		provideDashboardConfig,
		provideProfileRepository,
		provideTally,
		advisor.NewService,
		dashboard.NewService,
		wire.Bind(new(advisor.Recommender), new(*recommend.Engine)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
