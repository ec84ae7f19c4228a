//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/home-solutions/internal/bootstrap"
	"github.com/yanqian/home-solutions/internal/domain/catalog"
	"github.com/yanqian/home-solutions/internal/domain/classifier"
	"github.com/yanqian/home-solutions/internal/domain/search"
	"github.com/yanqian/home-solutions/internal/infra/config"
	httpiface "github.com/yanqian/home-solutions/internal/interface/http"
	"github.com/yanqian/home-solutions/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideCatalogConfig,
		provideClassifierConfig,
		provideProviderSource,
		provideGenerator,
		provideTokenBudget,
		provideTrendingStore,
		provideHistoryRepository,
		catalog.NewService,
		search.NewService,
		classifier.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
