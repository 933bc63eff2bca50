//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/agristack/internal/bootstrap"
	"github.com/yanqian/agristack/internal/domain/advice"
	"github.com/yanqian/agristack/internal/domain/quota"
	"github.com/yanqian/agristack/internal/infra/config"
	"github.com/yanqian/agristack/internal/infra/llm/gemini"
	httpiface "github.com/yanqian/agristack/internal/interface/http"
	"github.com/yanqian/agristack/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAdviceConfig,
		provideGeminiClient,
		provideQuotaConfig,
		provideQuotaStore,
		advice.NewService,
		quota.NewGuard,
		wire.Bind(new(advice.ModelClient), new(*gemini.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
