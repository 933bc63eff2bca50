package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/agristack/internal/domain/advice"
	"github.com/yanqian/agristack/internal/domain/quota"
	"github.com/yanqian/agristack/internal/infra/config"
	"github.com/yanqian/agristack/internal/infra/llm/gemini"
	"github.com/yanqian/agristack/internal/infra/quotastore"
)

func provideAdviceConfig(cfg *config.Config) advice.Config {
	return advice.Config{
		Model:        cfg.LLM.Model,
		Temperature:  cfg.LLM.Temperature,
		SystemPrompt: cfg.Advice.Prompt,
		GoogleSearch: cfg.LLM.GoogleSearch,
	}
}

func provideGeminiClient(cfg *config.Config) (*gemini.Client, error) {
	return gemini.NewClient(context.Background(), cfg.LLM.APIKey, cfg.LLM.Timeout)
}

func provideQuotaConfig(cfg *config.Config) (quota.Config, error) {
	loc, err := cfg.Quota.Location()
	if err != nil {
		return quota.Config{}, err
	}
	return quota.Config{DailyLimit: cfg.Quota.DailyLimit, Location: loc}, nil
}

func provideQuotaStore(cfg *config.Config, logger *slog.Logger) (quota.Store, func(), error) {
	noop := func() {}
	if !cfg.Quota.Valkey.Enabled {
		logger.Info("quota valkey store disabled, using memory store")
		return quotastore.NewMemoryStore(), noop, nil
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return quotastore.NewMemoryStore(), noop, nil
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return quotastore.NewMemoryStore(), noop, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return quotastore.NewMemoryStore(), noop, nil
	}
	logger.Info("quota valkey store enabled", "addr", cfg.Quota.Valkey.Addr)
	return quotastore.NewValkeyStore(client, cfg.Quota.Valkey.Prefix), client.Close, nil
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	if strings.Contains(cfg.Quota.Valkey.Addr, "://") {
		return valkey.ParseURL(cfg.Quota.Valkey.Addr)
	}
	return valkey.ClientOption{InitAddress: []string{cfg.Quota.Valkey.Addr}}, nil
}
