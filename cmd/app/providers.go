package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/home-solutions/internal/domain/catalog"
	"github.com/yanqian/home-solutions/internal/domain/classifier"
	"github.com/yanqian/home-solutions/internal/infra/backend"
	"github.com/yanqian/home-solutions/internal/infra/config"
	"github.com/yanqian/home-solutions/internal/infra/llm/chatgpt"
	"github.com/yanqian/home-solutions/internal/infra/llm/gemini"
	"github.com/yanqian/home-solutions/internal/infra/llm/tokens"
	"github.com/yanqian/home-solutions/internal/infra/providercache"
	"github.com/yanqian/home-solutions/internal/infra/searchlog"
	"github.com/yanqian/home-solutions/internal/infra/seedcatalog"
	"github.com/yanqian/home-solutions/internal/infra/trendstore"
)

const defaultOpenAIModel = "gpt-4o-mini"

func provideCatalogConfig(cfg *config.Config) catalog.Config {
	return catalog.Config{
		FeaturedMinRating: cfg.Catalog.FeaturedMinRating,
	}
}

func provideClassifierConfig(cfg *config.Config) classifier.Config {
	return classifier.Config{
		Prompt:         cfg.Classifier.Prompt,
		Timeout:        cfg.LLM.Timeout,
		MaxQueryTokens: cfg.Classifier.MaxQueryTokens,
		TrendingLimit:  cfg.Classifier.TrendingLimit,
		HistoryLimit:   cfg.Classifier.HistoryLimit,
	}
}

func provideProviderSource(cfg *config.Config, logger *slog.Logger) (catalog.ProviderSource, func(), error) {
	var origin catalog.ProviderSource
	if cfg.Catalog.Source == config.CatalogSourceStatic {
		seed, err := seedcatalog.New()
		if err != nil {
			return nil, nil, err
		}
		logger.Info("serving embedded seed catalog")
		origin = seed
	} else {
		client := backend.NewClient(cfg.Backend.ResolvedURL(), cfg.Backend.Timeout)
		logger.Info("provider backend configured", "base_url", client.BaseURL(), "environment", cfg.Backend.Environment)
		origin = client
	}

	store, cleanup := provideCatalogStore(cfg, logger)
	return providercache.NewSource(origin, store, cfg.Catalog.CacheTTL, logger), cleanup, nil
}

func provideCatalogStore(cfg *config.Config, logger *slog.Logger) (providercache.Store, func()) {
	if cfg.Catalog.Redis.Enabled {
		client, err := connectValkey(cfg.Catalog.Redis.Addr)
		if err != nil {
			logger.Error("catalog valkey unavailable, falling back to memory cache", "error", err)
		} else {
			logger.Info("catalog valkey cache enabled", "addr", cfg.Catalog.Redis.Addr)
			return providercache.NewValkeyStore(client, "catalog"), client.Close
		}
	}
	return providercache.NewMemoryStore(), func() {}
}

// provideGenerator returns a nil Generator when no credential is configured.
func provideGenerator(cfg *config.Config, logger *slog.Logger) (classifier.Generator, error) {
	apiKey := strings.TrimSpace(cfg.LLM.APIKey)
	if apiKey == "" {
		logger.Warn("llm api key not set, ai category matching disabled")
		return nil, nil
	}
	switch cfg.LLM.Provider {
	case config.LLMProviderOpenAI:
		client, err := chatgpt.NewClient(apiKey, cfg.LLM.BaseURL, cfg.LLM.Timeout)
		if err != nil {
			return nil, err
		}
		model := strings.TrimSpace(cfg.LLM.Model)
		if model == "" {
			model = defaultOpenAIModel
		}
		logger.Info("openai-compatible classifier enabled", "model", model)
		return chatgpt.NewGenerator(client, model, cfg.LLM.Temperature), nil
	default:
		gen, err := gemini.NewGenerator(context.Background(), apiKey, cfg.LLM.Model, cfg.LLM.Temperature)
		if err != nil {
			return nil, err
		}
		logger.Info("gemini classifier enabled", "model", gen.Model())
		return gen, nil
	}
}

func provideTokenBudget(logger *slog.Logger) classifier.TokenBudget {
	return tokens.NewCounter(tokens.DefaultEncoding, logger)
}

func provideTrendingStore(cfg *config.Config, logger *slog.Logger) (classifier.TrendingStore, func()) {
	if cfg.Classifier.Redis.Enabled {
		client, err := connectValkey(cfg.Classifier.Redis.Addr)
		if err != nil {
			logger.Error("classifier valkey unavailable, falling back to memory store", "error", err)
		} else {
			logger.Info("classifier valkey store enabled", "addr", cfg.Classifier.Redis.Addr)
			return trendstore.NewValkeyStore(client, "classifier"), client.Close
		}
	}
	return trendstore.NewMemoryStore(), func() {}
}

func provideHistoryRepository(cfg *config.Config, logger *slog.Logger) (classifier.HistoryRepository, func()) {
	fallback := searchlog.NewMemoryRepository(0)
	noop := func() {}
	dsn := strings.TrimSpace(cfg.Classifier.Postgres.DSN)
	if dsn == "" {
		logger.Info("classifier postgres dsn not set, using memory history")
		return fallback, noop
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory history", "error", err)
		return fallback, noop
	}
	if cfg.Classifier.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Classifier.Postgres.MaxConns
	}
	if cfg.Classifier.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Classifier.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory history", "error", err)
		return fallback, noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory history", "error", err)
		pool.Close()
		return fallback, noop
	}
	logger.Info("classifier postgres history enabled")
	return searchlog.NewPostgresRepository(pool), pool.Close
}

func connectValkey(addr string) (valkey.Client, error) {
	opt, err := buildValkeyOptions(addr)
	if err != nil {
		return nil, err
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
