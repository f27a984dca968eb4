package app

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"pathnottaken-go/config"
	"pathnottaken-go/internal/cache"
	"pathnottaken-go/internal/fetcher"
	"pathnottaken-go/internal/service"
)

// App 按配置组装好的服务和它持有的资源
type App struct {
	Service *service.SimulationService
	Chat    fetcher.ChatClient
	Cache   cache.Cache

	closers []func() error
}

// New 根据配置创建模型客户端、缓存和分析服务
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := zerolog.Ctx(ctx).With().Str("component", "app").Logger()

	if !cfg.LLMConfigured() {
		logger.Warn().Msg("LLM_ENDPOINT or LLM_API_KEY not configured, simulations will fail")
	}

	a := &App{Chat: NewChatClient(cfg)}

	if cfg.CacheEnabled() {
		c, closer, err := newCache(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.Cache = c
		if closer != nil {
			a.closers = append(a.closers, closer)
		}
	} else {
		logger.Info().Msg("CACHE_TTL not set, result cache disabled")
	}

	a.Service = service.NewSimulationService(a.Chat, service.Options{
		Cache:        a.Cache,
		CacheTTL:     cfg.CacheTTL,
		StrictSchema: cfg.StrictSchema,
	})

	logger.Info().
		Str("provider", cfg.LLMProvider).
		Str("model", cfg.LLMModel).
		Bool("strict_schema", cfg.StrictSchema).
		Bool("cache", a.Cache != nil).
		Msg("simulation service ready")

	return a, nil
}

// Close 释放数据库连接等资源
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// StartJanitor 定期删除PostgreSQL中的过期缓存，ctx取消时退出
// 内存和文件缓存在读取时自行淘汰，不需要
func (a *App) StartJanitor(ctx context.Context, interval time.Duration) {
	pg, ok := a.Cache.(*cache.PostgresCache)
	if !ok || interval <= 0 {
		return
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "cache").Logger()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := pg.CleanExpired(ctx)
				if err != nil {
					logger.Warn().Err(err).Msg("failed to clean expired cache rows")
					continue
				}
				if n > 0 {
					logger.Info().Int64("rows", n).Msg("cleaned expired cache rows")
				}
			}
		}
	}()
}

// NewChatClient 按 LLM_PROVIDER 选择模型客户端
func NewChatClient(cfg *config.Config) fetcher.ChatClient {
	cc := fetcher.ClientConfig{
		Endpoint:    cfg.LLMEndpoint,
		APIKey:      cfg.LLMAPIKey,
		Model:       cfg.LLMModel,
		Temperature: cfg.LLMTemperature,
		MaxTokens:   cfg.LLMMaxTokens,
		Timeout:     cfg.LLMTimeout,
	}
	if cfg.LLMProvider == config.ProviderGemini {
		return fetcher.NewGeminiClient(cc)
	}
	return fetcher.NewOpenAIClient(cc)
}

// newCache 优先使用PostgreSQL，其次文件缓存，否则使用内存缓存
func newCache(ctx context.Context, cfg *config.Config) (cache.Cache, func() error, error) {
	logger := zerolog.Ctx(ctx).With().Str("component", "cache").Logger()

	if cfg.DatabaseURL != "" {
		pg, err := cache.NewPostgresCache(ctx, cfg.DatabaseURL)
		if err == nil {
			logger.Info().Msg("using PostgreSQL cache")
			return pg, pg.Close, nil
		}
		logger.Warn().Err(err).Msg("failed to connect to PostgreSQL, falling back")
	}

	if cfg.CacheDir != "" {
		fc, err := cache.NewFileCache(cfg.CacheDir)
		if err == nil {
			logger.Info().Str("dir", cfg.CacheDir).Msg("using file cache")
			return fc, nil, nil
		}
		logger.Warn().Err(err).Msg("failed to open cache dir, falling back")
	}

	mc, err := cache.NewMemoryCache(cfg.CacheSize)
	if err != nil {
		return nil, nil, err
	}
	logger.Info().Int("size", cfg.CacheSize).Msg("using memory cache")
	return mc, nil, nil
}
