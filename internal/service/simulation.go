package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"pathnottaken-go/internal/cache"
	"pathnottaken-go/internal/fetcher"
	"pathnottaken-go/internal/model"
)

// Options SimulationService 的可选项
type Options struct {
	Cache        cache.Cache // nil 表示不缓存
	CacheTTL     time.Duration
	StrictSchema bool // 返回前校验五个字段
}

// SimulationService 校验请求、构造提示词、调用模型、解析结果
type SimulationService struct {
	llm          fetcher.ChatClient
	cache        cache.Cache
	cacheTTL     time.Duration
	strictSchema bool
}

// NewSimulationService 创建服务
func NewSimulationService(llm fetcher.ChatClient, opts Options) *SimulationService {
	s := &SimulationService{
		llm:          llm,
		strictSchema: opts.StrictSchema,
	}
	if opts.Cache != nil && opts.CacheTTL > 0 {
		s.cache = opts.Cache
		s.cacheTTL = opts.CacheTTL
	}
	return s
}

// Simulate 执行一次反事实分析
// 任一步失败都直接返回，错误可以用 errors.Is 匹配 model.ErrInvalidPayload 和 fetcher 中的错误
func (s *SimulationService) Simulate(ctx context.Context, req *model.SimulationRequest) (json.RawMessage, error) {
	logger := zerolog.Ctx(ctx).With().Str("component", "simulation").Logger()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	userPrompt := BuildUserPrompt(req)
	source := s.llm.Name()
	key := cache.Key(source, SystemPrompt, userPrompt)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			logger.Warn().Err(err).Msg("cache lookup failed")
		} else if cached != nil {
			logger.Info().Str("key", key[:12]).Msg("cache hit")
			return cached.Data, nil
		}
	}

	start := time.Now()
	content, err := s.llm.Chat(ctx, SystemPrompt, userPrompt)
	if err != nil {
		logger.Error().Err(err).Str("model", source).Dur("elapsed", time.Since(start)).Msg("model call failed")
		return nil, err
	}
	logger.Info().
		Str("model", source).
		Str("horizon", string(req.TimeHorizon)).
		Dur("elapsed", time.Since(start)).
		Int("output_bytes", len(content)).
		Msg("model call completed")

	payload, err := fetcher.ExtractJSON(content)
	if err != nil {
		logger.Warn().Err(err).Msg("model output is not JSON")
		return nil, err
	}

	if s.strictSchema {
		if _, err := model.ValidateResult(payload); err != nil {
			logger.Warn().Err(err).Msg("model output failed schema check")
			return nil, fmt.Errorf("%w: %v", fetcher.ErrMalformedModelOutput, err)
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, source, payload, s.cacheTTL); err != nil {
			logger.Warn().Err(err).Msg("cache store failed")
		}
	}

	return payload, nil
}
