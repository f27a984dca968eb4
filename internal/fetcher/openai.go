package fetcher

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient OpenAI兼容的chat completions客户端（OpenRouter、网关等）
type OpenAIClient struct {
	cfg ClientConfig
}

// NewOpenAIClient 创建客户端，Timeout 为0时不设置超时
func NewOpenAIClient(cfg ClientConfig) *OpenAIClient {
	return &OpenAIClient{cfg: cfg}
}

// Name 实现 ChatClient
func (o *OpenAIClient) Name() string {
	return "openai:" + o.cfg.Model
}

// Chat 实现 ChatClient，只调用一次，不做重试
func (o *OpenAIClient) Chat(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if !o.cfg.configured() {
		return "", ErrConfigurationMissing
	}

	httpClient, guard := newGuardedClient(o.cfg)
	clientCfg := openai.DefaultConfig(o.cfg.APIKey)
	clientCfg.BaseURL = baseURLFromEndpoint(o.cfg.Endpoint)
	clientCfg.HTTPClient = httpClient
	client := openai.NewClientWithConfig(clientCfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.cfg.Model,
		Temperature: o.cfg.Temperature,
		MaxTokens:   o.cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", classifyCallError(err, guard)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyModelOutput
	}
	return resp.Choices[0].Message.Content, nil
}

// baseURLFromEndpoint 配置的是完整的 chat completions 地址，go-openai 需要的是base
func baseURLFromEndpoint(endpoint string) string {
	base := strings.TrimRight(endpoint, "/")
	return strings.TrimSuffix(base, "/chat/completions")
}
