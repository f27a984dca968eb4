package fetcher

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiClient 通过官方genai SDK调用Gemini
// genai.Client 在每次调用时创建，这样缺少配置时服务仍能启动
type GeminiClient struct {
	cfg ClientConfig
}

// NewGeminiClient 创建客户端
func NewGeminiClient(cfg ClientConfig) *GeminiClient {
	return &GeminiClient{cfg: cfg}
}

// Name 实现 ChatClient
func (g *GeminiClient) Name() string {
	return "gemini:" + g.cfg.Model
}

// Chat 实现 ChatClient
func (g *GeminiClient) Chat(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if !g.cfg.configured() {
		return "", ErrConfigurationMissing
	}

	httpClient, guard := newGuardedClient(g.cfg)
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      g.cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: g.cfg.Endpoint},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConfigurationMissing, err)
	}

	resp, err := cli.Models.GenerateContent(ctx, g.cfg.Model, genai.Text(userPrompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(g.cfg.Temperature),
		MaxOutputTokens:   int32(g.cfg.MaxTokens),
	})
	if err != nil {
		return "", classifyCallError(err, guard)
	}

	text := candidateText(resp)
	if text == "" {
		return "", ErrEmptyModelOutput
	}
	return text, nil
}

// candidateText 取第一个候选的文本部分（跳过thought）
func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}
