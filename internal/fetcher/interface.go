package fetcher

import (
	"context"
	"time"
)

// ChatClient LLM聊天客户端 (OpenAI兼容接口 / Gemini)
type ChatClient interface {
	// Chat 发送system+user提示词，返回模型的文本内容
	Chat(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	// Name 提供方和模型名，用于日志和缓存key
	Name() string
}

// ClientConfig 调用模型所需的参数
// Endpoint 和 APIKey 在每次调用时检查，缺失时返回 ErrConfigurationMissing
type ClientConfig struct {
	Endpoint    string
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

func (c ClientConfig) configured() bool {
	return c.Endpoint != "" && c.APIKey != ""
}
