package fetcher

import "errors"

var (
	// ErrConfigurationMissing 端点或密钥未配置
	ErrConfigurationMissing = errors.New("LLM service configuration is missing")

	// ErrUpstreamUnavailable 上游调用失败（网络错误或非2xx），由调用方决定是否重试
	ErrUpstreamUnavailable = errors.New("analysis service unavailable")

	// ErrEmptyModelOutput 模型没有返回文本内容
	ErrEmptyModelOutput = errors.New("no analysis content returned")

	// ErrMalformedModelOutput 模型输出无法解析为JSON
	ErrMalformedModelOutput = errors.New("failed to parse model output")
)
