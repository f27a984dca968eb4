package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// 支持的LLM提供方
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config 应用配置
type Config struct {
	Port string

	LLMProvider    string
	LLMEndpoint    string
	LLMAPIKey      string
	LLMModel       string
	LLMTemperature float32
	LLMMaxTokens   int
	LLMTimeout     time.Duration // 0 表示不设置超时

	StrictSchema bool

	CacheTTL    time.Duration // 0 表示关闭缓存
	CacheSize   int
	CacheDir    string
	DatabaseURL string

	LogLevel  string
	LogFormat string
}

// Load 从环境变量加载配置
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		LLMProvider: strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI)),
		LLMEndpoint: getEnv("LLM_ENDPOINT", ""),
		LLMAPIKey:   getEnv("LLM_API_KEY", ""),
		CacheDir:    getEnv("CACHE_DIR", ""),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
	}

	switch cfg.LLMProvider {
	case ProviderOpenAI:
		cfg.LLMModel = getEnv("LLM_MODEL", "google/gemini-2.5-flash")
	case ProviderGemini:
		cfg.LLMModel = getEnv("LLM_MODEL", "gemini-2.5-flash")
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", cfg.LLMProvider)
	}

	temperature, err := strconv.ParseFloat(getEnv("LLM_TEMPERATURE", "0.7"), 32)
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_TEMPERATURE: %w", err)
	}
	cfg.LLMTemperature = float32(temperature)

	if cfg.LLMMaxTokens, err = getInt("LLM_MAX_TOKENS", 2000); err != nil {
		return nil, err
	}
	if cfg.LLMTimeout, err = getDuration("LLM_TIMEOUT", 0); err != nil {
		return nil, err
	}
	if cfg.StrictSchema, err = getBool("STRICT_SCHEMA", false); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 0); err != nil {
		return nil, err
	}
	if cfg.CacheSize, err = getInt("CACHE_SIZE", 256); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LLMConfigured 端点和密钥是否都已配置
func (c *Config) LLMConfigured() bool {
	return c.LLMEndpoint != "" && c.LLMAPIKey != ""
}

// CacheEnabled 是否启用结果缓存
func (c *Config) CacheEnabled() bool {
	return c.CacheTTL > 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

// getDuration 支持 "30s" 这类写法，纯数字按秒处理
func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
