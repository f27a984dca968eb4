package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// CachedResult 缓存的分析结果
type CachedResult struct {
	Key       string          `json:"key"`
	Source    string          `json:"source"` // 生成结果的模型，如 "openai:google/gemini-2.5-flash"
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Expired 是否已过期
func (r *CachedResult) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// Cache 缓存接口
// Get 在未命中或已过期时返回 (nil, nil)
type Cache interface {
	Get(ctx context.Context, key string) (*CachedResult, error)
	Set(ctx context.Context, key, source string, data json.RawMessage, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Key 由模型和提示词生成缓存key，提示词是确定性的所以同样的输入得到同样的key
func Key(source string, parts ...string) string {
	h := sha256.New()
	h.Write([]byte(source))
	for _, p := range parts {
		h.Write([]byte{0})
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func newResult(key, source string, data json.RawMessage, ttl time.Duration) *CachedResult {
	now := time.Now()
	return &CachedResult{
		Key:       key,
		Source:    source,
		Data:      data,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}
