package cache

import (
	"context"
	"encoding/json"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// MemoryCache 内存缓存实现（容量有限的LRU，单机部署或测试用）
type MemoryCache struct {
	lru *lru.Cache[string, *CachedResult]
}

// NewMemoryCache 创建内存缓存，size<=0 时使用256
func NewMemoryCache(size int) (*MemoryCache, error) {
	if size <= 0 {
		size = 256
	}
	l, err := lru.New[string, *CachedResult](size)
	if err != nil {
		return nil, err
	}
	return &MemoryCache{lru: l}, nil
}

// Get 获取缓存
func (c *MemoryCache) Get(ctx context.Context, key string) (*CachedResult, error) {
	result, ok := c.lru.Get(key)
	if !ok {
		return nil, nil
	}

	// 检查是否过期
	if result.Expired(time.Now()) {
		c.lru.Remove(key)
		return nil, nil
	}

	return result, nil
}

// Set 设置缓存
func (c *MemoryCache) Set(ctx context.Context, key, source string, data json.RawMessage, ttl time.Duration) error {
	c.lru.Add(key, newResult(key, source, data, ttl))
	return nil
}

// Delete 删除缓存
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.lru.Remove(key)
	return nil
}

// Len 当前条目数
func (c *MemoryCache) Len() int {
	return c.lru.Len()
}
