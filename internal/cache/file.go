package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileCache 基于文件的缓存实现，每个key一个JSON文件
type FileCache struct {
	dir string
	mu  sync.RWMutex
}

// NewFileCache 创建文件缓存
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &FileCache{dir: dir}, nil
}

// key 是sha256十六进制串，可以直接做文件名
func (c *FileCache) cacheFile(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// Get 获取缓存
func (c *FileCache) Get(ctx context.Context, key string) (*CachedResult, error) {
	c.mu.RLock()
	data, err := os.ReadFile(c.cacheFile(key))
	c.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // 缓存不存在
		}
		return nil, err
	}

	var result CachedResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	// 过期了，删除缓存
	if result.Expired(time.Now()) {
		return nil, c.Delete(ctx, key)
	}

	return &result, nil
}

// Set 设置缓存
func (c *FileCache) Set(ctx context.Context, key, source string, data json.RawMessage, ttl time.Duration) error {
	// 不缩进也不转义HTML，命中时data与写入时字节一致
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(newResult(key, source, data, ttl)); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return os.WriteFile(c.cacheFile(key), buf.Bytes(), 0644)
}

// Delete 删除缓存
func (c *FileCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := os.Remove(c.cacheFile(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
