package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS simulation_cache (
	cache_key  TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	data       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL
)`

// PostgresCache PostgreSQL缓存实现
type PostgresCache struct {
	db *sql.DB
}

// NewPostgresCache 创建PostgreSQL缓存，连接后确保表存在
func NewPostgresCache(ctx context.Context, databaseURL string) (*PostgresCache, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 测试连接
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create cache table: %w", err)
	}

	return &PostgresCache{db: db}, nil
}

// Get 获取缓存
func (c *PostgresCache) Get(ctx context.Context, key string) (*CachedResult, error) {
	query := `
	SELECT cache_key, source, data, created_at, expires_at
	FROM simulation_cache
	WHERE cache_key = $1 AND expires_at > NOW()
	`

	var result CachedResult
	var data []byte

	err := c.db.QueryRowContext(ctx, query, key).Scan(
		&result.Key,
		&result.Source,
		&data,
		&result.CreatedAt,
		&result.ExpiresAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil // 缓存不存在或已过期
	}
	if err != nil {
		return nil, err
	}

	result.Data = json.RawMessage(data)
	return &result, nil
}

// Set 设置缓存
func (c *PostgresCache) Set(ctx context.Context, key, source string, data json.RawMessage, ttl time.Duration) error {
	expiresAt := time.Now().Add(ttl)

	query := `
	INSERT INTO simulation_cache (cache_key, source, data, created_at, expires_at)
	VALUES ($1, $2, $3, NOW(), $4)
	ON CONFLICT (cache_key)
	DO UPDATE SET source = $2, data = $3, created_at = NOW(), expires_at = $4
	`

	// TEXT列原样保存，JSONB会重排key；以字符串传入，lib/pq 会把 []byte 编码成 bytea
	_, err := c.db.ExecContext(ctx, query, key, source, string(data), expiresAt)
	return err
}

// Delete 删除缓存
func (c *PostgresCache) Delete(ctx context.Context, key string) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM simulation_cache WHERE cache_key = $1`, key)
	return err
}

// Close 关闭数据库连接
func (c *PostgresCache) Close() error {
	return c.db.Close()
}

// CleanExpired 清理过期缓存
func (c *PostgresCache) CleanExpired(ctx context.Context) (int64, error) {
	result, err := c.db.ExecContext(ctx, `DELETE FROM simulation_cache WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
