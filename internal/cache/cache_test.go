package cache

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseCache(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()
	key := Key("openai:test", "system", "user")
	data := json.RawMessage(`{"reflection_summary":"ok"}`)

	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got, "empty cache should miss")

	require.NoError(t, c.Set(ctx, key, "openai:test", data, time.Hour))
	got, err = c.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.JSONEq(t, string(data), string(got.Data))
	assert.Equal(t, "openai:test", got.Source)

	require.NoError(t, c.Delete(ctx, key))
	got, err = c.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got)

	// 已过期的条目视为未命中
	require.NoError(t, c.Set(ctx, key, "openai:test", data, -time.Second))
	got, err = c.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got)

	// 命中时返回的字节与写入时一致
	exact := json.RawMessage(`{"z":1,"a":"R&D <b>","a":2,"nested":{"y":[1,2]}}`)
	require.NoError(t, c.Set(ctx, key, "openai:test", exact, time.Hour))
	got, err = c.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, string(exact), string(got.Data))
	require.NoError(t, c.Delete(ctx, key))

	// 删除不存在的key不报错
	assert.NoError(t, c.Delete(ctx, "missing"))
}

func TestMemoryCache(t *testing.T) {
	c, err := NewMemoryCache(8)
	require.NoError(t, err)
	exerciseCache(t, c)
}

func TestMemoryCacheEvictsOldest(t *testing.T) {
	ctx := context.Background()
	c, err := NewMemoryCache(2)
	require.NoError(t, err)

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, c.Set(ctx, k, "src", json.RawMessage(`{}`), time.Hour))
	}

	assert.Equal(t, 2, c.Len())
	got, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	exerciseCache(t, c)
}

func TestPostgresCache(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	c, err := NewPostgresCache(context.Background(), dsn)
	require.NoError(t, err)
	defer c.Close()

	exerciseCache(t, c)

	_, err = c.CleanExpired(context.Background())
	assert.NoError(t, err)
}

func TestKeyIsStable(t *testing.T) {
	a := Key("openai:m", "sys", "user")
	assert.Equal(t, a, Key("openai:m", "sys", "user"))
	assert.NotEqual(t, a, Key("gemini:m", "sys", "user"))
	// 分隔符避免拼接歧义
	assert.NotEqual(t, Key("m", "ab", "c"), Key("m", "a", "bc"))
	assert.Len(t, a, 64)
}
