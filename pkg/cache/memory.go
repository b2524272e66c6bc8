package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type memItem struct {
	v       string
	expires time.Time
}

// MemoryCache 进程内缓存，单实例部署或测试时使用
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]memItem
}

// NewMemoryCache 创建进程内缓存
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: map[string]memItem{}}
}

// Get 获取缓存
func (m *MemoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	it, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return "", ErrMiss
	}
	if !it.expires.IsZero() && time.Now().After(it.expires) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return "", ErrMiss
	}
	return it.v, nil
}

// Set 设置缓存，expiration<=0 表示不过期
func (m *MemoryCache) Set(_ context.Context, key string, value string, expiration time.Duration) error {
	it := memItem{v: value}
	if expiration > 0 {
		it.expires = time.Now().Add(expiration)
	}
	m.mu.Lock()
	m.items[key] = it
	m.mu.Unlock()
	return nil
}

// Delete 删除缓存
func (m *MemoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.items, k)
	}
	m.mu.Unlock()
	return nil
}

// GetJSON 获取JSON格式的缓存并反序列化
func (m *MemoryCache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := m.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

// SetJSON 序列化为JSON并设置缓存
func (m *MemoryCache) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal json failed: %w", err)
	}
	return m.Set(ctx, key, string(data), expiration)
}

// Close 清空缓存
func (m *MemoryCache) Close() error {
	m.mu.Lock()
	m.items = map[string]memItem{}
	m.mu.Unlock()
	return nil
}
