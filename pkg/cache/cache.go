package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss 缓存未命中
var ErrMiss = errors.New("cache: key not found")

// Cache 缓存接口
type Cache interface {
	// Get 获取缓存
	Get(ctx context.Context, key string) (string, error)

	// Set 设置缓存
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Delete 删除缓存
	Delete(ctx context.Context, keys ...string) error

	// GetJSON 获取JSON格式的缓存并反序列化
	GetJSON(ctx context.Context, key string, dest interface{}) error

	// SetJSON 序列化为JSON并设置缓存
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error

	// Close 关闭连接
	Close() error
}

// 缓存键名
const (
	StatisticsKey   = "aihub:stats:overview"  // 统计概览
	CategoryListKey = "aihub:category:list"   // 分类列表（含工具数量）
)

// 缓存过期时间
const (
	StatisticsExpiration   = 5 * time.Minute
	CategoryListExpiration = 1 * time.Hour
)

// New 根据驱动名创建缓存，redis 驱动需要传入客户端工厂
func New(driver string, redisFactory func() (Cache, error)) (Cache, error) {
	switch driver {
	case "redis":
		return redisFactory()
	case "memory", "":
		return NewMemoryCache(), nil
	case "none":
		return Nop{}, nil
	default:
		return nil, errors.New("cache: unknown driver " + driver)
	}
}

// Nop 不缓存任何内容
type Nop struct{}

func (Nop) Get(context.Context, string) (string, error)                       { return "", ErrMiss }
func (Nop) Set(context.Context, string, string, time.Duration) error          { return nil }
func (Nop) Delete(context.Context, ...string) error                           { return nil }
func (Nop) GetJSON(context.Context, string, interface{}) error                { return ErrMiss }
func (Nop) SetJSON(context.Context, string, interface{}, time.Duration) error { return nil }
func (Nop) Close() error                                                      { return nil }
