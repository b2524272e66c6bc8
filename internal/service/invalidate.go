package service

import (
	"context"

	"github.com/nsxzhou1114/aihub-api/internal/logger"
	"github.com/nsxzhou1114/aihub-api/pkg/cache"
	"go.uber.org/zap"
)

// invalidate 删除写操作影响的缓存，失败只记录日志
func invalidate(ctx context.Context, c cache.Cache, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.Delete(ctx, keys...); err != nil {
		logger.Warn("清除缓存失败", zap.Strings("keys", keys), zap.Error(err))
	}
}
