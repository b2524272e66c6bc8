package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/nsxzhou1114/aihub-api/internal/config"
	"github.com/nsxzhou1114/aihub-api/internal/logger"
	"github.com/nsxzhou1114/aihub-api/pkg/response"
)

// 上下文中保存管理员用户名的键
const adminUserKey = "adminUser"

// AdminVerifier 校验管理员令牌
type AdminVerifier interface {
	Config() config.AdminConfig
	Verify(token string) (string, bool)
}

// AdminAuth 管理员cookie认证中间件，admin.protect_api 关闭时直接放行
func AdminAuth(v AdminVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := v.Config()
		if !cfg.ProtectAPI {
			c.Next()
			return
		}

		token, err := c.Cookie(cfg.CookieName)
		if err != nil || token == "" {
			response.Unauthorized(c, "请先登录管理后台")
			c.Abort()
			return
		}

		username, ok := v.Verify(token)
		if !ok {
			logger.Warnf("无效的管理员令牌: path=%s ip=%s", c.Request.URL.Path, c.ClientIP())
			response.Unauthorized(c, "管理员凭据无效")
			c.Abort()
			return
		}

		c.Set(adminUserKey, username)
		c.Next()
	}
}

// GetAdminUser 从上下文中获取管理员用户名
func GetAdminUser(c *gin.Context) (string, bool) {
	username, exists := c.Get(adminUserKey)
	if !exists {
		return "", false
	}
	name, ok := username.(string)
	return name, ok
}
