package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nsxzhou1114/aihub-api/internal/config"
)

// Cors 跨域中间件，cfg 每次请求读取以支持配置热更新
func Cors(cfg func() config.CorsConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		cors := cfg()
		origin := c.GetHeader("Origin")

		if allowed := allowOrigin(cors.AllowOrigins, origin); allowed != "" {
			c.Header("Access-Control-Allow-Origin", allowed)
			if allowed != "*" {
				c.Header("Vary", "Origin")
			}
			if cors.AllowCredentials && allowed != "*" {
				c.Header("Access-Control-Allow-Credentials", "true")
			}
		}
		c.Header("Access-Control-Allow-Methods", strings.Join(cors.AllowMethods, ", "))
		c.Header("Access-Control-Allow-Headers", strings.Join(cors.AllowHeaders, ", "))
		if len(cors.ExposedHeaders) > 0 {
			c.Header("Access-Control-Expose-Headers", strings.Join(cors.ExposedHeaders, ", "))
		}

		// 预检请求直接返回204
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// allowOrigin 返回应写入响应头的来源，不允许时返回空串
func allowOrigin(allowed []string, origin string) string {
	for _, o := range allowed {
		if o == "*" {
			// 携带cookie时不能使用通配符
			if origin != "" {
				return origin
			}
			return "*"
		}
		if origin != "" && strings.EqualFold(o, origin) {
			return origin
		}
	}
	return ""
}
