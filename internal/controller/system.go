package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nsxzhou1114/aihub-api/internal/config"
	"github.com/nsxzhou1114/aihub-api/internal/dto"
	"github.com/nsxzhou1114/aihub-api/internal/logger"
	"github.com/nsxzhou1114/aihub-api/pkg/response"
	"gorm.io/gorm"
)

// SystemApi 健康检查与站点配置
type SystemApi struct {
	db   *gorm.DB
	site func() config.SiteConfig
}

// NewSystemApi 创建系统API控制器
func NewSystemApi(db *gorm.DB, site func() config.SiteConfig) *SystemApi {
	return &SystemApi{db: db, site: site}
}

// Health 健康检查，数据库不可用时返回503
func (api *SystemApi) Health(c *gin.Context) {
	sqlDB, err := api.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		logger.Warnf("健康检查失败: %v", err)
		response.Error(c, http.StatusServiceUnavailable, response.CodeInternal, "数据库不可用", dto.HealthResponse{Status: "degraded", Database: "down"})
		return
	}
	response.Success(c, dto.HealthResponse{Status: "ok", Database: "up"})
}

// Site 获取站点公开配置
func (api *SystemApi) Site(c *gin.Context) {
	response.Success(c, dto.SiteResponse{PublicAPIBaseURL: api.site().PublicAPIBaseURL})
}
