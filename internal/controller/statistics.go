package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/nsxzhou1114/aihub-api/internal/service"
	"github.com/nsxzhou1114/aihub-api/pkg/response"
)

// StatisticsApi 统计API控制器
type StatisticsApi struct {
	statisticsService *service.StatisticsService
}

// NewStatisticsApi 创建统计API控制器
func NewStatisticsApi(svc *service.StatisticsService) *StatisticsApi {
	return &StatisticsApi{statisticsService: svc}
}

// Overview 获取统计概览
func (api *StatisticsApi) Overview(c *gin.Context) {
	stats, err := api.statisticsService.Overview(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "获取统计数据失败")
		return
	}
	response.Success(c, stats)
}
