package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nsxzhou1114/aihub-api/internal/service"
)

// RSSApi RSS控制器
type RSSApi struct {
	rssService *service.RSSService
}

// NewRSSApi 创建RSS控制器实例
func NewRSSApi(svc *service.RSSService) *RSSApi {
	return &RSSApi{rssService: svc}
}

// NewsFeed 已发布资讯的RSS订阅
func (api *RSSApi) NewsFeed(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	rssXML, err := api.rssService.NewsFeed(c.Request.Context(), getBaseURL(c), limit)
	if err != nil {
		handleServiceError(c, err, "生成RSS失败")
		return
	}

	c.Header("Cache-Control", "public, max-age=600")
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rssXML))
}

// getBaseURL 获取请求方可见的基础URL
func getBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}

	host := c.Request.Host
	if forwardedHost := c.GetHeader("X-Forwarded-Host"); forwardedHost != "" {
		host = forwardedHost
	}

	return scheme + "://" + host
}
