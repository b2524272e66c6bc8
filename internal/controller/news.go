package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/nsxzhou1114/aihub-api/internal/dto"
	"github.com/nsxzhou1114/aihub-api/internal/logger"
	"github.com/nsxzhou1114/aihub-api/internal/service"
	"github.com/nsxzhou1114/aihub-api/pkg/response"
	"go.uber.org/zap"
)

// NewsApi 资讯API控制器
type NewsApi struct {
	logger      *zap.SugaredLogger
	newsService *service.NewsService
}

// NewNewsApi 创建资讯API控制器
func NewNewsApi(svc *service.NewsService) *NewsApi {
	return &NewsApi{
		logger:      logger.GetSugaredLogger(),
		newsService: svc,
	}
}

func (api *NewsApi) list(c *gin.Context, includeUnpublished bool) {
	page, limit := dto.ParsePage(c.Query("page"), c.Query("limit"))
	query := &dto.NewsListQuery{
		Category: c.Query("category"),
		Page:     page,
		Limit:    limit,
	}

	result, err := api.newsService.List(c.Request.Context(), query, includeUnpublished)
	if err != nil {
		handleServiceError(c, err, "获取资讯列表失败")
		return
	}
	response.Success(c, result)
}

// List 获取已发布资讯
func (api *NewsApi) List(c *gin.Context) {
	api.list(c, false)
}

// AdminList 获取全部资讯，包括未发布
func (api *NewsApi) AdminList(c *gin.Context) {
	api.list(c, true)
}

// GetDetail 获取资讯详情
func (api *NewsApi) GetDetail(c *gin.Context) {
	news, err := api.newsService.GetByID(c.Request.Context(), c.Param("id"), wantsHTML(c))
	if err != nil {
		handleServiceError(c, err, "获取资讯详情失败")
		return
	}
	response.Success(c, news)
}

// Create 创建资讯
func (api *NewsApi) Create(c *gin.Context) {
	var req dto.NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	news, err := api.newsService.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "创建资讯失败")
		return
	}
	response.Created(c, news)
}

// Update 更新资讯
func (api *NewsApi) Update(c *gin.Context) {
	var req dto.NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	news, err := api.newsService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err, "更新资讯失败")
		return
	}
	response.Success(c, news)
}

// Delete 删除资讯
func (api *NewsApi) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := api.newsService.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err, "删除资讯失败")
		return
	}
	response.Success(c, gin.H{"id": id})
}
