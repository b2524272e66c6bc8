package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/nsxzhou1114/aihub-api/internal/dto"
	"github.com/nsxzhou1114/aihub-api/internal/logger"
	"github.com/nsxzhou1114/aihub-api/internal/service"
	"github.com/nsxzhou1114/aihub-api/pkg/response"
	"go.uber.org/zap"
)

// ToolApi 工具API控制器
type ToolApi struct {
	logger      *zap.SugaredLogger
	toolService *service.ToolService
}

// NewToolApi 创建工具API控制器
func NewToolApi(svc *service.ToolService) *ToolApi {
	return &ToolApi{
		logger:      logger.GetSugaredLogger(),
		toolService: svc,
	}
}

// List 获取工具列表
func (api *ToolApi) List(c *gin.Context) {
	page, limit := dto.ParsePage(c.Query("page"), c.Query("limit"))
	query := &dto.ToolListQuery{
		Category: c.Query("category"),
		Featured: c.Query("featured") == "true",
		Trending: c.Query("trending") == "true",
		Latest:   c.Query("latest") == "true",
		Search:   c.Query("search"),
		Page:     page,
		Limit:    limit,
	}

	result, err := api.toolService.List(c.Request.Context(), query)
	if err != nil {
		handleServiceError(c, err, "获取工具列表失败")
		return
	}
	response.Success(c, result)
}

// GetDetail 获取工具详情
func (api *ToolApi) GetDetail(c *gin.Context) {
	tool, err := api.toolService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "获取工具详情失败")
		return
	}
	response.Success(c, tool)
}

// Create 创建工具
func (api *ToolApi) Create(c *gin.Context) {
	var req dto.ToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	tool, err := api.toolService.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "创建工具失败")
		return
	}
	response.Created(c, tool)
}

// Update 更新工具
func (api *ToolApi) Update(c *gin.Context) {
	var req dto.ToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	tool, err := api.toolService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err, "更新工具失败")
		return
	}
	response.Success(c, tool)
}

// Delete 删除工具
func (api *ToolApi) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := api.toolService.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err, "删除工具失败")
		return
	}
	response.Success(c, gin.H{"id": id})
}

// CreateReview 添加工具评价
func (api *ToolApi) CreateReview(c *gin.Context) {
	var req dto.ReviewCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	review, err := api.toolService.CreateReview(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err, "添加评价失败")
		return
	}
	response.Created(c, review)
}

// DeleteReview 删除工具评价
func (api *ToolApi) DeleteReview(c *gin.Context) {
	reviewID := c.Param("reviewId")
	if err := api.toolService.DeleteReview(c.Request.Context(), c.Param("id"), reviewID); err != nil {
		handleServiceError(c, err, "删除评价失败")
		return
	}
	response.Success(c, gin.H{"id": reviewID})
}
