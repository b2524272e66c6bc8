package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/nsxzhou1114/aihub-api/internal/dto"
	"github.com/nsxzhou1114/aihub-api/internal/logger"
	"github.com/nsxzhou1114/aihub-api/internal/service"
	"github.com/nsxzhou1114/aihub-api/pkg/response"
	"go.uber.org/zap"
)

// CategoryApi 分类API控制器
type CategoryApi struct {
	logger          *zap.SugaredLogger
	categoryService *service.CategoryService
}

// NewCategoryApi 创建分类API控制器
func NewCategoryApi(svc *service.CategoryService) *CategoryApi {
	return &CategoryApi{
		logger:          logger.GetSugaredLogger(),
		categoryService: svc,
	}
}

// List 获取全部分类
func (api *CategoryApi) List(c *gin.Context) {
	categories, err := api.categoryService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "获取分类列表失败")
		return
	}
	response.Success(c, categories)
}

// GetDetail 获取分类详情
func (api *CategoryApi) GetDetail(c *gin.Context) {
	category, err := api.categoryService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "获取分类详情失败")
		return
	}
	response.Success(c, category)
}

// Create 创建分类
func (api *CategoryApi) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	category, err := api.categoryService.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "创建分类失败")
		return
	}
	response.Created(c, category)
}

// Update 更新分类
func (api *CategoryApi) Update(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	category, err := api.categoryService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err, "更新分类失败")
		return
	}
	response.Success(c, category)
}

// Delete 删除分类
func (api *CategoryApi) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := api.categoryService.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err, "删除分类失败")
		return
	}
	response.Success(c, gin.H{"id": id})
}
