package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/nsxzhou1114/aihub-api/internal/dto"
	"github.com/nsxzhou1114/aihub-api/internal/logger"
	"github.com/nsxzhou1114/aihub-api/internal/service"
	"github.com/nsxzhou1114/aihub-api/pkg/response"
	"go.uber.org/zap"
)

// TutorialApi 教程与章节API控制器
type TutorialApi struct {
	logger          *zap.SugaredLogger
	tutorialService *service.TutorialService
}

// NewTutorialApi 创建教程API控制器
func NewTutorialApi(svc *service.TutorialService) *TutorialApi {
	return &TutorialApi{
		logger:          logger.GetSugaredLogger(),
		tutorialService: svc,
	}
}

// List 获取已发布教程
func (api *TutorialApi) List(c *gin.Context) {
	tutorials, err := api.tutorialService.List(c.Request.Context(), c.Query("level"), false)
	if err != nil {
		handleServiceError(c, err, "获取教程列表失败")
		return
	}
	response.Success(c, tutorials)
}

// AdminList 获取全部教程，包括未发布
func (api *TutorialApi) AdminList(c *gin.Context) {
	tutorials, err := api.tutorialService.List(c.Request.Context(), c.Query("level"), true)
	if err != nil {
		handleServiceError(c, err, "获取教程列表失败")
		return
	}
	response.Success(c, tutorials)
}

// GetDetail 根据slug获取教程
func (api *TutorialApi) GetDetail(c *gin.Context) {
	tutorial, err := api.tutorialService.GetBySlug(c.Request.Context(), c.Param("slug"), wantsHTML(c))
	if err != nil {
		handleServiceError(c, err, "获取教程详情失败")
		return
	}
	response.Success(c, tutorial)
}

// Create 创建教程
func (api *TutorialApi) Create(c *gin.Context) {
	var req dto.TutorialCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	tutorial, err := api.tutorialService.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "创建教程失败")
		return
	}
	response.Created(c, tutorial)
}

// Update 更新教程
func (api *TutorialApi) Update(c *gin.Context) {
	var req dto.TutorialUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	tutorial, err := api.tutorialService.Update(c.Request.Context(), c.Param("slug"), &req)
	if err != nil {
		handleServiceError(c, err, "更新教程失败")
		return
	}
	response.Success(c, tutorial)
}

// Delete 删除教程
func (api *TutorialApi) Delete(c *gin.Context) {
	slug := c.Param("slug")
	if err := api.tutorialService.Delete(c.Request.Context(), slug); err != nil {
		handleServiceError(c, err, "删除教程失败")
		return
	}
	response.Success(c, gin.H{"slug": slug})
}

// ListChapters 获取章节列表
func (api *TutorialApi) ListChapters(c *gin.Context) {
	tutorialID := c.Query("tutorialId")
	if tutorialID == "" {
		response.BadRequest(c, "缺少参数 tutorialId", nil)
		return
	}

	chapters, err := api.tutorialService.ListChapters(c.Request.Context(), tutorialID)
	if err != nil {
		handleServiceError(c, err, "获取章节列表失败")
		return
	}
	response.Success(c, chapters)
}

// CreateChapter 创建章节
func (api *TutorialApi) CreateChapter(c *gin.Context) {
	var req dto.ChapterCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	chapter, err := api.tutorialService.CreateChapter(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "创建章节失败")
		return
	}
	response.Created(c, chapter)
}

// UpdateChapter 更新章节
func (api *TutorialApi) UpdateChapter(c *gin.Context) {
	var req dto.ChapterUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	chapter, err := api.tutorialService.UpdateChapter(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "更新章节失败")
		return
	}
	response.Success(c, chapter)
}

// DeleteChapter 删除章节
func (api *TutorialApi) DeleteChapter(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		response.BadRequest(c, "缺少参数 id", nil)
		return
	}

	if err := api.tutorialService.DeleteChapter(c.Request.Context(), id); err != nil {
		handleServiceError(c, err, "删除章节失败")
		return
	}
	response.Success(c, gin.H{"id": id})
}
