package controller

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/nsxzhou1114/aihub-api/internal/service"
	"github.com/nsxzhou1114/aihub-api/pkg/response"
)

// handleServiceError 将业务错误映射为对应的HTTP响应
func handleServiceError(c *gin.Context, err error, context string) {
	message := err.Error()
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, message)
	case errors.Is(err, service.ErrConflict):
		response.Conflict(c, message)
	case errors.Is(err, service.ErrInvalid):
		response.BadRequest(c, message, nil)
	case errors.Is(err, service.ErrUnauthorized):
		response.Unauthorized(c, message)
	default:
		response.HandleError(c, err, context)
	}
}

// wantsHTML 是否请求渲染后的HTML内容
func wantsHTML(c *gin.Context) bool {
	return c.Query("render") == "html"
}
