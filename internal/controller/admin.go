package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/nsxzhou1114/aihub-api/internal/dto"
	"github.com/nsxzhou1114/aihub-api/internal/logger"
	"github.com/nsxzhou1114/aihub-api/internal/service"
	"github.com/nsxzhou1114/aihub-api/pkg/response"
	"go.uber.org/zap"
)

// AdminApi 后台登录API控制器
type AdminApi struct {
	logger       *zap.SugaredLogger
	adminService *service.AdminService
}

// NewAdminApi 创建后台登录API控制器
func NewAdminApi(svc *service.AdminService) *AdminApi {
	return &AdminApi{
		logger:       logger.GetSugaredLogger(),
		adminService: svc,
	}
}

// Login 管理员登录，成功后写入 HttpOnly cookie
func (api *AdminApi) Login(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	token, err := api.adminService.Login(req.Username, req.Password)
	if err != nil {
		handleServiceError(c, err, "管理员登录失败")
		return
	}

	cfg := api.adminService.Config()
	c.SetCookie(cfg.CookieName, token, cfg.CookieMaxAge, "/", "", cfg.CookieSecure, true)
	response.Success(c, dto.AdminSessionResponse{Username: req.Username})
}

// Logout 退出登录，清除cookie
func (api *AdminApi) Logout(c *gin.Context) {
	cfg := api.adminService.Config()
	c.SetCookie(cfg.CookieName, "", -1, "/", "", cfg.CookieSecure, true)
	response.Success(c, gin.H{"loggedOut": true})
}

// Session 查询当前管理员会话
func (api *AdminApi) Session(c *gin.Context) {
	cfg := api.adminService.Config()
	token, _ := c.Cookie(cfg.CookieName)
	username, ok := api.adminService.Verify(token)
	if !ok {
		response.Unauthorized(c, "未登录")
		return
	}
	response.Success(c, dto.AdminSessionResponse{Username: username})
}
