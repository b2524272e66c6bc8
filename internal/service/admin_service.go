package service

import (
	"github.com/nsxzhou1114/aihub-api/internal/config"
	"github.com/nsxzhou1114/aihub-api/internal/logger"
	"github.com/nsxzhou1114/aihub-api/pkg/auth"
	"go.uber.org/zap"
)

// AdminService 管理员认证服务，凭据来自配置
type AdminService struct {
	admin  func() config.AdminConfig
	logger *zap.SugaredLogger
}

// NewAdminService 创建管理员服务，admin 每次调用返回当前配置以支持热更新
func NewAdminService(admin func() config.AdminConfig) *AdminService {
	return &AdminService{
		admin:  admin,
		logger: logger.GetSugaredLogger(),
	}
}

// Config 返回当前管理员配置
func (s *AdminService) Config() config.AdminConfig {
	return s.admin()
}

func (s *AdminService) expected() auth.Credentials {
	cfg := s.admin()
	return auth.Credentials{Username: cfg.Username, Password: cfg.Password}
}

// Login 校验用户名密码，成功返回写入cookie的令牌
func (s *AdminService) Login(username, password string) (string, error) {
	given := auth.Credentials{Username: username, Password: password}
	if !given.Match(s.expected()) {
		s.logger.Warnw("管理员登录失败", "username", username)
		return "", &Error{Kind: ErrUnauthorized, Message: "用户名或密码错误"}
	}
	s.logger.Infow("管理员登录成功", "username", username)
	return auth.EncodeAdminToken(username, password), nil
}

// Verify 校验cookie中的令牌，返回用户名
func (s *AdminService) Verify(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	return auth.VerifyAdminToken(token, s.expected())
}
