package dto

// AdminLoginRequest 管理员登录请求
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminSessionResponse 管理员会话信息
type AdminSessionResponse struct {
	Username string `json:"username"`
}

// SiteResponse 站点公开配置
type SiteResponse struct {
	PublicAPIBaseURL string `json:"publicApiBaseUrl"`
}

// HealthResponse 健康检查
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// ReconcileResult 冗余计数校正结果
type ReconcileResult struct {
	Tutorials  int `json:"tutorials"`
	Categories int `json:"categories"`
}
