package dto

import "time"

// ToolRequest 创建/更新工具请求，更新时同样整体覆盖
type ToolRequest struct {
	Name        string   `json:"name" binding:"required,max=100"`
	Description string   `json:"description" binding:"required"`
	CategoryID  string   `json:"categoryId" binding:"required,max=64"`
	Pricing     string   `json:"pricing" binding:"required,oneof=free paid freemium"`
	Icon        string   `json:"icon" binding:"required,max=32"`
	Rating      float64  `json:"rating" binding:"min=0,max=5"`
	ReviewCount int      `json:"reviewCount" binding:"min=0"`
	Tags        []string `json:"tags" binding:"omitempty,max=20,dive,max=50"`
	Website     string   `json:"website" binding:"omitempty,max=255"`
	Featured    bool     `json:"featured"`
	Trending    bool     `json:"trending"`
	Latest      bool     `json:"latest"`
}

// ToolListQuery 工具列表查询
type ToolListQuery struct {
	Category string
	Featured bool
	Trending bool
	Latest   bool
	Search   string
	Page     int
	Limit    int
}

// CategoryBrief 分类简要信息
type CategoryBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// ToolResponse 工具响应
type ToolResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	CategoryID  string           `json:"categoryId"`
	Category    *CategoryBrief   `json:"category,omitempty"`
	Pricing     string           `json:"pricing"`
	Rating      float64          `json:"rating"`
	ReviewCount int              `json:"reviewCount"`
	Tags        []string         `json:"tags"`
	Icon        string           `json:"icon"`
	Website     string           `json:"website"`
	Featured    bool             `json:"featured"`
	Trending    bool             `json:"trending"`
	Latest      bool             `json:"latest"`
	Reviews     []ReviewResponse `json:"reviews,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// ToolListResponse 工具列表响应
type ToolListResponse struct {
	Tools      []ToolResponse `json:"tools"`
	Pagination Pagination     `json:"pagination"`
}

// ReviewCreateRequest 创建评价请求
type ReviewCreateRequest struct {
	UserName string `json:"userName" binding:"required,max=64"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Content  string `json:"content" binding:"max=2000"`
}

// ReviewResponse 评价响应
type ReviewResponse struct {
	ID        string    `json:"id"`
	ToolID    string    `json:"toolId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
