package dto

import "time"

// NewsRequest 创建/更新资讯请求，缺省字段由服务端补全
type NewsRequest struct {
	Title     string   `json:"title" binding:"required,max=255"`
	Date      string   `json:"date" binding:"omitempty,max=32"`
	Category  string   `json:"category" binding:"omitempty,max=64"`
	Summary   string   `json:"summary" binding:"omitempty,max=1000"`
	Content   string   `json:"content" binding:"required"`
	Image     string   `json:"image" binding:"omitempty,max=32"`
	Tags      []string `json:"tags" binding:"omitempty,dive,max=50"`
	Published *bool    `json:"published"`
}

// NewsListQuery 资讯列表查询
type NewsListQuery struct {
	Category string
	Page     int
	Limit    int
}

// NewsResponse 资讯响应
type NewsResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	Category    string    `json:"category"`
	Summary     string    `json:"summary"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"contentHtml,omitempty"`
	Image       string    `json:"image"`
	Tags        []string  `json:"tags"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewsListResponse 资讯列表响应
type NewsListResponse struct {
	News       []NewsResponse `json:"news"`
	Pagination Pagination     `json:"pagination"`
}
