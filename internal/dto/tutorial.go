package dto

import "time"

// TutorialCreateRequest 创建教程请求
type TutorialCreateRequest struct {
	Slug        string   `json:"slug" binding:"required,max=128,slug"`
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"required"`
	Content     string   `json:"content"`
	Icon        string   `json:"icon" binding:"omitempty,max=32"`
	Level       string   `json:"level" binding:"omitempty,oneof=入门 中级 高级"`
	Duration    string   `json:"duration" binding:"omitempty,max=64"`
	Tools       []string `json:"tools" binding:"omitempty,dive,max=100"`
	Published   bool     `json:"published"`
}

// TutorialUpdateRequest 更新教程请求，slug 创建后不可修改
type TutorialUpdateRequest struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"required"`
	Content     string   `json:"content"`
	Icon        string   `json:"icon" binding:"omitempty,max=32"`
	Level       string   `json:"level" binding:"omitempty,oneof=入门 中级 高级"`
	Duration    string   `json:"duration" binding:"omitempty,max=64"`
	Tools       []string `json:"tools" binding:"omitempty,dive,max=100"`
	Published   bool     `json:"published"`
}

// TutorialResponse 教程响应
type TutorialResponse struct {
	ID           string            `json:"id"`
	Slug         string            `json:"slug"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Content      string            `json:"content"`
	ContentHTML  string            `json:"contentHtml,omitempty"`
	Icon         string            `json:"icon"`
	Level        string            `json:"level"`
	Duration     string            `json:"duration"`
	Tools        []string          `json:"tools"`
	Published    bool              `json:"published"`
	ChapterCount int               `json:"chapterCount"`
	Chapters     []ChapterResponse `json:"chapters"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// ChapterCreateRequest 创建章节请求，order 为0时追加到末尾
type ChapterCreateRequest struct {
	TutorialID string `json:"tutorialId" binding:"required"`
	Title      string `json:"title" binding:"required,max=200"`
	Content    string `json:"content"`
	Order      int    `json:"order" binding:"min=0"`
}

// ChapterUpdateRequest 更新章节请求
type ChapterUpdateRequest struct {
	ID      string `json:"id" binding:"required"`
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content"`
	Order   int    `json:"order" binding:"min=0"`
}

// ChapterResponse 章节响应
type ChapterResponse struct {
	ID          string    `json:"id"`
	TutorialID  string    `json:"tutorialId"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"contentHtml,omitempty"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
