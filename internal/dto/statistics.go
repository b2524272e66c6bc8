package dto

import "time"

// StatisticsResponse 统计概览
type StatisticsResponse struct {
	Totals      TotalStats    `json:"totals"`
	Tools       ToolStats     `json:"tools"`
	Tutorials   TutorialStats `json:"tutorials"`
	News        NewsStats     `json:"news"`
	GeneratedAt time.Time     `json:"generatedAt"`
}

// TotalStats 各类数据总数
type TotalStats struct {
	Tools              int64 `json:"tools"`
	Categories         int64 `json:"categories"`
	Tutorials          int64 `json:"tutorials"`
	PublishedTutorials int64 `json:"publishedTutorials"`
	Chapters           int64 `json:"chapters"`
	News               int64 `json:"news"`
	PublishedNews      int64 `json:"publishedNews"`
	Reviews            int64 `json:"reviews"`
}

// ToolStats 工具统计
type ToolStats struct {
	Featured      int64           `json:"featured"`
	Trending      int64           `json:"trending"`
	Latest        int64           `json:"latest"`
	AverageRating float64         `json:"averageRating"`
	ByPricing     []PricingCount  `json:"byPricing"`
	ByCategory    []CategoryCount `json:"byCategory"`
}

// TutorialStats 教程统计
type TutorialStats struct {
	ByLevel []LevelCount `json:"byLevel"`
}

// NewsStats 资讯统计
type NewsStats struct {
	ByCategory []NewsCategoryCount `json:"byCategory"`
}

// PricingCount 按定价分组
type PricingCount struct {
	Pricing string `json:"pricing"`
	Count   int64  `json:"count"`
}

// CategoryCount 按分类分组
type CategoryCount struct {
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	Count      int64  `json:"count"`
}

// LevelCount 按难度分组
type LevelCount struct {
	Level string `json:"level"`
	Count int64  `json:"count"`
}

// NewsCategoryCount 按资讯分类分组
type NewsCategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}
