package service

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/nsxzhou1114/aihub-api/internal/dto"
	"github.com/nsxzhou1114/aihub-api/internal/model"
	"gorm.io/gorm"
)

// RSSService 已发布资讯的RSS订阅
type RSSService struct {
	db *gorm.DB
}

// NewRSSService 创建RSS服务实例
func NewRSSService(db *gorm.DB) *RSSService {
	return &RSSService{db: db}
}

// NewsFeed 生成最近 limit 条已发布资讯的 RSS 2.0 文档
func (s *RSSService) NewsFeed(ctx context.Context, baseURL string, limit int) (string, error) {
	if limit <= 0 {
		limit = dto.DefaultLimit
	}
	if limit > dto.MaxLimit {
		limit = dto.MaxLimit
	}

	var items []model.News
	if err := s.db.WithContext(ctx).
		Where("published = ?", true).
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&items).Error; err != nil {
		return "", fmt.Errorf("查询资讯失败: %w", err)
	}

	feed := buildNewsFeed(items, strings.TrimRight(baseURL, "/"))
	data, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("生成XML失败: %w", err)
	}
	return xml.Header + string(data), nil
}

func buildNewsFeed(items []model.News, baseURL string) *dto.RSSFeed {
	channel := dto.RSSChannel{
		Title:         "AI资讯",
		Description:   "AI行业最新资讯",
		Link:          baseURL,
		Language:      "zh-CN",
		LastBuildDate: now().Format(time.RFC1123Z),
		Generator:     "aihub-api",
		Items:         make([]dto.RSSItem, 0, len(items)),
	}

	for i := range items {
		news := &items[i]
		link := fmt.Sprintf("%s/news/%s", baseURL, news.ID)
		channel.Items = append(channel.Items, dto.RSSItem{
			Title:       news.Title,
			Description: news.Summary,
			Link:        link,
			PubDate:     newsPubDate(news),
			GUID:        link,
			Category:    news.Category,
		})
	}

	return &dto.RSSFeed{Version: "2.0", Channel: channel}
}

// newsPubDate 资讯日期无法解析时退回创建时间
func newsPubDate(news *model.News) string {
	if t, err := time.ParseInLocation(NewsDateLayout, news.Date, time.Local); err == nil {
		return t.Format(time.RFC1123Z)
	}
	return news.CreatedAt.Format(time.RFC1123Z)
}
