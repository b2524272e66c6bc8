package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nsxzhou1114/aihub-api/internal/dto"
	"github.com/nsxzhou1114/aihub-api/internal/logger"
	"github.com/nsxzhou1114/aihub-api/internal/model"
	"github.com/nsxzhou1114/aihub-api/pkg/cache"
	"github.com/nsxzhou1114/aihub-api/pkg/idgen"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 资讯缺省值
const (
	DefaultNewsImage    = "📰"
	DefaultNewsCategory = "行业动态"
	NewsSummaryLength   = 120
	NewsDateLayout      = "2006-01-02"
)

var now = time.Now

// NewsService 资讯服务
type NewsService struct {
	db     *gorm.DB
	cache  cache.Cache
	logger *zap.SugaredLogger
}

// NewNewsService 创建资讯服务实例
func NewNewsService(db *gorm.DB, c cache.Cache) *NewsService {
	return &NewsService{
		db:     db,
		cache:  c,
		logger: logger.GetSugaredLogger(),
	}
}

func newsFilter(db *gorm.DB, q *dto.NewsListQuery, includeUnpublished bool) *gorm.DB {
	query := db.Model(&model.News{})
	if !includeUnpublished {
		query = query.Where("published = ?", true)
	}
	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	return query
}

// List 分页获取资讯，按日期倒序
func (s *NewsService) List(ctx context.Context, q *dto.NewsListQuery, includeUnpublished bool) (*dto.NewsListResponse, error) {
	db := s.db.WithContext(ctx)

	var total int64
	if err := newsFilter(db, q, includeUnpublished).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("统计资讯数量失败: %w", err)
	}

	var items []model.News
	if err := newsFilter(db, q, includeUnpublished).
		Order("date DESC, created_at DESC").
		Offset(dto.Offset(q.Page, q.Limit)).
		Limit(q.Limit).
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("查询资讯列表失败: %w", err)
	}

	list := make([]dto.NewsResponse, 0, len(items))
	for i := range items {
		list = append(list, toNewsResponse(&items[i], false))
	}
	return &dto.NewsListResponse{
		News:       list,
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}

func (s *NewsService) find(db *gorm.DB, id string) (*model.News, error) {
	var news model.News
	if err := db.Where("id = ?", id).First(&news).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("资讯不存在")
		}
		return nil, err
	}
	return &news, nil
}

// GetByID 获取资讯详情
func (s *NewsService) GetByID(ctx context.Context, id string, renderHTML bool) (*dto.NewsResponse, error) {
	news, err := s.find(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	resp := toNewsResponse(news, renderHTML)
	return &resp, nil
}

// applyNewsRequest 写入请求字段并补全缺省值，published 为空时保留原值
func applyNewsRequest(news *model.News, req *dto.NewsRequest) {
	news.Title = req.Title
	news.Content = req.Content
	news.Date = req.Date
	if news.Date == "" {
		news.Date = now().Format(NewsDateLayout)
	}
	news.Category = req.Category
	if news.Category == "" {
		news.Category = DefaultNewsCategory
	}
	news.Image = req.Image
	if news.Image == "" {
		news.Image = DefaultNewsImage
	}
	news.Summary = req.Summary
	if news.Summary == "" {
		news.Summary = PlainExcerpt(req.Content, NewsSummaryLength)
	}
	news.Tags = model.StringList(req.Tags)
	if req.Published != nil {
		news.Published = *req.Published
	}
}

// Create 创建资讯
func (s *NewsService) Create(ctx context.Context, req *dto.NewsRequest) (*dto.NewsResponse, error) {
	news := &model.News{
		Base:      model.Base{ID: idgen.New("news")},
		Published: true,
	}
	applyNewsRequest(news, req)

	if err := s.db.WithContext(ctx).Create(news).Error; err != nil {
		return nil, err
	}

	invalidate(ctx, s.cache, cache.StatisticsKey)
	s.logger.Infow("创建资讯", "id", news.ID, "title", news.Title)
	resp := toNewsResponse(news, false)
	return &resp, nil
}

// Update 更新资讯
func (s *NewsService) Update(ctx context.Context, id string, req *dto.NewsRequest) (*dto.NewsResponse, error) {
	db := s.db.WithContext(ctx)
	news, err := s.find(db, id)
	if err != nil {
		return nil, err
	}
	applyNewsRequest(news, req)

	if err := db.Model(news).Select("*").Omit("id", "created_at").Updates(news).Error; err != nil {
		return nil, err
	}

	invalidate(ctx, s.cache, cache.StatisticsKey)
	return s.GetByID(ctx, id, false)
}

// Delete 删除资讯
func (s *NewsService) Delete(ctx context.Context, id string) error {
	db := s.db.WithContext(ctx)
	news, err := s.find(db, id)
	if err != nil {
		return err
	}
	if err := db.Delete(news).Error; err != nil {
		return err
	}

	invalidate(ctx, s.cache, cache.StatisticsKey)
	s.logger.Infow("删除资讯", "id", id)
	return nil
}
