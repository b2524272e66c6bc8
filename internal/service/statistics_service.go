package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/nsxzhou1114/aihub-api/internal/dto"
	"github.com/nsxzhou1114/aihub-api/internal/logger"
	"github.com/nsxzhou1114/aihub-api/internal/model"
	"github.com/nsxzhou1114/aihub-api/pkg/cache"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// StatisticsService 统计服务
type StatisticsService struct {
	db     *gorm.DB
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.SugaredLogger
}

// NewStatisticsService 创建统计服务实例，ttl 为0时使用默认过期时间
func NewStatisticsService(db *gorm.DB, c cache.Cache, ttl time.Duration) *StatisticsService {
	if ttl <= 0 {
		ttl = cache.StatisticsExpiration
	}
	return &StatisticsService{
		db:     db,
		cache:  c,
		ttl:    ttl,
		logger: logger.GetSugaredLogger(),
	}
}

// Overview 获取统计概览，优先读取缓存
func (s *StatisticsService) Overview(ctx context.Context) (*dto.StatisticsResponse, error) {
	var cached dto.StatisticsResponse
	if err := s.cache.GetJSON(ctx, cache.StatisticsKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warnf("读取统计缓存失败: %v", err)
	}

	stats, err := s.Compute(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetJSON(ctx, cache.StatisticsKey, stats, s.ttl); err != nil {
		s.logger.Warnf("写入统计缓存失败: %v", err)
	}
	return stats, nil
}

// Compute 并发执行各项统计查询
func (s *StatisticsService) Compute(ctx context.Context) (*dto.StatisticsResponse, error) {
	stats := &dto.StatisticsResponse{
		Tools: dto.ToolStats{
			ByPricing:  []dto.PricingCount{},
			ByCategory: []dto.CategoryCount{},
		},
		Tutorials: dto.TutorialStats{ByLevel: []dto.LevelCount{}},
		News:      dto.NewsStats{ByCategory: []dto.NewsCategoryCount{}},
	}

	g, gctx := errgroup.WithContext(ctx)
	db := func() *gorm.DB { return s.db.WithContext(gctx) }
	count := func(dest *int64, m interface{}, where ...interface{}) {
		g.Go(func() error {
			query := db().Model(m)
			if len(where) > 0 {
				query = query.Where(where[0], where[1:]...)
			}
			return query.Count(dest).Error
		})
	}

	t := &stats.Totals
	count(&t.Tools, &model.Tool{})
	count(&t.Categories, &model.Category{})
	count(&t.Tutorials, &model.Tutorial{})
	count(&t.PublishedTutorials, &model.Tutorial{}, "published = ?", true)
	count(&t.Chapters, &model.TutorialChapter{})
	count(&t.News, &model.News{})
	count(&t.PublishedNews, &model.News{}, "published = ?", true)
	count(&t.Reviews, &model.Review{})

	ts := &stats.Tools
	count(&ts.Featured, &model.Tool{}, "featured = ?", true)
	count(&ts.Trending, &model.Tool{}, "trending = ?", true)
	count(&ts.Latest, &model.Tool{}, "latest = ?", true)

	g.Go(func() error {
		var avg sql.NullFloat64
		if err := db().Model(&model.Tool{}).Select("AVG(rating)").Row().Scan(&avg); err != nil {
			return err
		}
		ts.AverageRating = roundOne(avg.Float64)
		return nil
	})
	g.Go(func() error {
		return db().Model(&model.Tool{}).
			Select("pricing, COUNT(*) AS count").
			Group("pricing").
			Order("pricing ASC").
			Scan(&ts.ByPricing).Error
	})
	g.Go(func() error {
		return db().Table(model.Category{}.TableName()).
			Select("categories.id AS category_id, categories.name, categories.icon, COUNT(tools.id) AS count").
			Joins("LEFT JOIN tools ON tools.category_id = categories.id").
			Group("categories.id, categories.name, categories.icon").
			Order("count DESC, categories.name ASC").
			Scan(&ts.ByCategory).Error
	})
	g.Go(func() error {
		return db().Model(&model.Tutorial{}).
			Select("level, COUNT(*) AS count").
			Group("level").
			Order("level ASC").
			Scan(&stats.Tutorials.ByLevel).Error
	})
	g.Go(func() error {
		return db().Model(&model.News{}).
			Select("category, COUNT(*) AS count").
			Group("category").
			Order("count DESC, category ASC").
			Scan(&stats.News.ByCategory).Error
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if ts.ByPricing == nil {
		ts.ByPricing = []dto.PricingCount{}
	}
	if ts.ByCategory == nil {
		ts.ByCategory = []dto.CategoryCount{}
	}
	if stats.Tutorials.ByLevel == nil {
		stats.Tutorials.ByLevel = []dto.LevelCount{}
	}
	if stats.News.ByCategory == nil {
		stats.News.ByCategory = []dto.NewsCategoryCount{}
	}
	stats.GeneratedAt = now().UTC()
	return stats, nil
}
