package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nsxzhou1114/aihub-api/internal/dto"
	"github.com/nsxzhou1114/aihub-api/internal/logger"
	"github.com/nsxzhou1114/aihub-api/internal/model"
	"github.com/nsxzhou1114/aihub-api/pkg/cache"
	"github.com/nsxzhou1114/aihub-api/pkg/idgen"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 详情页展示的最新评价数量
const recentReviewLimit = 10

// ToolService 工具服务
type ToolService struct {
	db     *gorm.DB
	cache  cache.Cache
	filter *SensitiveFilter
	logger *zap.SugaredLogger
}

// NewToolService 创建工具服务实例
func NewToolService(db *gorm.DB, c cache.Cache) *ToolService {
	return &ToolService{
		db:     db,
		cache:  c,
		logger: logger.GetSugaredLogger(),
	}
}

// UseFilter 设置评价内容的敏感词过滤器
func (s *ToolService) UseFilter(f *SensitiveFilter) *ToolService {
	s.filter = f
	return s
}

// LIKE 转义字符为 !
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// escapeLike 转义 LIKE 通配符，搜索按字面子串匹配
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// toolFilter 构建列表筛选条件，Count 与 Find 各调用一次以免复用语句
func toolFilter(db *gorm.DB, q *dto.ToolListQuery) *gorm.DB {
	query := db.Model(&model.Tool{})
	if q.Category != "" {
		query = query.Where("category_id = ?", q.Category)
	}
	if q.Featured {
		query = query.Where("featured = ?", true)
	}
	if q.Trending {
		query = query.Where("trending = ?", true)
	}
	if q.Latest {
		query = query.Where("latest = ?", true)
	}
	if q.Search != "" {
		like := "%" + escapeLike(q.Search) + "%"
		query = query.Where("name LIKE ? ESCAPE '!' OR description LIKE ? ESCAPE '!' OR tags LIKE ? ESCAPE '!'", like, like, like)
	}
	return query
}

// List 获取工具列表
func (s *ToolService) List(ctx context.Context, q *dto.ToolListQuery) (*dto.ToolListResponse, error) {
	db := s.db.WithContext(ctx)

	var total int64
	if err := toolFilter(db, q).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("统计工具数量失败: %w", err)
	}

	var tools []model.Tool
	if err := toolFilter(db, q).
		Preload("Category").
		Order("featured DESC, rating DESC, created_at DESC").
		Offset(dto.Offset(q.Page, q.Limit)).
		Limit(q.Limit).
		Find(&tools).Error; err != nil {
		return nil, fmt.Errorf("查询工具列表失败: %w", err)
	}

	items := make([]dto.ToolResponse, 0, len(tools))
	for i := range tools {
		items = append(items, toToolResponse(&tools[i]))
	}
	return &dto.ToolListResponse{
		Tools:      items,
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}

func (s *ToolService) find(db *gorm.DB, id string) (*model.Tool, error) {
	var tool model.Tool
	if err := db.Where("id = ?", id).First(&tool).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("工具不存在")
		}
		return nil, err
	}
	return &tool, nil
}

// GetByID 获取工具详情，包含分类与最新评价
func (s *ToolService) GetByID(ctx context.Context, id string) (*dto.ToolResponse, error) {
	var tool model.Tool
	err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC").Limit(recentReviewLimit)
		}).
		Where("id = ?", id).
		First(&tool).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("工具不存在")
		}
		return nil, err
	}
	resp := toToolResponse(&tool)
	return &resp, nil
}

func ensureCategory(tx *gorm.DB, categoryID string) error {
	var count int64
	if err := tx.Model(&model.Category{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return invalid("分类不存在: %s", categoryID)
	}
	return nil
}

func applyToolRequest(tool *model.Tool, req *dto.ToolRequest) {
	tool.Name = req.Name
	tool.Description = req.Description
	tool.CategoryID = req.CategoryID
	tool.Pricing = req.Pricing
	tool.Rating = req.Rating
	tool.ReviewCount = req.ReviewCount
	tool.Tags = model.StringList(req.Tags)
	tool.Icon = req.Icon
	tool.Website = req.Website
	tool.Featured = req.Featured
	tool.Trending = req.Trending
	tool.Latest = req.Latest
}

// Create 创建工具
func (s *ToolService) Create(ctx context.Context, req *dto.ToolRequest) (*dto.ToolResponse, error) {
	tool := &model.Tool{Base: model.Base{ID: idgen.New("tool")}}
	applyToolRequest(tool, req)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCategory(tx, tool.CategoryID); err != nil {
			return err
		}
		if err := tx.Create(tool).Error; err != nil {
			return err
		}
		return refreshCategoryCount(tx, tool.CategoryID)
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, s.cache, cache.StatisticsKey, cache.CategoryListKey)
	s.logger.Infow("创建工具", "id", tool.ID, "name", tool.Name)
	return s.GetByID(ctx, tool.ID)
}

// Update 整体覆盖工具字段
func (s *ToolService) Update(ctx context.Context, id string, req *dto.ToolRequest) (*dto.ToolResponse, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tool, err := s.find(tx, id)
		if err != nil {
			return err
		}
		oldCategoryID := tool.CategoryID
		if err := ensureCategory(tx, req.CategoryID); err != nil {
			return err
		}

		applyToolRequest(tool, req)
		tool.Category = nil
		if err := tx.Model(tool).Select("*").Omit("id", "created_at").Updates(tool).Error; err != nil {
			return err
		}

		if err := refreshCategoryCount(tx, oldCategoryID); err != nil {
			return err
		}
		if oldCategoryID != tool.CategoryID {
			return refreshCategoryCount(tx, tool.CategoryID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, s.cache, cache.StatisticsKey, cache.CategoryListKey)
	return s.GetByID(ctx, id)
}

// Delete 删除工具及其评价
func (s *ToolService) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tool, err := s.find(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Where("tool_id = ?", id).Delete(&model.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(tool).Error; err != nil {
			return err
		}
		return refreshCategoryCount(tx, tool.CategoryID)
	})
	if err != nil {
		return err
	}

	invalidate(ctx, s.cache, cache.StatisticsKey, cache.CategoryListKey)
	s.logger.Infow("删除工具", "id", id)
	return nil
}

// CreateReview 添加评价并重新计算工具评分
func (s *ToolService) CreateReview(ctx context.Context, toolID string, req *dto.ReviewCreateRequest) (*dto.ReviewResponse, error) {
	review := &model.Review{
		Base:     model.Base{ID: idgen.New("review")},
		ToolID:   toolID,
		UserName: s.filter.Clean(req.UserName),
		Rating:   req.Rating,
		Content:  s.filter.Clean(req.Content),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tool, err := s.find(tx, toolID)
		if err != nil {
			return err
		}
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		return applyReview(tx, tool, review.Rating, 1)
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, s.cache, cache.StatisticsKey)
	resp := toReviewResponse(review)
	return &resp, nil
}

// DeleteReview 删除评价并重新计算工具评分
func (s *ToolService) DeleteReview(ctx context.Context, toolID, reviewID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review model.Review
		if err := tx.Where("id = ? AND tool_id = ?", reviewID, toolID).First(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("评价不存在")
			}
			return err
		}
		tool, err := s.find(tx, toolID)
		if err != nil {
			return err
		}
		if err := tx.Delete(&review).Error; err != nil {
			return err
		}
		return applyReview(tx, tool, review.Rating, -1)
	})
	if err != nil {
		return err
	}

	invalidate(ctx, s.cache, cache.StatisticsKey)
	return nil
}
