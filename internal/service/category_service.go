package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nsxzhou1114/aihub-api/internal/dto"
	"github.com/nsxzhou1114/aihub-api/internal/logger"
	"github.com/nsxzhou1114/aihub-api/internal/model"
	"github.com/nsxzhou1114/aihub-api/pkg/cache"
	"github.com/nsxzhou1114/aihub-api/pkg/idgen"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CategoryService 分类服务
type CategoryService struct {
	db     *gorm.DB
	cache  cache.Cache
	logger *zap.SugaredLogger
}

// NewCategoryService 创建分类服务实例
func NewCategoryService(db *gorm.DB, c cache.Cache) *CategoryService {
	return &CategoryService{
		db:     db,
		cache:  c,
		logger: logger.GetSugaredLogger(),
	}
}

type categoryToolCount struct {
	CategoryID string
	Count      int64
}

// liveCounts 按工具表统计每个分类的工具数量
func liveCounts(db *gorm.DB) (map[string]int64, error) {
	var rows []categoryToolCount
	if err := db.Model(&model.Tool{}).
		Select("category_id, COUNT(*) AS count").
		Group("category_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.CategoryID] = r.Count
	}
	return counts, nil
}

// List 获取全部分类，工具数量为实时统计
func (s *CategoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	var cached []dto.CategoryResponse
	if err := s.cache.GetJSON(ctx, cache.CategoryListKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warnf("读取分类缓存失败: %v", err)
	}

	db := s.db.WithContext(ctx)
	var categories []model.Category
	if err := db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("查询分类列表失败: %w", err)
	}
	counts, err := liveCounts(db)
	if err != nil {
		return nil, fmt.Errorf("统计分类工具数量失败: %w", err)
	}

	list := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		list = append(list, toCategoryResponse(&categories[i], counts[categories[i].ID]))
	}

	if err := s.cache.SetJSON(ctx, cache.CategoryListKey, list, cache.CategoryListExpiration); err != nil {
		s.logger.Warnf("写入分类缓存失败: %v", err)
	}
	return list, nil
}

func (s *CategoryService) find(db *gorm.DB, id string) (*model.Category, error) {
	var category model.Category
	if err := db.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("分类不存在")
		}
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) toolCount(db *gorm.DB, id string) (int64, error) {
	var count int64
	err := db.Model(&model.Tool{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

// GetByID 获取分类详情
func (s *CategoryService) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	db := s.db.WithContext(ctx)
	category, err := s.find(db, id)
	if err != nil {
		return nil, err
	}
	count, err := s.toolCount(db, id)
	if err != nil {
		return nil, err
	}
	resp := toCategoryResponse(category, count)
	return &resp, nil
}

// Create 创建分类
func (s *CategoryService) Create(ctx context.Context, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	category := &model.Category{
		Base:        model.Base{ID: idgen.New("cat")},
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	}
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}

	invalidate(ctx, s.cache, cache.StatisticsKey, cache.CategoryListKey)
	s.logger.Infow("创建分类", "id", category.ID, "name", category.Name)
	resp := toCategoryResponse(category, 0)
	return &resp, nil
}

// Update 更新分类
func (s *CategoryService) Update(ctx context.Context, id string, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	db := s.db.WithContext(ctx)
	category, err := s.find(db, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
		"icon":        req.Icon,
	}
	if err := db.Model(category).Updates(updates).Error; err != nil {
		return nil, err
	}

	invalidate(ctx, s.cache, cache.StatisticsKey, cache.CategoryListKey)
	return s.GetByID(ctx, id)
}

// Delete 删除分类，分类下仍有工具时拒绝
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := s.find(tx, id)
		if err != nil {
			return err
		}
		count, err := s.toolCount(tx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return conflict("该分类下还有%d个工具，无法删除", count)
		}
		return tx.Delete(category).Error
	})
	if err != nil {
		return err
	}

	invalidate(ctx, s.cache, cache.StatisticsKey, cache.CategoryListKey)
	s.logger.Infow("删除分类", "id", id)
	return nil
}
