package service

import (
	"context"

	"github.com/nsxzhou1114/aihub-api/internal/dto"
	"github.com/nsxzhou1114/aihub-api/internal/logger"
	"github.com/nsxzhou1114/aihub-api/internal/model"
	"github.com/nsxzhou1114/aihub-api/pkg/cache"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReconcileService 校正冗余计数列（教程章节数、分类工具数）
type ReconcileService struct {
	db     *gorm.DB
	cache  cache.Cache
	logger *zap.SugaredLogger
}

// NewReconcileService 创建校正服务实例
func NewReconcileService(db *gorm.DB, c cache.Cache) *ReconcileService {
	return &ReconcileService{
		db:     db,
		cache:  c,
		logger: logger.GetSugaredLogger(),
	}
}

type groupCount struct {
	GroupKey string
	Count    int64
}

func groupCounts(db *gorm.DB, m interface{}, column string) (map[string]int64, error) {
	var rows []groupCount
	if err := db.Model(m).
		Select(column + " AS group_key, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.GroupKey] = r.Count
	}
	return counts, nil
}

// Run 执行一次校正，返回各类被修正的行数
func (s *ReconcileService) Run(ctx context.Context) (*dto.ReconcileResult, error) {
	result := &dto.ReconcileResult{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		chapters, err := groupCounts(tx, &model.TutorialChapter{}, "tutorial_id")
		if err != nil {
			return err
		}
		var tutorials []model.Tutorial
		if err := tx.Select("id", "chapter_count").Find(&tutorials).Error; err != nil {
			return err
		}
		for _, t := range tutorials {
			if int64(t.ChapterCount) == chapters[t.ID] {
				continue
			}
			if err := refreshChapterCount(tx, t.ID); err != nil {
				return err
			}
			result.Tutorials++
		}

		tools, err := groupCounts(tx, &model.Tool{}, "category_id")
		if err != nil {
			return err
		}
		var categories []model.Category
		if err := tx.Select("id", "count").Find(&categories).Error; err != nil {
			return err
		}
		for _, c := range categories {
			if int64(c.Count) == tools[c.ID] {
				continue
			}
			if err := refreshCategoryCount(tx, c.ID); err != nil {
				return err
			}
			result.Categories++
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Tutorials+result.Categories > 0 {
		invalidate(ctx, s.cache, cache.StatisticsKey, cache.CategoryListKey)
		s.logger.Infow("计数校正完成", "tutorials", result.Tutorials, "categories", result.Categories)
	}
	return result, nil
}
