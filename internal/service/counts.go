package service

import (
	"math"

	"github.com/nsxzhou1114/aihub-api/internal/model"
	"gorm.io/gorm"
)

// refreshCategoryCount 按工具表重新计算分类下的工具数量
func refreshCategoryCount(tx *gorm.DB, categoryID string) error {
	if categoryID == "" {
		return nil
	}
	var count int64
	if err := tx.Model(&model.Tool{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return err
	}
	return tx.Model(&model.Category{}).Where("id = ?", categoryID).UpdateColumn("count", count).Error
}

// refreshChapterCount 按章节表重新计算教程的章节数
func refreshChapterCount(tx *gorm.DB, tutorialID string) error {
	var count int64
	if err := tx.Model(&model.TutorialChapter{}).Where("tutorial_id = ?", tutorialID).Count(&count).Error; err != nil {
		return err
	}
	return tx.Model(&model.Tutorial{}).Where("id = ?", tutorialID).UpdateColumn("chapter_count", count).Error
}

// applyReview 将一条评价计入或移出工具的评分与评价数，delta 为 1 或 -1。
// 评分以现有值为基数增量计算，管理员录入的评分与评价数不会被覆盖
func applyReview(tx *gorm.DB, tool *model.Tool, rating int, delta int) error {
	count := tool.ReviewCount + delta
	avg := 0.0
	if count > 0 {
		avg = (tool.Rating*float64(tool.ReviewCount) + float64(delta*rating)) / float64(count)
	} else {
		count = 0
	}
	avg = math.Min(math.Max(avg, 0), 5)
	tool.Rating, tool.ReviewCount = avg, count
	return tx.Model(&model.Tool{}).Where("id = ?", tool.ID).UpdateColumns(map[string]interface{}{
		"rating":       avg,
		"review_count": count,
	}).Error
}

func roundOne(v float64) float64 {
	return math.Round(v*10) / 10
}
