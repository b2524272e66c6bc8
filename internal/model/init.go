package model

import (
	"fmt"

	"github.com/nsxzhou1114/aihub-api/internal/logger"
	"gorm.io/gorm"
)

// 需要自动迁移的模型列表，顺序与外键依赖一致
var models = []interface{}{
	&Category{},
	&Tool{},
	&Review{},
	&Tutorial{},
	&TutorialChapter{},
	&News{},
}

// Tables 可导入导出的表，值为目标切片的构造函数
var Tables = map[string]func() interface{}{
	Category{}.TableName():        func() interface{} { return &[]Category{} },
	Tool{}.TableName():            func() interface{} { return &[]Tool{} },
	Review{}.TableName():          func() interface{} { return &[]Review{} },
	Tutorial{}.TableName():        func() interface{} { return &[]Tutorial{} },
	TutorialChapter{}.TableName(): func() interface{} { return &[]TutorialChapter{} },
	News{}.TableName():            func() interface{} { return &[]News{} },
}

// InitTables 初始化数据库表
func InitTables(db *gorm.DB) error {
	logger.Info("开始初始化数据库表...")

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("自动迁移数据库表失败: %w", err)
	}

	logger.Info("数据库表初始化完成")
	return nil
}
