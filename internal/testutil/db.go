// Package testutil 提供测试用的内存数据库与种子数据
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/nsxzhou1114/aihub-api/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB 创建独立的内存SQLite数据库并完成建表
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 单连接避免内存库在连接间不可见以及写锁竞争
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, model.InitTables(db))
	return db
}

// SeedCategory 写入分类
func SeedCategory(t testing.TB, db *gorm.DB, id, name string) *model.Category {
	t.Helper()
	c := &model.Category{
		Base:        model.Base{ID: id},
		Name:        name,
		Description: name + " tools",
		Icon:        "🧰",
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

// SeedTool 写入工具，不刷新分类计数
func SeedTool(t testing.TB, db *gorm.DB, id, categoryID string, mutate func(*model.Tool)) *model.Tool {
	t.Helper()
	tool := &model.Tool{
		Base:        model.Base{ID: id},
		Name:        "Tool " + id,
		Description: "description of " + id,
		CategoryID:  categoryID,
		Pricing:     model.PricingFree,
		Icon:        "🤖",
		Tags:        model.StringList{},
	}
	if mutate != nil {
		mutate(tool)
	}
	require.NoError(t, db.Create(tool).Error)
	return tool
}

// SeedTutorial 写入教程
func SeedTutorial(t testing.TB, db *gorm.DB, id, slug string, published bool) *model.Tutorial {
	t.Helper()
	tut := &model.Tutorial{
		Base:        model.Base{ID: id},
		Slug:        slug,
		Title:       "Tutorial " + slug,
		Description: "about " + slug,
		Level:       model.LevelBeginner,
		Tools:       model.StringList{},
		Published:   published,
	}
	require.NoError(t, db.Create(tut).Error)
	return tut
}
