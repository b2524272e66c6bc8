package service

import (
	"context"
	"testing"

	"github.com/nsxzhou1114/aihub-api/internal/model"
	"github.com/nsxzhou1114/aihub-api/internal/testutil"
	"github.com/nsxzhou1114/aihub-api/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileFixesDriftedCounts(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedCategory(t, db, "cat_1", "Chat")
	testutil.SeedCategory(t, db, "cat_2", "Image")
	testutil.SeedTool(t, db, "t1", "cat_1", nil)
	testutil.SeedTool(t, db, "t2", "cat_1", nil)
	testutil.SeedTutorial(t, db, "tut_1", "a", true)
	require.NoError(t, db.Create(&model.TutorialChapter{Base: model.Base{ID: "ch_1"}, TutorialID: "tut_1", Title: "x", Order: 1}).Error)
	require.NoError(t, db.Model(&model.Category{}).Where("id = ?", "cat_2").UpdateColumn("count", 9).Error)

	svc := NewReconcileService(db, cache.Nop{})
	result, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Tutorials)
	assert.Equal(t, 2, result.Categories)

	var tut model.Tutorial
	require.NoError(t, db.First(&tut, "id = ?", "tut_1").Error)
	assert.Equal(t, 1, tut.ChapterCount)

	var categories []model.Category
	require.NoError(t, db.Order("id").Find(&categories).Error)
	assert.Equal(t, 2, categories[0].Count)
	assert.Equal(t, 0, categories[1].Count)

	again, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, again.Tutorials+again.Categories)
}

func TestReconcileKeepsAdminEnteredRating(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedCategory(t, db, "cat_1", "Chat")
	testutil.SeedTool(t, db, "t1", "cat_1", func(tool *model.Tool) {
		tool.Rating = 4.8
		tool.ReviewCount = 1200
	})

	_, err := NewReconcileService(db, cache.Nop{}).Run(context.Background())
	require.NoError(t, err)

	var tool model.Tool
	require.NoError(t, db.First(&tool, "id = ?", "t1").Error)
	assert.Equal(t, 4.8, tool.Rating)
	assert.Equal(t, 1200, tool.ReviewCount)
}
