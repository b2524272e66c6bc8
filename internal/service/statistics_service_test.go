package service

import (
	"context"
	"testing"

	"github.com/nsxzhou1114/aihub-api/internal/dto"
	"github.com/nsxzhou1114/aihub-api/internal/model"
	"github.com/nsxzhou1114/aihub-api/internal/testutil"
	"github.com/nsxzhou1114/aihub-api/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsTotals(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedCategory(t, db, "cat_1", "Chat")
	testutil.SeedCategory(t, db, "cat_2", "Image")
	testutil.SeedTool(t, db, "t1", "cat_1", func(tool *model.Tool) {
		tool.Featured = true
		tool.Rating = 4.0
	})
	testutil.SeedTool(t, db, "t2", "cat_1", func(tool *model.Tool) {
		tool.Pricing = model.PricingPaid
		tool.Rating = 5.0
	})
	testutil.SeedTutorial(t, db, "tut_1", "a", true)
	testutil.SeedTutorial(t, db, "tut_2", "b", false)

	ctx := context.Background()
	tutorials := NewTutorialService(db, cache.Nop{})
	_, err := tutorials.CreateChapter(ctx, &dto.ChapterCreateRequest{TutorialID: "tut_1", Title: "c"})
	require.NoError(t, err)
	news := NewNewsService(db, cache.Nop{})
	_, err = news.Create(ctx, &dto.NewsRequest{Title: "n", Content: "c"})
	require.NoError(t, err)

	stats, err := NewStatisticsService(db, cache.Nop{}, 0).Compute(ctx)
	require.NoError(t, err)

	assert.Equal(t, dto.TotalStats{
		Tools:              2,
		Categories:         2,
		Tutorials:          2,
		PublishedTutorials: 1,
		Chapters:           1,
		News:               1,
		PublishedNews:      1,
		Reviews:            0,
	}, stats.Totals)
	assert.Equal(t, int64(1), stats.Tools.Featured)
	assert.Equal(t, 4.5, stats.Tools.AverageRating)
	assert.ElementsMatch(t, []dto.PricingCount{{Pricing: "free", Count: 1}, {Pricing: "paid", Count: 1}}, stats.Tools.ByPricing)
	require.Len(t, stats.Tools.ByCategory, 2)
	assert.Equal(t, dto.CategoryCount{CategoryID: "cat_1", Name: "Chat", Icon: "🧰", Count: 2}, stats.Tools.ByCategory[0])
	assert.Equal(t, int64(0), stats.Tools.ByCategory[1].Count)
	assert.Equal(t, []dto.LevelCount{{Level: model.LevelBeginner, Count: 2}}, stats.Tutorials.ByLevel)
	assert.Equal(t, []dto.NewsCategoryCount{{Category: DefaultNewsCategory, Count: 1}}, stats.News.ByCategory)
	assert.False(t, stats.GeneratedAt.IsZero())
}

func TestStatisticsEmptyDatabase(t *testing.T) {
	db := testutil.NewDB(t)

	stats, err := NewStatisticsService(db, cache.Nop{}, 0).Compute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Totals.Tools)
	assert.Zero(t, stats.Tools.AverageRating)
	assert.NotNil(t, stats.Tools.ByPricing)
	assert.NotNil(t, stats.Tools.ByCategory)
	assert.NotNil(t, stats.Tutorials.ByLevel)
	assert.NotNil(t, stats.News.ByCategory)
}

func TestStatisticsCachedUntilWrite(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedCategory(t, db, "cat_1", "Chat")
	c := cache.NewMemoryCache()
	stats := NewStatisticsService(db, c, 0)
	tools := NewToolService(db, c)
	ctx := context.Background()

	first, err := stats.Overview(ctx)
	require.NoError(t, err)
	assert.Zero(t, first.Totals.Tools)

	testutil.SeedTool(t, db, "t1", "cat_1", nil)
	cached, err := stats.Overview(ctx)
	require.NoError(t, err)
	assert.Zero(t, cached.Totals.Tools)

	_, err = tools.Create(ctx, newToolRequest("cat_1"))
	require.NoError(t, err)
	fresh, err := stats.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), fresh.Totals.Tools)
}
