package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/nsxzhou1114/aihub-api/internal/dto"
	"github.com/nsxzhou1114/aihub-api/internal/model"
	"github.com/nsxzhou1114/aihub-api/internal/testutil"
	"github.com/nsxzhou1114/aihub-api/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newToolRequest(categoryID string) *dto.ToolRequest {
	return &dto.ToolRequest{
		Name:        "X",
		Description: "Y",
		CategoryID:  categoryID,
		Pricing:     model.PricingFree,
		Icon:        "🤖",
	}
}

func TestToolCreateDefaults(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedCategory(t, db, "cat_1", "Chat")
	svc := NewToolService(db, cache.NewMemoryCache())

	tool, err := svc.Create(context.Background(), newToolRequest("cat_1"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(tool.ID, "tool_"))
	assert.Equal(t, 0.0, tool.Rating)
	assert.Equal(t, 0, tool.ReviewCount)
	assert.NotNil(t, tool.Tags)
	assert.Empty(t, tool.Tags)
	require.NotNil(t, tool.Category)
	assert.Equal(t, "Chat", tool.Category.Name)

	var category model.Category
	require.NoError(t, db.First(&category, "id = ?", "cat_1").Error)
	assert.Equal(t, 1, category.Count)
}

func TestToolCreateUnknownCategory(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewToolService(db, cache.Nop{})

	_, err := svc.Create(context.Background(), newToolRequest("cat_missing"))
	assert.ErrorIs(t, err, ErrInvalid)

	var count int64
	require.NoError(t, db.Model(&model.Tool{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestToolListFeaturedPagination(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedCategory(t, db, "cat_1", "Chat")
	for _, id := range []string{"t1", "t2", "t3"} {
		testutil.SeedTool(t, db, id, "cat_1", func(tool *model.Tool) { tool.Featured = true })
	}
	testutil.SeedTool(t, db, "t4", "cat_1", nil)
	testutil.SeedTool(t, db, "t5", "cat_1", nil)
	svc := NewToolService(db, cache.Nop{})

	result, err := svc.List(context.Background(), &dto.ToolListQuery{Featured: true, Page: 1, Limit: 5})
	require.NoError(t, err)

	assert.Len(t, result.Tools, 3)
	assert.Equal(t, int64(3), result.Pagination.Total)
	assert.Equal(t, 1, result.Pagination.TotalPages)
	assert.False(t, result.Pagination.HasNextPage)
	assert.False(t, result.Pagination.HasPrevPage)
	for _, tool := range result.Tools {
		assert.True(t, tool.Featured)
		require.NotNil(t, tool.Category)
	}
}

func TestToolListOrderAndSearch(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedCategory(t, db, "cat_1", "Chat")
	testutil.SeedCategory(t, db, "cat_2", "Image")
	testutil.SeedTool(t, db, "low", "cat_1", func(tool *model.Tool) { tool.Rating = 3.1 })
	testutil.SeedTool(t, db, "high", "cat_1", func(tool *model.Tool) { tool.Rating = 4.8 })
	testutil.SeedTool(t, db, "star", "cat_2", func(tool *model.Tool) {
		tool.Featured = true
		tool.Rating = 2.0
		tool.Tags = model.StringList{"diffusion", "art"}
	})
	svc := NewToolService(db, cache.Nop{})
	ctx := context.Background()

	all, err := svc.List(ctx, &dto.ToolListQuery{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, all.Tools, 3)
	assert.Equal(t, []string{"star", "high", "low"}, []string{all.Tools[0].ID, all.Tools[1].ID, all.Tools[2].ID})

	byTag, err := svc.List(ctx, &dto.ToolListQuery{Search: "diffusion", Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, byTag.Tools, 1)
	assert.Equal(t, "star", byTag.Tools[0].ID)
	assert.Equal(t, []string{"diffusion", "art"}, byTag.Tools[0].Tags)

	byCategory, err := svc.List(ctx, &dto.ToolListQuery{Category: "cat_1", Page: 2, Limit: 1})
	require.NoError(t, err)
	require.Len(t, byCategory.Tools, 1)
	assert.Equal(t, "low", byCategory.Tools[0].ID)
	assert.Equal(t, 2, byCategory.Pagination.TotalPages)
	assert.True(t, byCategory.Pagination.HasPrevPage)
	assert.False(t, byCategory.Pagination.HasNextPage)
}

func TestToolGetByIDNotFound(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewToolService(db, cache.Nop{})

	_, err := svc.GetByID(context.Background(), "tool_missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToolUpdateOverwritesAndMovesCategory(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedCategory(t, db, "cat_1", "Chat")
	testutil.SeedCategory(t, db, "cat_2", "Image")
	svc := NewToolService(db, cache.Nop{})
	ctx := context.Background()

	req := newToolRequest("cat_1")
	req.Tags = []string{"a"}
	req.Website = "https://example.com"
	req.Featured = true
	created, err := svc.Create(ctx, req)
	require.NoError(t, err)

	update := newToolRequest("cat_2")
	update.Name = "Renamed"
	updated, err := svc.Update(ctx, created.ID, update)
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "cat_2", updated.CategoryID)
	assert.Empty(t, updated.Tags)
	assert.Empty(t, updated.Website)
	assert.False(t, updated.Featured)
	assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())

	var counts []model.Category
	require.NoError(t, db.Order("id").Find(&counts).Error)
	require.Len(t, counts, 2)
	assert.Equal(t, 0, counts[0].Count)
	assert.Equal(t, 1, counts[1].Count)

	_, err = svc.Update(ctx, "tool_missing", update)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToolReviewRecomputesRating(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedCategory(t, db, "cat_1", "Chat")
	testutil.SeedTool(t, db, "t1", "cat_1", nil)
	svc := NewToolService(db, cache.Nop{})
	ctx := context.Background()

	var last *dto.ReviewResponse
	for _, rating := range []int{4, 5, 5} {
		r, err := svc.CreateReview(ctx, "t1", &dto.ReviewCreateRequest{UserName: "u", Rating: rating})
		require.NoError(t, err)
		last = r
	}

	tool, err := svc.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 4.7, tool.Rating)
	assert.Equal(t, 3, tool.ReviewCount)
	assert.Len(t, tool.Reviews, 3)

	require.NoError(t, svc.DeleteReview(ctx, "t1", last.ID))
	tool, err = svc.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 4.5, tool.Rating)
	assert.Equal(t, 2, tool.ReviewCount)

	assert.ErrorIs(t, svc.DeleteReview(ctx, "t1", last.ID), ErrNotFound)

	_, err = svc.CreateReview(ctx, "tool_missing", &dto.ReviewCreateRequest{UserName: "u", Rating: 3})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToolDeleteRemovesReviewsAndRefreshesCount(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedCategory(t, db, "cat_1", "Chat")
	svc := NewToolService(db, cache.Nop{})
	ctx := context.Background()

	tool, err := svc.Create(ctx, newToolRequest("cat_1"))
	require.NoError(t, err)
	_, err = svc.CreateReview(ctx, tool.ID, &dto.ReviewCreateRequest{UserName: "u", Rating: 5})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, tool.ID))

	var reviews int64
	require.NoError(t, db.Model(&model.Review{}).Count(&reviews).Error)
	assert.Zero(t, reviews)

	var category model.Category
	require.NoError(t, db.First(&category, "id = ?", "cat_1").Error)
	assert.Equal(t, 0, category.Count)

	assert.ErrorIs(t, svc.Delete(ctx, tool.ID), ErrNotFound)
}

func TestToolReviewKeepsAdminEnteredRating(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedCategory(t, db, "cat_1", "Chat")
	testutil.SeedTool(t, db, "t1", "cat_1", func(tool *model.Tool) {
		tool.Rating = 4.8
		tool.ReviewCount = 1200
	})
	svc := NewToolService(db, cache.Nop{})
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, "t1", &dto.ReviewCreateRequest{UserName: "u", Rating: 1})
	require.NoError(t, err)

	tool, err := svc.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 1201, tool.ReviewCount)
	assert.Equal(t, 4.8, tool.Rating)

	require.NoError(t, svc.DeleteReview(ctx, "t1", review.ID))
	tool, err = svc.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 1200, tool.ReviewCount)
	assert.Equal(t, 4.8, tool.Rating)
}

func TestToolDetailShowsTenNewestReviews(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedCategory(t, db, "cat_1", "Chat")
	testutil.SeedTool(t, db, "t1", "cat_1", nil)
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		require.NoError(t, db.Create(&model.Review{
			Base:     model.Base{ID: fmt.Sprintf("r_%02d", i), CreatedAt: base.Add(time.Duration(i) * time.Minute)},
			ToolID:   "t1",
			UserName: "u",
			Rating:   5,
		}).Error)
	}

	tool, err := NewToolService(db, cache.Nop{}).GetByID(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, tool.Reviews, 10)
	assert.Equal(t, "r_11", tool.Reviews[0].ID)
	assert.Equal(t, "r_02", tool.Reviews[9].ID)
}

func TestToolSearchMatchesWildcardsLiterally(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedCategory(t, db, "cat_1", "Chat")
	testutil.SeedTool(t, db, "t1", "cat_1", func(tool *model.Tool) { tool.Name = "Chat" })
	testutil.SeedTool(t, db, "t2", "cat_1", func(tool *model.Tool) { tool.Name = "Paint" })
	testutil.SeedTool(t, db, "t3", "cat_1", func(tool *model.Tool) { tool.Name = "100% free" })
	testutil.SeedTool(t, db, "t4", "cat_1", func(tool *model.Tool) { tool.Name = "snake_case!" })
	svc := NewToolService(db, cache.Nop{})
	ctx := context.Background()

	cases := map[string][]string{
		"%":     {"t3"},
		"_":     {"t4"},
		"!":     {"t4"},
		"e_c":   {"t4"},
		"0% f":  {"t3"},
		"chat":  {"t1"},
		"x_y%z": nil,
	}
	for search, want := range cases {
		result, err := svc.List(ctx, &dto.ToolListQuery{Search: search, Page: 1, Limit: 20})
		require.NoError(t, err, search)
		ids := make([]string, 0, len(result.Tools))
		for _, tool := range result.Tools {
			ids = append(ids, tool.ID)
		}
		assert.ElementsMatch(t, want, ids, search)
		assert.Equal(t, int64(len(want)), result.Pagination.Total, search)
	}
}
