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

func TestCategoryDeleteBlockedByTools(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedCategory(t, db, "cat_1", "Chat")
	testutil.SeedTool(t, db, "t1", "cat_1", nil)
	svc := NewCategoryService(db, cache.Nop{})
	ctx := context.Background()

	err := svc.Delete(ctx, "cat_1")
	assert.ErrorIs(t, err, ErrConflict)

	var count int64
	require.NoError(t, db.Model(&model.Category{}).Where("id = ?", "cat_1").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, db.Delete(&model.Tool{}, "id = ?", "t1").Error)
	require.NoError(t, svc.Delete(ctx, "cat_1"))
	require.NoError(t, db.Model(&model.Category{}).Where("id = ?", "cat_1").Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, svc.Delete(ctx, "cat_1"), ErrNotFound)
}

func TestCategoryListUsesLiveCountsAndCache(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedCategory(t, db, "cat_b", "Image")
	testutil.SeedCategory(t, db, "cat_a", "Audio")
	testutil.SeedTool(t, db, "t1", "cat_b", nil)
	testutil.SeedTool(t, db, "t2", "cat_b", nil)
	c := cache.NewMemoryCache()
	svc := NewCategoryService(db, c)
	ctx := context.Background()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Audio", list[0].Name)
	assert.Equal(t, int64(0), list[0].Count)
	assert.Equal(t, "Image", list[1].Name)
	// count 列未刷新，返回的仍是实时数量
	assert.Equal(t, int64(2), list[1].Count)

	testutil.SeedTool(t, db, "t3", "cat_b", nil)
	cached, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cached[1].Count)

	_, err = svc.Create(ctx, &dto.CategoryRequest{Name: "Video", Description: "v", Icon: "🎬"})
	require.NoError(t, err)
	fresh, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, fresh, 3)
	assert.Equal(t, int64(3), fresh[1].Count)
}

func TestCategoryUpdate(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedCategory(t, db, "cat_1", "Chat")
	svc := NewCategoryService(db, cache.Nop{})
	ctx := context.Background()

	updated, err := svc.Update(ctx, "cat_1", &dto.CategoryRequest{Name: "LLM", Description: "d", Icon: "💬"})
	require.NoError(t, err)
	assert.Equal(t, "LLM", updated.Name)
	assert.Equal(t, "💬", updated.Icon)

	_, err = svc.Update(ctx, "cat_missing", &dto.CategoryRequest{Name: "x", Description: "d", Icon: "i"})
	assert.ErrorIs(t, err, ErrNotFound)
}
