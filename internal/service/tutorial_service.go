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

// TutorialService 教程与章节服务
type TutorialService struct {
	db     *gorm.DB
	cache  cache.Cache
	logger *zap.SugaredLogger
}

// NewTutorialService 创建教程服务实例
func NewTutorialService(db *gorm.DB, c cache.Cache) *TutorialService {
	return &TutorialService{
		db:     db,
		cache:  c,
		logger: logger.GetSugaredLogger(),
	}
}

func orderedChapters(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC, created_at ASC")
}

// List 获取教程列表，includeUnpublished 为 false 时只返回已发布教程
func (s *TutorialService) List(ctx context.Context, level string, includeUnpublished bool) ([]dto.TutorialResponse, error) {
	query := s.db.WithContext(ctx).Preload("Chapters", orderedChapters)
	if !includeUnpublished {
		query = query.Where("published = ?", true)
	}
	if level != "" {
		query = query.Where("level = ?", level)
	}

	var tutorials []model.Tutorial
	if err := query.Order("created_at DESC").Find(&tutorials).Error; err != nil {
		return nil, fmt.Errorf("查询教程列表失败: %w", err)
	}

	list := make([]dto.TutorialResponse, 0, len(tutorials))
	for i := range tutorials {
		list = append(list, toTutorialResponse(&tutorials[i], false))
	}
	return list, nil
}

func (s *TutorialService) findBySlug(db *gorm.DB, slug string) (*model.Tutorial, error) {
	var tutorial model.Tutorial
	if err := db.Where("slug = ?", slug).First(&tutorial).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("教程不存在")
		}
		return nil, err
	}
	return &tutorial, nil
}

// GetBySlug 获取教程详情，renderHTML 为 true 时附带渲染后的HTML
func (s *TutorialService) GetBySlug(ctx context.Context, slug string, renderHTML bool) (*dto.TutorialResponse, error) {
	tutorial, err := s.findBySlug(s.db.WithContext(ctx).Preload("Chapters", orderedChapters), slug)
	if err != nil {
		return nil, err
	}
	resp := toTutorialResponse(tutorial, renderHTML)
	return &resp, nil
}

func defaultLevel(level string) string {
	if level == "" {
		return model.LevelBeginner
	}
	return level
}

// Create 创建教程
func (s *TutorialService) Create(ctx context.Context, req *dto.TutorialCreateRequest) (*dto.TutorialResponse, error) {
	if !dto.IsValidSlug(req.Slug) {
		return nil, invalid("slug 只能包含小写字母、数字和连字符")
	}
	if dto.IsReservedSlug(req.Slug) {
		return nil, invalid("slug 为保留字: %s", req.Slug)
	}

	tutorial := &model.Tutorial{
		Base:        model.Base{ID: idgen.New("tut")},
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Icon:        req.Icon,
		Level:       defaultLevel(req.Level),
		Duration:    req.Duration,
		Tools:       model.StringList(req.Tools),
		Published:   req.Published,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Tutorial{}).Where("slug = ?", req.Slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return conflict("slug 已存在: %s", req.Slug)
		}
		return tx.Create(tutorial).Error
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, s.cache, cache.StatisticsKey)
	s.logger.Infow("创建教程", "id", tutorial.ID, "slug", tutorial.Slug)
	resp := toTutorialResponse(tutorial, false)
	return &resp, nil
}

// Update 更新教程，slug 不可修改
func (s *TutorialService) Update(ctx context.Context, slug string, req *dto.TutorialUpdateRequest) (*dto.TutorialResponse, error) {
	if req.Slug != "" && req.Slug != slug {
		return nil, invalid("slug 创建后不可修改")
	}

	db := s.db.WithContext(ctx)
	tutorial, err := s.findBySlug(db, slug)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":       req.Title,
		"description": req.Description,
		"content":     req.Content,
		"icon":        req.Icon,
		"level":       defaultLevel(req.Level),
		"duration":    req.Duration,
		"tools":       model.StringList(req.Tools),
		"published":   req.Published,
	}
	if err := db.Model(tutorial).Updates(updates).Error; err != nil {
		return nil, err
	}

	invalidate(ctx, s.cache, cache.StatisticsKey)
	return s.GetBySlug(ctx, slug, false)
}

// Delete 删除教程及其全部章节
func (s *TutorialService) Delete(ctx context.Context, slug string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tutorial, err := s.findBySlug(tx, slug)
		if err != nil {
			return err
		}
		if err := tx.Where("tutorial_id = ?", tutorial.ID).Delete(&model.TutorialChapter{}).Error; err != nil {
			return err
		}
		return tx.Delete(tutorial).Error
	})
	if err != nil {
		return err
	}

	invalidate(ctx, s.cache, cache.StatisticsKey)
	s.logger.Infow("删除教程", "slug", slug)
	return nil
}

// ListChapters 获取教程的章节列表
func (s *TutorialService) ListChapters(ctx context.Context, tutorialID string) ([]dto.ChapterResponse, error) {
	var chapters []model.TutorialChapter
	if err := orderedChapters(s.db.WithContext(ctx)).
		Where("tutorial_id = ?", tutorialID).
		Find(&chapters).Error; err != nil {
		return nil, fmt.Errorf("查询章节列表失败: %w", err)
	}

	list := make([]dto.ChapterResponse, 0, len(chapters))
	for i := range chapters {
		list = append(list, toChapterResponse(&chapters[i], false))
	}
	return list, nil
}

func ensureTutorial(tx *gorm.DB, tutorialID string) error {
	var count int64
	if err := tx.Model(&model.Tutorial{}).Where("id = ?", tutorialID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound("教程不存在")
	}
	return nil
}

func (s *TutorialService) findChapter(db *gorm.DB, id string) (*model.TutorialChapter, error) {
	var chapter model.TutorialChapter
	if err := db.Where("id = ?", id).First(&chapter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("章节不存在")
		}
		return nil, err
	}
	return &chapter, nil
}

// CreateChapter 创建章节，并在同一事务内重算教程章节数
func (s *TutorialService) CreateChapter(ctx context.Context, req *dto.ChapterCreateRequest) (*dto.ChapterResponse, error) {
	chapter := &model.TutorialChapter{
		Base:       model.Base{ID: idgen.New("ch")},
		TutorialID: req.TutorialID,
		Title:      req.Title,
		Content:    req.Content,
		Order:      req.Order,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureTutorial(tx, req.TutorialID); err != nil {
			return err
		}
		if chapter.Order == 0 {
			var maxOrder int
			if err := tx.Model(&model.TutorialChapter{}).
				Where("tutorial_id = ?", req.TutorialID).
				Select("COALESCE(MAX(sort_order), 0)").
				Scan(&maxOrder).Error; err != nil {
				return err
			}
			chapter.Order = maxOrder + 1
		}
		if err := tx.Create(chapter).Error; err != nil {
			return err
		}
		return refreshChapterCount(tx, req.TutorialID)
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, s.cache, cache.StatisticsKey)
	resp := toChapterResponse(chapter, false)
	return &resp, nil
}

// UpdateChapter 更新章节，order 为0时保持原顺序
func (s *TutorialService) UpdateChapter(ctx context.Context, req *dto.ChapterUpdateRequest) (*dto.ChapterResponse, error) {
	db := s.db.WithContext(ctx)
	chapter, err := s.findChapter(db, req.ID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":   req.Title,
		"content": req.Content,
	}
	if req.Order > 0 {
		updates["sort_order"] = req.Order
	}
	if err := db.Model(chapter).Updates(updates).Error; err != nil {
		return nil, err
	}

	chapter, err = s.findChapter(db, req.ID)
	if err != nil {
		return nil, err
	}
	resp := toChapterResponse(chapter, false)
	return &resp, nil
}

// DeleteChapter 删除章节，并在同一事务内重算教程章节数
func (s *TutorialService) DeleteChapter(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		chapter, err := s.findChapter(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(chapter).Error; err != nil {
			return err
		}
		return refreshChapterCount(tx, chapter.TutorialID)
	})
	if err != nil {
		return err
	}

	invalidate(ctx, s.cache, cache.StatisticsKey)
	return nil
}
