package service

import (
	"github.com/nsxzhou1114/aihub-api/internal/dto"
	"github.com/nsxzhou1114/aihub-api/internal/model"
)

func toToolResponse(t *model.Tool) dto.ToolResponse {
	resp := dto.ToolResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CategoryID:  t.CategoryID,
		Pricing:     t.Pricing,
		Rating:      roundOne(t.Rating),
		ReviewCount: t.ReviewCount,
		Tags:        t.Tags.Strings(),
		Icon:        t.Icon,
		Website:     t.Website,
		Featured:    t.Featured,
		Trending:    t.Trending,
		Latest:      t.Latest,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Category != nil {
		resp.Category = &dto.CategoryBrief{ID: t.Category.ID, Name: t.Category.Name, Icon: t.Category.Icon}
	}
	if len(t.Reviews) > 0 {
		resp.Reviews = make([]dto.ReviewResponse, 0, len(t.Reviews))
		for i := range t.Reviews {
			resp.Reviews = append(resp.Reviews, toReviewResponse(&t.Reviews[i]))
		}
	}
	return resp
}

func toReviewResponse(r *model.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:        r.ID,
		ToolID:    r.ToolID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
	}
}

func toCategoryResponse(c *model.Category, count int64) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Icon:        c.Icon,
		Count:       count,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toTutorialResponse(t *model.Tutorial, renderHTML bool) dto.TutorialResponse {
	resp := dto.TutorialResponse{
		ID:           t.ID,
		Slug:         t.Slug,
		Title:        t.Title,
		Description:  t.Description,
		Content:      t.Content,
		Icon:         t.Icon,
		Level:        t.Level,
		Duration:     t.Duration,
		Tools:        t.Tools.Strings(),
		Published:    t.Published,
		ChapterCount: t.ChapterCount,
		Chapters:     make([]dto.ChapterResponse, 0, len(t.Chapters)),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	if renderHTML {
		resp.ContentHTML = RenderMarkdown(t.Content)
	}
	for i := range t.Chapters {
		resp.Chapters = append(resp.Chapters, toChapterResponse(&t.Chapters[i], renderHTML))
	}
	return resp
}

func toChapterResponse(c *model.TutorialChapter, renderHTML bool) dto.ChapterResponse {
	resp := dto.ChapterResponse{
		ID:         c.ID,
		TutorialID: c.TutorialID,
		Title:      c.Title,
		Content:    c.Content,
		Order:      c.Order,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	if renderHTML {
		resp.ContentHTML = RenderMarkdown(c.Content)
	}
	return resp
}

func toNewsResponse(n *model.News, renderHTML bool) dto.NewsResponse {
	resp := dto.NewsResponse{
		ID:        n.ID,
		Title:     n.Title,
		Date:      n.Date,
		Category:  n.Category,
		Summary:   n.Summary,
		Content:   n.Content,
		Image:     n.Image,
		Tags:      n.Tags.Strings(),
		Published: n.Published,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	if renderHTML {
		resp.ContentHTML = RenderMarkdown(n.Content)
	}
	return resp
}
