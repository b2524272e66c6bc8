package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nsxzhou1114/aihub-api/internal/config"
	"github.com/nsxzhou1114/aihub-api/internal/controller"
	"github.com/nsxzhou1114/aihub-api/internal/dto"
	"github.com/nsxzhou1114/aihub-api/internal/logger"
	"github.com/nsxzhou1114/aihub-api/internal/middleware"
	"github.com/nsxzhou1114/aihub-api/internal/service"
	"github.com/nsxzhou1114/aihub-api/pkg/cache"
	"github.com/nsxzhou1114/aihub-api/pkg/response"
	"gorm.io/gorm"
)

// Options 路由依赖
type Options struct {
	DB            *gorm.DB
	Cache         cache.Cache
	Admin         func() config.AdminConfig
	Cors          func() config.CorsConfig
	Site          func() config.SiteConfig
	StatisticsTTL time.Duration
	Filter        *service.SensitiveFilter
}

// New 创建gin引擎并注册中间件与全部路由
func New(opts Options) *gin.Engine {
	dto.RegisterValidators()
	if opts.Cache == nil {
		opts.Cache = cache.Nop{}
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Recovery(), logger.GinLogger(), middleware.Cors(opts.Cors))

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "接口不存在")
	})

	Setup(r, opts)
	return r
}

// Setup 设置API路由
func Setup(r *gin.Engine, opts Options) {
	adminService := service.NewAdminService(opts.Admin)
	adminAuth := middleware.AdminAuth(adminService)

	systemApi := controller.NewSystemApi(opts.DB, opts.Site)
	r.GET("/healthz", systemApi.Health)

	// API 路由组
	api := r.Group("/api")
	api.GET("/site", systemApi.Site)

	// 工具相关路由
	setupToolRoutes(api, opts, adminAuth)

	// 分类相关路由
	setupCategoryRoutes(api, opts, adminAuth)

	// 教程相关路由
	tutorialApi := setupTutorialRoutes(api, opts, adminAuth)

	// 资讯相关路由
	newsApi := setupNewsRoutes(api, opts, adminAuth)

	// 统计
	statisticsApi := controller.NewStatisticsApi(service.NewStatisticsService(opts.DB, opts.Cache, opts.StatisticsTTL))
	api.GET("/statistics", statisticsApi.Overview)

	// 后台管理路由
	adminApi := controller.NewAdminApi(adminService)
	adminRoutes := api.Group("/admin")
	{
		adminRoutes.POST("/login", adminApi.Login)
		adminRoutes.POST("/logout", adminApi.Logout)
		adminRoutes.GET("/session", adminApi.Session)
	}
	adminAuthRoutes := api.Group("/admin", adminAuth)
	{
		adminAuthRoutes.GET("/tutorials", tutorialApi.AdminList)
		adminAuthRoutes.GET("/news", newsApi.AdminList)
	}
}

// setupToolRoutes 设置工具相关路由
func setupToolRoutes(api *gin.RouterGroup, opts Options, adminAuth gin.HandlerFunc) {
	toolApi := controller.NewToolApi(service.NewToolService(opts.DB, opts.Cache).UseFilter(opts.Filter))

	toolRoutes := api.Group("/tools")
	{
		toolRoutes.GET("", toolApi.List)
		toolRoutes.GET("/:id", toolApi.GetDetail)
		// 评价为公开接口
		toolRoutes.POST("/:id/reviews", toolApi.CreateReview)
	}

	authRoutes := api.Group("/tools", adminAuth)
	{
		authRoutes.POST("", toolApi.Create)
		authRoutes.PUT("/:id", toolApi.Update)
		authRoutes.DELETE("/:id", toolApi.Delete)
		authRoutes.DELETE("/:id/reviews/:reviewId", toolApi.DeleteReview)
	}
}

// setupCategoryRoutes 设置分类相关路由
func setupCategoryRoutes(api *gin.RouterGroup, opts Options, adminAuth gin.HandlerFunc) {
	categoryApi := controller.NewCategoryApi(service.NewCategoryService(opts.DB, opts.Cache))

	categoryRoutes := api.Group("/categories")
	{
		categoryRoutes.GET("", categoryApi.List)
		categoryRoutes.GET("/:id", categoryApi.GetDetail)
	}

	authRoutes := api.Group("/categories", adminAuth)
	{
		authRoutes.POST("", categoryApi.Create)
		authRoutes.PUT("/:id", categoryApi.Update)
		authRoutes.DELETE("/:id", categoryApi.Delete)
	}
}

// setupTutorialRoutes 设置教程与章节相关路由
func setupTutorialRoutes(api *gin.RouterGroup, opts Options, adminAuth gin.HandlerFunc) *controller.TutorialApi {
	tutorialApi := controller.NewTutorialApi(service.NewTutorialService(opts.DB, opts.Cache))

	tutorialRoutes := api.Group("/tutorials")
	{
		tutorialRoutes.GET("", tutorialApi.List)
		tutorialRoutes.GET("/chapters", tutorialApi.ListChapters)
		tutorialRoutes.GET("/:slug", tutorialApi.GetDetail)
	}

	authRoutes := api.Group("/tutorials", adminAuth)
	{
		authRoutes.POST("", tutorialApi.Create)
		authRoutes.POST("/chapters", tutorialApi.CreateChapter)
		authRoutes.PUT("/chapters", tutorialApi.UpdateChapter)
		authRoutes.DELETE("/chapters", tutorialApi.DeleteChapter)
		authRoutes.PUT("/:slug", tutorialApi.Update)
		authRoutes.DELETE("/:slug", tutorialApi.Delete)
	}
	return tutorialApi
}

// setupNewsRoutes 设置资讯相关路由
func setupNewsRoutes(api *gin.RouterGroup, opts Options, adminAuth gin.HandlerFunc) *controller.NewsApi {
	newsApi := controller.NewNewsApi(service.NewNewsService(opts.DB, opts.Cache))

	rssApi := controller.NewRSSApi(service.NewRSSService(opts.DB))

	newsRoutes := api.Group("/news")
	{
		newsRoutes.GET("", newsApi.List)
		newsRoutes.GET("/rss", rssApi.NewsFeed)
		newsRoutes.GET("/:id", newsApi.GetDetail)
	}

	authRoutes := api.Group("/news", adminAuth)
	{
		authRoutes.POST("", newsApi.Create)
		authRoutes.PUT("/:id", newsApi.Update)
		authRoutes.DELETE("/:id", newsApi.Delete)
	}
	return newsApi
}
