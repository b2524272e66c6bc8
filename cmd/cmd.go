package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nsxzhou1114/aihub-api/internal/config"
	"github.com/nsxzhou1114/aihub-api/internal/database"
	"github.com/nsxzhou1114/aihub-api/internal/jobs"
	"github.com/nsxzhou1114/aihub-api/internal/logger"
	"github.com/nsxzhou1114/aihub-api/internal/model"
	"github.com/nsxzhou1114/aihub-api/internal/router"
	"github.com/nsxzhou1114/aihub-api/internal/service"
	"github.com/nsxzhou1114/aihub-api/pkg/cache"
	"github.com/nsxzhou1114/aihub-api/pkg/idgen"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var configPath string

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "aihub-api",
	Short: "AI工具导航API服务",
	Long:  `AI工具、教程与资讯的内容管理API服务，包含后台管理接口`,
}

// serveCmd 启动服务命令
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动HTTP服务",
	Long:  `启动API的HTTP服务器以及定时任务`,
	Run: func(cmd *cobra.Command, args []string) {
		startServer()
	},
}

func init() {
	// 添加全局标志
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./config", "配置文件路径")

	// 添加子命令
	rootCmd.AddCommand(serveCmd)
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// initializeSystem 初始化配置、日志与数据库
func initializeSystem() error {
	// 初始化配置
	if err := config.Init(configPath); err != nil {
		return fmt.Errorf("配置初始化失败: %w", err)
	}

	// 初始化日志
	if err := logger.Init(); err != nil {
		return fmt.Errorf("日志初始化失败: %w", err)
	}

	// 初始化ID生成器
	app := config.GetConfig().App
	if err := idgen.Init(app.StartTime, app.MachineID); err != nil {
		return fmt.Errorf("ID生成器初始化失败: %w", err)
	}

	// 初始化MySQL数据库
	db := database.GetDB()
	if db == nil {
		return errors.New("MySQL数据库连接失败")
	}

	// 初始化数据库表
	if err := model.InitTables(db); err != nil {
		return fmt.Errorf("初始化数据库表失败: %w", err)
	}
	return nil
}

// newCache 按配置创建缓存
func newCache(cfg *config.Config) (cache.Cache, error) {
	return cache.New(cfg.Cache.Driver, func() (cache.Cache, error) {
		client, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		return cache.NewRedisCache(client), nil
	})
}

// newRouter 组装路由依赖
func newRouter(db *gorm.DB, c cache.Cache) *gin.Engine {
	cfg := config.GetConfig()
	return router.New(router.Options{
		DB:            db,
		Cache:         c,
		Admin:         config.Admin,
		Cors:          config.Cors,
		Site:          config.Site,
		StatisticsTTL: time.Duration(cfg.Cache.StatisticsTTL) * time.Second,
		Filter:        newSensitiveFilter(cfg.Moderation.WordsFile),
	})
}

// newSensitiveFilter 加载敏感词表，失败时降级为只清理HTML
func newSensitiveFilter(path string) *service.SensitiveFilter {
	if path == "" {
		return nil
	}
	f, err := service.LoadSensitiveFilter(path)
	if err != nil {
		logger.Warn("加载敏感词失败", zap.String("file", path), zap.Error(err))
		return nil
	}
	logger.Info("已加载敏感词", zap.Int("count", f.Size()))
	return f
}

// startServer 启动HTTP服务
func startServer() {
	// 初始化系统
	if err := initializeSystem(); err != nil {
		fmt.Printf("系统初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	defer database.Close()

	cfg := config.GetConfig()
	if cfg.Admin.Password == "" {
		logger.Warn("未配置管理员密码，后台登录将始终失败")
	}

	c, err := newCache(cfg)
	if err != nil {
		logger.Fatal("缓存初始化失败", zap.Error(err))
	}
	defer c.Close()

	// 设置Gin模式
	gin.SetMode(cfg.App.Mode)

	db := database.GetDB()
	r := newRouter(db, c)

	// 定时任务
	baseCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()
	runner := jobs.New(baseCtx, cfg.Cron)
	if err := jobs.RegisterReconcile(runner, cfg.Cron.ReconcileSpec, service.NewReconcileService(db, c)); err != nil {
		logger.Fatal("定时任务注册失败", zap.Error(err))
	}
	runner.Start()

	// 启动HTTP服务
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: r,
	}

	// 优雅关闭
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP服务启动失败", zap.Error(err))
		}
	}()

	logger.Info("服务已启动", zap.String("addr", srv.Addr))

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("关闭服务...")

	// 设置关闭超时
	timeout := time.Duration(cfg.App.ShutdownTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务关闭异常", zap.Error(err))
	}

	// 定时任务需在数据库关闭前停止
	cancelJobs()
	runner.Stop()

	logger.Info("服务已关闭")
}
