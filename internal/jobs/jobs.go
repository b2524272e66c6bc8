package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/nsxzhou1114/aihub-api/internal/config"
	"github.com/nsxzhou1114/aihub-api/internal/dto"
	"github.com/nsxzhou1114/aihub-api/internal/logger"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// 常用表达式（带秒）
//"0 */5 * * * *"     // 每隔5分钟
//"0 0 * * * *"       // 每小时的开始
//"0 0 3 * * *"       // 每天凌晨3点

// Reconciler 计数校正任务
type Reconciler interface {
	Run(ctx context.Context) (*dto.ReconcileResult, error)
}

// Runner 定时任务调度器
type Runner struct {
	cron    *cron.Cron
	baseCtx context.Context
}

// New 创建调度器，时区无效时回退到本地时区
func New(baseCtx context.Context, cfg config.CronConfig) *Runner {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	loc := time.Local
	if cfg.Timezone != "" {
		if l, err := time.LoadLocation(cfg.Timezone); err == nil {
			loc = l
		} else {
			logger.Warn("无效的定时任务时区，使用本地时区", zap.String("timezone", cfg.Timezone), zap.Error(err))
		}
	}
	return &Runner{
		cron:    cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		baseCtx: baseCtx,
	}
}

// Add 注册任务
func (r *Runner) Add(spec string, job func(context.Context)) (cron.EntryID, error) {
	return r.cron.AddFunc(spec, func() {
		job(r.baseCtx)
	})
}

// Start 启动调度
func (r *Runner) Start() {
	logger.Info("定时任务已启动", zap.Int("entries", len(r.cron.Entries())))
	r.cron.Start()
}

// Stop 停止调度并等待运行中的任务结束
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	logger.Info("定时任务已停止")
}

// RegisterReconcile 注册计数校正任务，spec 为空时不注册
func RegisterReconcile(r *Runner, spec string, rec Reconciler) error {
	if spec == "" {
		return nil
	}
	_, err := r.Add(spec, func(ctx context.Context) {
		start := time.Now()
		result, err := rec.Run(ctx)
		if err != nil {
			logger.Error("计数校正失败", zap.Error(err))
			return
		}
		logger.Info("计数校正完成",
			zap.Int("tutorials", result.Tutorials),
			zap.Int("categories", result.Categories),
			zap.Duration("cost", time.Since(start)),
		)
	})
	if err != nil {
		return fmt.Errorf("注册计数校正任务失败: %w", err)
	}
	return nil
}
