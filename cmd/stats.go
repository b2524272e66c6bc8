package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nsxzhou1114/aihub-api/internal/database"
	"github.com/nsxzhou1114/aihub-api/internal/dto"
	"github.com/nsxzhou1114/aihub-api/internal/service"
	"github.com/nsxzhou1114/aihub-api/pkg/cache"
	"github.com/spf13/cobra"
)

var statsJSON bool

// statsCmd 统计命令
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "统计信息",
	Long:  `显示工具、分类、教程与资讯的统计信息`,
	Run: func(cmd *cobra.Command, args []string) {
		showStats()
	},
}

// dbStatusCmd 数据库状态命令
var dbStatusCmd = &cobra.Command{
	Use:   "db-status",
	Short: "数据库状态",
	Long:  `显示数据库连接池状态`,
	Run: func(cmd *cobra.Command, args []string) {
		showDatabaseStatus()
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "以JSON格式输出")
	statsCmd.AddCommand(dbStatusCmd)

	// 将统计命令添加到根命令
	rootCmd.AddCommand(statsCmd)
}

// showStats 显示统计信息
func showStats() {
	if err := initializeSystem(); err != nil {
		fmt.Printf("系统初始化失败: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stats, err := service.NewStatisticsService(database.GetDB(), cache.Nop{}, 0).Compute(ctx)
	if err != nil {
		fmt.Printf("统计失败: %v\n", err)
		os.Exit(1)
	}

	if statsJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		_ = encoder.Encode(stats)
		return
	}
	printStats(stats)
}

func printStats(stats *dto.StatisticsResponse) {
	t := stats.Totals
	fmt.Println("=== 系统统计信息 ===")
	fmt.Printf("工具: %d（精选 %d，热门 %d，最新 %d，平均评分 %.1f）\n",
		t.Tools, stats.Tools.Featured, stats.Tools.Trending, stats.Tools.Latest, stats.Tools.AverageRating)
	fmt.Printf("分类: %d\n", t.Categories)
	fmt.Printf("评价: %d\n", t.Reviews)
	fmt.Printf("教程: %d（已发布 %d，章节 %d）\n", t.Tutorials, t.PublishedTutorials, t.Chapters)
	fmt.Printf("资讯: %d（已发布 %d）\n", t.News, t.PublishedNews)

	fmt.Println("\n=== 分类工具数 ===")
	for _, c := range stats.Tools.ByCategory {
		fmt.Printf("%s %s: %d\n", c.Icon, c.Name, c.Count)
	}

	fmt.Println("\n=== 定价分布 ===")
	for _, p := range stats.Tools.ByPricing {
		fmt.Printf("%s: %d\n", p.Pricing, p.Count)
	}

	fmt.Println("\n=== 教程难度 ===")
	for _, l := range stats.Tutorials.ByLevel {
		fmt.Printf("%s: %d\n", l.Level, l.Count)
	}
}

// showDatabaseStatus 显示数据库状态
func showDatabaseStatus() {
	if err := initializeSystem(); err != nil {
		fmt.Printf("系统初始化失败: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := database.GetDB().DB()
	if err != nil {
		fmt.Printf("获取数据库连接失败: %v\n", err)
		return
	}
	if err := sqlDB.Ping(); err != nil {
		fmt.Printf("❌ MySQL连接异常: %v\n", err)
		return
	}

	s := sqlDB.Stats()
	fmt.Println("✅ MySQL连接正常")
	fmt.Printf("打开连接数: %d\n", s.OpenConnections)
	fmt.Printf("使用中: %d\n", s.InUse)
	fmt.Printf("空闲: %d\n", s.Idle)
	fmt.Printf("等待次数: %d\n", s.WaitCount)
}
