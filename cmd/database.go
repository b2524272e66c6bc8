package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/nsxzhou1114/aihub-api/internal/config"
	"github.com/nsxzhou1114/aihub-api/internal/database"
	"github.com/nsxzhou1114/aihub-api/internal/model"
	"github.com/nsxzhou1114/aihub-api/internal/service"
	"github.com/nsxzhou1114/aihub-api/pkg/cache"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 导入时的批量大小
const importBatchSize = 100

// databaseCmd 数据库管理命令
var databaseCmd = &cobra.Command{
	Use:   "db",
	Short: "数据库管理命令",
	Long:  `数据库管理相关的命令，包括建表、导入导出与计数校正`,
}

// initTablesCmd 初始化数据库表命令
// 示例：./aihub-api db init-tables
var initTablesCmd = &cobra.Command{
	Use:   "init-tables",
	Short: "初始化数据库表",
	Long:  `根据模型自动迁移数据库表结构`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := initializeSystem(); err != nil {
			fmt.Printf("系统初始化失败: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("数据库表初始化完成")
	},
}

// exportCmd 导出数据命令
// 示例：./aihub-api db export tools tools.json
var exportCmd = &cobra.Command{
	Use:   "export [table] [file]",
	Short: "导出表数据",
	Long:  fmt.Sprintf("导出表数据到JSON文件，可选表：%s", tableNames()),
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		exportData(args[0], args[1])
	},
}

// importCmd 导入数据命令
// 示例：./aihub-api db import tools tools.json
var importCmd = &cobra.Command{
	Use:   "import [table] [file]",
	Short: "导入表数据",
	Long:  `从JSON文件导入数据，已存在的ID会被覆盖，导入后自动校正计数`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		importData(args[0], args[1])
	},
}

// reconcileCmd 计数校正命令
// 示例：./aihub-api db reconcile
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "校正冗余计数",
	Long:  `重新计算教程章节数、分类工具数与工具评价数`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := initializeSystem(); err != nil {
			fmt.Printf("系统初始化失败: %v\n", err)
			os.Exit(1)
		}
		runReconcile(database.GetDB())
	},
}

func init() {
	// 添加数据库相关子命令
	databaseCmd.AddCommand(initTablesCmd)
	databaseCmd.AddCommand(exportCmd)
	databaseCmd.AddCommand(importCmd)
	databaseCmd.AddCommand(reconcileCmd)

	// 将数据库命令添加到根命令
	rootCmd.AddCommand(databaseCmd)
}

func tableNames() string {
	names := make([]string, 0, len(model.Tables))
	for name := range model.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// exportData 导出表数据
func exportData(tableName, fileName string) {
	newDest, ok := model.Tables[tableName]
	if !ok {
		fmt.Printf("不支持的表: %s（可选：%s）\n", tableName, tableNames())
		os.Exit(1)
	}
	if err := initializeSystem(); err != nil {
		fmt.Printf("系统初始化失败: %v\n", err)
		os.Exit(1)
	}

	dest := newDest()
	if err := database.GetDB().Order("created_at ASC").Find(dest).Error; err != nil {
		fmt.Printf("导出数据失败: %v\n", err)
		return
	}

	file, err := os.Create(fileName)
	if err != nil {
		fmt.Printf("创建文件失败: %v\n", err)
		return
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(dest); err != nil {
		fmt.Printf("写入文件失败: %v\n", err)
		return
	}

	fmt.Printf("成功导出 %d 条记录到 %s\n", reflect.ValueOf(dest).Elem().Len(), fileName)
}

// importData 导入表数据
func importData(tableName, fileName string) {
	newDest, ok := model.Tables[tableName]
	if !ok {
		fmt.Printf("不支持的表: %s（可选：%s）\n", tableName, tableNames())
		os.Exit(1)
	}
	if err := initializeSystem(); err != nil {
		fmt.Printf("系统初始化失败: %v\n", err)
		os.Exit(1)
	}

	file, err := os.Open(fileName)
	if err != nil {
		fmt.Printf("打开文件失败: %v\n", err)
		return
	}
	defer file.Close()

	dest := newDest()
	if err := json.NewDecoder(file).Decode(dest); err != nil {
		fmt.Printf("解析文件失败: %v\n", err)
		return
	}
	count := reflect.ValueOf(dest).Elem().Len()
	if count == 0 {
		fmt.Println("文件中没有数据")
		return
	}

	db := database.GetDB()
	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{UpdateAll: true}).
			CreateInBatches(dest, importBatchSize).Error
	})
	if err != nil {
		fmt.Printf("导入数据失败: %v\n", err)
		return
	}

	fmt.Printf("成功导入 %d 条记录到表 %s\n", count, tableName)
	runReconcile(db)
}

func runReconcile(db *gorm.DB) {
	// redis 缓存与服务进程共享，校正后一并清除
	c, err := newCache(config.GetConfig())
	if err != nil {
		fmt.Printf("缓存不可用，跳过缓存清理: %v\n", err)
		c = cache.Nop{}
	}
	defer c.Close()

	result, err := service.NewReconcileService(db, c).Run(context.Background())
	if err != nil {
		fmt.Printf("计数校正失败: %v\n", err)
		return
	}
	fmt.Printf("计数校正完成：教程 %d，分类 %d\n", result.Tutorials, result.Categories)
}
