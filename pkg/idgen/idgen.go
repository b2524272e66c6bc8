package idgen

import (
	"fmt"
	"sync"
	"time"

	sf "github.com/bwmarrin/snowflake"
)

var (
	node     *sf.Node
	nodeOnce sync.Once
	initErr  error
)

// Init 初始化雪花算法节点
// startTime: 起始时间，格式："2006-01-02"
// machineID: 机器ID (0-1023)
func Init(startTime string, machineID int64) error {
	nodeOnce.Do(func() {
		if startTime != "" {
			st, err := time.Parse("2006-01-02", startTime)
			if err != nil {
				initErr = fmt.Errorf("解析起始时间失败: %w", err)
				return
			}
			sf.Epoch = st.UnixNano() / int64(time.Millisecond)
		}
		node, initErr = sf.NewNode(machineID)
	})
	return initErr
}

// New 生成带前缀的ID，例如 tool_3Ahb9Kq2
func New(prefix string) string {
	// 未显式初始化时使用默认节点
	if err := Init("", 1); err != nil {
		panic(err)
	}
	return prefix + "_" + node.Generate().Base58()
}
