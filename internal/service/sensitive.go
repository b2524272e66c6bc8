package service

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/importcjj/sensitive"
	"github.com/microcosm-cc/bluemonday"
)

// 评价等纯文本内容不保留任何标签
var textPolicy = bluemonday.StrictPolicy()

// SensitiveFilter 用户提交内容的敏感词过滤
type SensitiveFilter struct {
	filter *sensitive.Filter
	size   int
}

// NewSensitiveFilter 使用给定词表创建过滤器
func NewSensitiveFilter(words ...string) *SensitiveFilter {
	f := &SensitiveFilter{filter: sensitive.New()}
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			f.filter.AddWord(w)
			f.size++
		}
	}
	return f
}

// LoadSensitiveFilter 从文件加载词表，每行一个Base64编码的词
func LoadSensitiveFilter(path string) (*SensitiveFilter, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开敏感词文件失败: %w", err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		decoded, err := base64.StdEncoding.DecodeString(line)
		if err != nil {
			return nil, fmt.Errorf("敏感词解码失败: %w", err)
		}
		words = append(words, string(decoded))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("读取敏感词文件失败: %w", err)
	}
	return NewSensitiveFilter(words...), nil
}

// Size 词表大小
func (f *SensitiveFilter) Size() int {
	if f == nil {
		return 0
	}
	return f.size
}

// Clean 去除全部HTML标签后将敏感词替换为*，nil 过滤器只去标签
func (f *SensitiveFilter) Clean(text string) string {
	text = textPolicy.Sanitize(text)
	if f == nil || f.size == 0 {
		return text
	}
	return f.filter.Replace(text, '*')
}
