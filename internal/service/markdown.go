package service

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday"
)

var htmlPolicy = bluemonday.UGCPolicy()

// RenderMarkdown 将 Markdown 转换为 HTML 并过滤不安全的标签与属性
func RenderMarkdown(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	unsafe := blackfriday.MarkdownCommon([]byte(content))
	return string(htmlPolicy.SanitizeBytes(unsafe))
}

// PlainExcerpt 提取 Markdown 渲染后的纯文本，最多保留 n 个字符
func PlainExcerpt(content string, n int) string {
	html := RenderMarkdown(content)
	if html == "" {
		return ""
	}

	text := html
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err == nil {
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")

	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n])
}
