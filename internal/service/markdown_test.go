package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdownSanitizes(t *testing.T) {
	html := RenderMarkdown("# Title\n\nhello <script>alert(1)</script> **world**")

	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<strong>world</strong>")
	assert.NotContains(t, html, "<script")
	assert.Empty(t, RenderMarkdown("   "))
}

func TestPlainExcerpt(t *testing.T) {
	assert.Equal(t, "Title some text", PlainExcerpt("# Title\n\nsome *text*", 0))
	assert.Equal(t, "Title", PlainExcerpt("# Title\n\nsome text", 5))
	assert.Equal(t, "你好", PlainExcerpt("你好世界", 2))
	assert.Empty(t, PlainExcerpt("", 10))
}
