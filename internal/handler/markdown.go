package handler

import (
	"bytes"

	"github.com/landingpages/internal/landing"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

const (
	markdownKey = "body"
	htmlKey     = "bodyHtml"
)

func renderMarkdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return string(sanitizer.SanitizeBytes(buf.Bytes())), nil
}

// renderBodies 为文档树中每个 body 字段补充渲染后的 bodyHtml，原地修改。
func renderBodies(doc landing.Document) error {
	for key, value := range doc {
		switch typed := value.(type) {
		case string:
			if key != markdownKey {
				continue
			}
			rendered, err := renderMarkdown(typed)
			if err != nil {
				return err
			}
			doc[htmlKey] = rendered
		case map[string]any:
			if err := renderBodies(typed); err != nil {
				return err
			}
		case []any:
			for _, item := range typed {
				if child, ok := item.(map[string]any); ok {
					if err := renderBodies(child); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// renderPage 渲染页面中所有文档的 Markdown 正文。
func renderPage(page *landing.ResolvedPage) error {
	if err := renderBodies(page.Content); err != nil {
		return err
	}
	if err := renderBodies(page.CustomContent); err != nil {
		return err
	}
	for i := range page.Sections {
		if err := renderBodies(page.Sections[i].Content); err != nil {
			return err
		}
	}
	return nil
}
