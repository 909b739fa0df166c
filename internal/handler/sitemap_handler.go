package handler

import (
	"encoding/xml"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/landingpages/internal/landing"
	"github.com/landingpages/internal/logger"
	"go.uber.org/zap"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

// BuildSitemap 将枚举结果渲染为 sitemap XML。
func BuildSitemap(baseURL string, entries []landing.URLEntry) ([]byte, error) {
	set := sitemapURLSet{Xmlns: sitemapNamespace, URLs: make([]sitemapURL, 0, len(entries))}
	for _, entry := range entries {
		set.URLs = append(set.URLs, sitemapURL{Loc: baseURL + entry.URL})
	}
	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// Sitemap 输出全部落地页 URL
func (a *API) Sitemap(c *gin.Context) {
	entries, err := a.landing.EnumerateURLs(c.Request.Context())
	if err != nil {
		logger.FromContext(c, a.logger).Error("enumerate urls", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to build sitemap")
		return
	}

	body, err := BuildSitemap(a.siteBaseURL, entries)
	if err != nil {
		logger.FromContext(c, a.logger).Error("encode sitemap", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to build sitemap")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}
