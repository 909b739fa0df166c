package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/landingpages/internal/landing"
	"github.com/landingpages/internal/logger"
	"go.uber.org/zap"
)

// ServeLanding 解析任意未注册路径并返回渲染数据；匹配失败与歧义配置都按 404 处理。
func (a *API) ServeLanding(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		respondError(c, http.StatusNotFound, "not found")
		return
	}

	page, err := a.landing.Resolve(c.Request.Context(), c.Request.URL.EscapedPath())
	if err != nil {
		switch {
		case errors.Is(err, landing.ErrNoMatch), errors.Is(err, landing.ErrAmbiguousMatch):
			respondError(c, http.StatusNotFound, "page not found")
		default:
			logger.FromContext(c, a.logger).Error("resolve landing page", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "failed to resolve page")
		}
		return
	}

	if err := renderPage(&page); err != nil {
		logger.FromContext(c, a.logger).Warn("render markdown", zap.String("path", page.Path), zap.Error(err))
	}
	c.JSON(http.StatusOK, page)
}
