package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/landingpages/internal/landing"
	"github.com/landingpages/internal/logger"
	"github.com/landingpages/internal/service"
	"go.uber.org/zap"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

func parseUintQuery(c *gin.Context, key string) uint {
	id, err := strconv.ParseUint(c.Query(key), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

// respondServiceError 将服务层错误映射为 HTTP 状态码。
func (a *API) respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, service.ErrSectionNotFound),
		errors.Is(err, service.ErrCareTypeNotFound),
		errors.Is(err, service.ErrCommunityNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSlugExists),
		errors.Is(err, service.ErrSectionKeyExists),
		errors.Is(err, service.ErrCareTypeInUse),
		errors.Is(err, service.ErrCommunityInUse):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, landing.ErrInvalidPattern),
		errors.Is(err, service.ErrInvalidContent),
		errors.Is(err, service.ErrInvalidSectionOwner),
		errors.Is(err, service.ErrSectionKeyMissing),
		errors.Is(err, service.ErrSlugRequired),
		errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrCityRequired):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		logger.FromContext(c, a.logger).Error(fallback, zap.Error(err))
		respondError(c, http.StatusInternalServerError, fallback)
	}
}
