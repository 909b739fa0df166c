package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/landingpages/internal/export"
	"github.com/landingpages/internal/landing"
	"github.com/landingpages/internal/logger"
	"github.com/landingpages/internal/service"
	"go.uber.org/zap"
)

// ListTemplates 获取模板列表，可按 type 与 active 过滤
func (a *API) ListTemplates(c *gin.Context) {
	records, err := a.templates.List(service.TemplateFilter{
		TemplateType: c.Query("type"),
		ActiveOnly:   c.Query("active") == "true",
	})
	if err != nil {
		a.respondServiceError(c, err, "failed to list templates")
		return
	}
	views := make([]gin.H, 0, len(records))
	for _, record := range records {
		views = append(views, templateView(record))
	}
	c.JSON(http.StatusOK, gin.H{"templates": views})
}

// GetTemplate 获取单个模板
func (a *API) GetTemplate(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	record, err := a.templates.Get(id)
	if err != nil {
		a.respondServiceError(c, err, "failed to load template")
		return
	}
	c.JSON(http.StatusOK, gin.H{"template": templateView(*record)})
}

// CreateTemplate 创建模板
func (a *API) CreateTemplate(c *gin.Context) {
	var input service.TemplateInput
	if !bindJSON(c, &input, "invalid template payload") {
		return
	}
	record, err := a.templates.Create(c.Request.Context(), input)
	if err != nil {
		a.respondServiceError(c, err, "failed to create template")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"template": templateView(*record)})
}

// UpdateTemplate 更新模板
func (a *API) UpdateTemplate(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	var input service.TemplateInput
	if !bindJSON(c, &input, "invalid template payload") {
		return
	}
	record, err := a.templates.Update(c.Request.Context(), id, input)
	if err != nil {
		a.respondServiceError(c, err, "failed to update template")
		return
	}
	c.JSON(http.StatusOK, gin.H{"template": templateView(*record)})
}

// DeleteTemplate 删除模板
func (a *API) DeleteTemplate(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.templates.Delete(c.Request.Context(), id); err != nil {
		a.respondServiceError(c, err, "failed to delete template")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListSections 获取区块列表，可按 templateId 或 pagePath 过滤
func (a *API) ListSections(c *gin.Context) {
	records, err := a.sections.List(service.SectionFilter{
		TemplateID: parseUintQuery(c, "templateId"),
		PagePath:   c.Query("pagePath"),
	})
	if err != nil {
		a.respondServiceError(c, err, "failed to list sections")
		return
	}
	views := make([]gin.H, 0, len(records))
	for _, record := range records {
		views = append(views, sectionView(record))
	}
	c.JSON(http.StatusOK, gin.H{"sections": views})
}

// CreateSection 创建区块
func (a *API) CreateSection(c *gin.Context) {
	var input service.SectionInput
	if !bindJSON(c, &input, "invalid section payload") {
		return
	}
	record, err := a.sections.Create(c.Request.Context(), input)
	if err != nil {
		a.respondServiceError(c, err, "failed to create section")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"section": sectionView(*record)})
}

// UpdateSection 更新区块
func (a *API) UpdateSection(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	var input service.SectionInput
	if !bindJSON(c, &input, "invalid section payload") {
		return
	}
	record, err := a.sections.Update(c.Request.Context(), id, input)
	if err != nil {
		a.respondServiceError(c, err, "failed to update section")
		return
	}
	c.JSON(http.StatusOK, gin.H{"section": sectionView(*record)})
}

// DeleteSection 删除区块
func (a *API) DeleteSection(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.sections.Delete(c.Request.Context(), id); err != nil {
		a.respondServiceError(c, err, "failed to delete section")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCareTypes 获取护理类型
func (a *API) ListCareTypes(c *gin.Context) {
	records, err := a.catalog.ListCareTypes()
	if err != nil {
		a.respondServiceError(c, err, "failed to list care types")
		return
	}
	views := make([]gin.H, 0, len(records))
	for _, record := range records {
		views = append(views, careTypeView(record))
	}
	c.JSON(http.StatusOK, gin.H{"careTypes": views})
}

// CreateCareType 创建护理类型
func (a *API) CreateCareType(c *gin.Context) {
	var input service.CareTypeInput
	if !bindJSON(c, &input, "invalid care type payload") {
		return
	}
	record, err := a.catalog.CreateCareType(c.Request.Context(), input)
	if err != nil {
		a.respondServiceError(c, err, "failed to create care type")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"careType": careTypeView(*record)})
}

// UpdateCareType 更新护理类型
func (a *API) UpdateCareType(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	var input service.CareTypeInput
	if !bindJSON(c, &input, "invalid care type payload") {
		return
	}
	record, err := a.catalog.UpdateCareType(c.Request.Context(), id, input)
	if err != nil {
		a.respondServiceError(c, err, "failed to update care type")
		return
	}
	c.JSON(http.StatusOK, gin.H{"careType": careTypeView(*record)})
}

// DeleteCareType 删除护理类型
func (a *API) DeleteCareType(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.catalog.DeleteCareType(c.Request.Context(), id); err != nil {
		a.respondServiceError(c, err, "failed to delete care type")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCommunities 获取社区
func (a *API) ListCommunities(c *gin.Context) {
	records, err := a.catalog.ListCommunities()
	if err != nil {
		a.respondServiceError(c, err, "failed to list communities")
		return
	}
	views := make([]gin.H, 0, len(records))
	for _, record := range records {
		views = append(views, communityView(record))
	}
	c.JSON(http.StatusOK, gin.H{"communities": views})
}

// CreateCommunity 创建社区
func (a *API) CreateCommunity(c *gin.Context) {
	var input service.CommunityInput
	if !bindJSON(c, &input, "invalid community payload") {
		return
	}
	record, err := a.catalog.CreateCommunity(c.Request.Context(), input)
	if err != nil {
		a.respondServiceError(c, err, "failed to create community")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"community": communityView(*record)})
}

// UpdateCommunity 更新社区
func (a *API) UpdateCommunity(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	var input service.CommunityInput
	if !bindJSON(c, &input, "invalid community payload") {
		return
	}
	record, err := a.catalog.UpdateCommunity(c.Request.Context(), id, input)
	if err != nil {
		a.respondServiceError(c, err, "failed to update community")
		return
	}
	c.JSON(http.StatusOK, gin.H{"community": communityView(*record)})
}

// DeleteCommunity 删除社区
func (a *API) DeleteCommunity(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.catalog.DeleteCommunity(c.Request.Context(), id); err != nil {
		a.respondServiceError(c, err, "failed to delete community")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListURLs 枚举全部有效 URL 并按模板类型分组
func (a *API) ListURLs(c *gin.Context) {
	entries, err := a.landing.EnumerateURLs(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "failed to enumerate urls")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":  len(entries),
		"groups": landing.GroupByTemplateType(entries),
	})
}

// ExportURLs 以 Excel 形式下载全部落地页 URL
func (a *API) ExportURLs(c *gin.Context) {
	entries, err := a.landing.EnumerateURLs(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "failed to enumerate urls")
		return
	}
	data, err := export.URLWorkbook(a.siteBaseURL, entries)
	if err != nil {
		logger.FromContext(c, a.logger).Error("failed to build url workbook", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to export urls")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="landing-urls.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// PreviewMatch 返回某个路径命中的模板与解析结果
func (a *API) PreviewMatch(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		respondError(c, http.StatusBadRequest, "path is required")
		return
	}

	page, err := a.landing.Resolve(c.Request.Context(), path)
	if err != nil {
		var ambiguous *landing.AmbiguousMatchError
		switch {
		case errors.As(err, &ambiguous):
			c.JSON(http.StatusConflict, gin.H{
				"error":       err.Error(),
				"templateIds": ambiguous.TemplateIDs,
			})
		case errors.Is(err, landing.ErrNoMatch):
			respondError(c, http.StatusNotFound, err.Error())
		default:
			a.respondServiceError(c, err, "failed to resolve path")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"templateId":   page.Template.ID,
		"templateSlug": page.Template.Slug,
		"params":       page.Params,
		"page":         page,
	})
}

// InvalidateCache 手动让落地页缓存失效
func (a *API) InvalidateCache(c *gin.Context) {
	if err := a.landing.Invalidate(c.Request.Context(), "manual"); err != nil {
		a.respondServiceError(c, err, "failed to invalidate cache")
		return
	}
	c.Status(http.StatusNoContent)
}
