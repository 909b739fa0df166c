package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/landingpages/internal/db"
)

func careTypeView(record db.CareType) gin.H {
	return gin.H{
		"id":     record.ID,
		"slug":   record.Slug,
		"name":   record.Name,
		"active": record.Active,
	}
}

func communityView(record db.Community) gin.H {
	cluster := ""
	if record.Cluster != nil {
		cluster = *record.Cluster
	}
	return gin.H{
		"id":        record.ID,
		"slug":      record.Slug,
		"name":      record.Name,
		"city":      record.City,
		"cluster":   cluster,
		"active":    record.Active,
		"sortOrder": record.SortOrder,
	}
}

func templateView(record db.LandingPageTemplate) gin.H {
	cities := []string(record.Cities)
	if cities == nil {
		cities = []string{}
	}
	return gin.H{
		"id":                     record.ID,
		"slug":                   record.Slug,
		"urlPattern":             record.URLPattern,
		"templateType":           record.TemplateType,
		"title":                  record.Title,
		"metaDescription":        record.MetaDescription,
		"h1Headline":             record.H1Headline,
		"subheadline":            record.Subheadline,
		"heroTitle":              record.HeroTitle,
		"heroSubtitle":           record.HeroSubtitle,
		"heroCtaText":            record.HeroCTAText,
		"communityId":            record.CommunityID,
		"careTypeId":             record.CareTypeID,
		"cities":                 cities,
		"showGallery":            record.ShowGallery,
		"showPricing":            record.ShowPricing,
		"showFloorPlans":         record.ShowFloorPlans,
		"showTestimonials":       record.ShowTestimonials,
		"showFaq":                record.ShowFAQ,
		"showRelatedCommunities": record.ShowRelatedCommunities,
		"customContent":          record.CustomContent,
		"active":                 record.Active,
		"sortOrder":              record.SortOrder,
		"createdAt":              record.CreatedAt,
		"updatedAt":              record.UpdatedAt,
	}
}

func sectionView(record db.PageContentSection) gin.H {
	return gin.H{
		"id":                    record.ID,
		"pagePath":              record.PagePath,
		"landingPageTemplateId": record.LandingPageTemplateID,
		"sectionType":           record.SectionType,
		"sectionKey":            record.SectionKey,
		"title":                 record.Title,
		"subtitle":              record.Subtitle,
		"content":               record.Content,
		"sortOrder":             record.SortOrder,
		"active":                record.Active,
	}
}
