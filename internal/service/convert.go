package service

import (
	"github.com/landingpages/internal/db"
	"github.com/landingpages/internal/landing"
)

func toLandingCareType(record db.CareType) landing.CareType {
	return landing.CareType{ID: record.ID, Slug: record.Slug, Name: record.Name}
}

func toLandingCommunity(record db.Community) landing.Community {
	community := landing.Community{
		ID:        record.ID,
		Slug:      record.Slug,
		Name:      record.Name,
		City:      record.City,
		Active:    record.Active,
		SortOrder: record.SortOrder,
	}
	if record.Cluster != nil {
		community.Cluster = *record.Cluster
	}
	return community
}

func toLandingTemplate(record db.LandingPageTemplate) landing.Template {
	cities := make([]string, len(record.Cities))
	copy(cities, record.Cities)

	return landing.Template{
		ID:              record.ID,
		Slug:            record.Slug,
		URLPattern:      record.URLPattern,
		TemplateType:    record.TemplateType,
		Title:           record.Title,
		MetaDescription: record.MetaDescription,
		H1Headline:      record.H1Headline,
		Subheadline:     record.Subheadline,
		HeroTitle:       record.HeroTitle,
		HeroSubtitle:    record.HeroSubtitle,
		HeroCTAText:     record.HeroCTAText,
		CommunityID:     record.CommunityID,
		CareTypeID:      record.CareTypeID,
		Cities:          cities,
		Flags: landing.Flags{
			ShowGallery:            record.ShowGallery,
			ShowPricing:            record.ShowPricing,
			ShowFloorPlans:         record.ShowFloorPlans,
			ShowTestimonials:       record.ShowTestimonials,
			ShowFAQ:                record.ShowFAQ,
			ShowRelatedCommunities: record.ShowRelatedCommunities,
		},
		CustomContent: landing.Document(record.CustomContent),
		Active:        record.Active,
		SortOrder:     record.SortOrder,
		CreatedAt:     record.CreatedAt,
	}
}

func toLandingSection(record db.PageContentSection) landing.Section {
	return landing.Section{
		ID:          record.ID,
		PagePath:    record.PagePath,
		TemplateID:  record.LandingPageTemplateID,
		SectionType: record.SectionType,
		SectionKey:  record.SectionKey,
		Title:       record.Title,
		Subtitle:    record.Subtitle,
		Content:     landing.Document(record.Content),
		SortOrder:   record.SortOrder,
		Active:      record.Active,
	}
}
