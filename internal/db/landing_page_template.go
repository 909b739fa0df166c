package db

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LandingPageTemplate 定义一种落地页 URL 形态及其文案。
type LandingPageTemplate struct {
	gorm.Model
	Slug            string `gorm:"size:150;uniqueIndex;not null"`
	URLPattern      string `gorm:"column:url_pattern;size:255;not null"`
	TemplateType    string `gorm:"size:80;index"`
	Title           string `gorm:"size:255"`
	MetaDescription string `gorm:"type:text"`
	H1Headline      string `gorm:"column:h1_headline;size:255"`
	Subheadline     string `gorm:"type:text"`
	HeroTitle       string `gorm:"size:255"`
	HeroSubtitle    string `gorm:"type:text"`
	HeroCTAText     string `gorm:"column:hero_cta_text;size:120"`

	CommunityID *uint `gorm:"index"`
	CareTypeID  *uint `gorm:"index"`

	Cities datatypes.JSONSlice[string]

	ShowGallery            bool
	ShowPricing            bool
	ShowFloorPlans         bool
	ShowTestimonials       bool
	ShowFAQ                bool `gorm:"column:show_faq"`
	ShowRelatedCommunities bool

	CustomContent datatypes.JSONMap

	Active    bool `gorm:"not null;index"`
	SortOrder int  `gorm:"not null;default:0"`
}
