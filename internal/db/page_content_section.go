package db

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PageContentSection 是独立存储的页面区块，归属于一个具体路径或一个模板（二选一）。
type PageContentSection struct {
	gorm.Model
	PagePath              string `gorm:"size:255;index"`
	LandingPageTemplateID *uint  `gorm:"index"`
	SectionType           string `gorm:"size:80;not null"`
	SectionKey            string `gorm:"size:120;not null"`
	Title                 string `gorm:"size:255"`
	Subtitle              string `gorm:"type:text"`
	Content               datatypes.JSONMap
	SortOrder             int  `gorm:"not null;default:0"`
	Active                bool `gorm:"not null;index"`
}
