package db

import "gorm.io/gorm"

// Community 表示一个社区；Cluster 为空时不参与按片区推荐。
type Community struct {
	gorm.Model
	Slug      string  `gorm:"size:150;uniqueIndex;not null"`
	Name      string  `gorm:"size:200;not null"`
	City      string  `gorm:"size:120;index;not null"`
	Cluster   *string `gorm:"size:120;index"`
	Active    bool    `gorm:"not null"`
	SortOrder int     `gorm:"not null;default:0"`
}
