package db

import "gorm.io/gorm"

// CareType 表示护理级别，例如 Memory Care。
type CareType struct {
	gorm.Model
	Slug   string `gorm:"size:100;uniqueIndex;not null"`
	Name   string `gorm:"size:200;not null"`
	Active bool   `gorm:"not null"`
}
