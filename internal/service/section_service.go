package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/landingpages/internal/db"
	"github.com/landingpages/internal/landing"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrSectionNotFound   = errors.New("page content section not found")
	ErrSectionKeyExists  = errors.New("section key already used by this owner")
	ErrSectionKeyMissing = errors.New("section key is required")
)

// SectionService 管理独立存储的页面区块。
type SectionService struct {
	db          *gorm.DB
	invalidator Invalidator
}

// SectionFilter 按归属筛选区块；均为空时返回全部。
type SectionFilter struct {
	TemplateID uint
	PagePath   string
}

// SectionInput 定义创建/更新区块时可配置字段
type SectionInput struct {
	PagePath              string                 `json:"pagePath"`
	LandingPageTemplateID *uint                  `json:"landingPageTemplateId"`
	SectionType           string                 `json:"sectionType"`
	SectionKey            string                 `json:"sectionKey"`
	Title                 string                 `json:"title"`
	Subtitle              string                 `json:"subtitle"`
	Content               map[string]interface{} `json:"content"`
	SortOrder             int                    `json:"sortOrder"`
	Active                *bool                  `json:"active"`
}

// NewSectionService 构造 SectionService
func NewSectionService(gdb *gorm.DB, inv Invalidator) *SectionService {
	return &SectionService{db: gdb, invalidator: orNoop(inv)}
}

// List 返回区块，按排序值与 key 排列
func (s *SectionService) List(filter SectionFilter) ([]db.PageContentSection, error) {
	query := s.db.Model(&db.PageContentSection{})
	if filter.TemplateID != 0 {
		query = query.Where("landing_page_template_id = ?", filter.TemplateID)
	}
	if path := strings.TrimSpace(filter.PagePath); path != "" {
		query = query.Where("page_path = ?", landing.NormalizePath(path))
	}

	var records []db.PageContentSection
	if err := query.Order("sort_order ASC, section_key ASC, id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return records, nil
}

// Get 根据 ID 获取区块
func (s *SectionService) Get(id uint) (*db.PageContentSection, error) {
	var record db.PageContentSection
	if err := s.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, fmt.Errorf("get section: %w", err)
	}
	return &record, nil
}

// Create 新建区块
func (s *SectionService) Create(ctx context.Context, input SectionInput) (*db.PageContentSection, error) {
	record := db.PageContentSection{}
	if err := s.apply(&record, input, 0); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("create section: %w", err)
	}
	return &record, s.invalidator.Invalidate(ctx, "section")
}

// Update 更新区块
func (s *SectionService) Update(ctx context.Context, id uint, input SectionInput) (*db.PageContentSection, error) {
	record, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(record, input, id); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(record).Error; err != nil {
		return nil, fmt.Errorf("update section: %w", err)
	}
	return record, s.invalidator.Invalidate(ctx, "section")
}

// Delete 删除区块
func (s *SectionService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Unscoped().Delete(&db.PageContentSection{}, id).Error; err != nil {
		return fmt.Errorf("delete section: %w", err)
	}
	return s.invalidator.Invalidate(ctx, "section")
}

func (s *SectionService) apply(record *db.PageContentSection, input SectionInput, selfID uint) error {
	templateID := nonZero(input.LandingPageTemplateID)
	pagePath := ""
	if raw := strings.TrimSpace(input.PagePath); raw != "" {
		pagePath = landing.NormalizePath(raw)
	}
	if (pagePath == "") == (templateID == nil) {
		return ErrInvalidSectionOwner
	}

	key := strings.TrimSpace(input.SectionKey)
	if key == "" {
		return ErrSectionKeyMissing
	}

	if templateID != nil {
		if err := s.db.First(&db.LandingPageTemplate{}, *templateID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTemplateNotFound
			}
			return fmt.Errorf("check template: %w", err)
		}
	}

	query := s.db.Model(&db.PageContentSection{}).Where("section_key = ?", key)
	if templateID != nil {
		query = query.Where("landing_page_template_id = ?", *templateID)
	} else {
		query = query.Where("page_path = ? AND landing_page_template_id IS NULL", pagePath)
	}
	if selfID != 0 {
		query = query.Where("id <> ?", selfID)
	}
	var clashes int64
	if err := query.Count(&clashes).Error; err != nil {
		return fmt.Errorf("check section key: %w", err)
	}
	if clashes > 0 {
		return ErrSectionKeyExists
	}

	if err := validateDocument("content", input.Content); err != nil {
		return err
	}

	sectionType := strings.TrimSpace(input.SectionType)
	if sectionType == "" {
		sectionType = key
	}

	record.PagePath = pagePath
	record.LandingPageTemplateID = templateID
	record.SectionType = sectionType
	record.SectionKey = key
	record.Title = strings.TrimSpace(input.Title)
	record.Subtitle = strings.TrimSpace(input.Subtitle)
	record.Content = datatypes.JSONMap(input.Content)
	record.SortOrder = input.SortOrder
	record.Active = input.Active == nil || *input.Active
	return nil
}
