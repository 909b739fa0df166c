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

// ErrTemplateNotFound 在指定模板不存在时返回
var ErrTemplateNotFound = errors.New("landing page template not found")

// TemplateService 负责落地页模板的增删改查，写入后通知缓存失效。
type TemplateService struct {
	db          *gorm.DB
	invalidator Invalidator
}

// TemplateFilter 描述后台列表过滤条件
type TemplateFilter struct {
	TemplateType string
	ActiveOnly   bool
}

// TemplateInput 定义创建/更新模板时可配置字段
type TemplateInput struct {
	Slug                   string                 `json:"slug"`
	URLPattern             string                 `json:"urlPattern"`
	TemplateType           string                 `json:"templateType"`
	Title                  string                 `json:"title"`
	MetaDescription        string                 `json:"metaDescription"`
	H1Headline             string                 `json:"h1Headline"`
	Subheadline            string                 `json:"subheadline"`
	HeroTitle              string                 `json:"heroTitle"`
	HeroSubtitle           string                 `json:"heroSubtitle"`
	HeroCTAText            string                 `json:"heroCtaText"`
	CommunityID            *uint                  `json:"communityId"`
	CareTypeID             *uint                  `json:"careTypeId"`
	Cities                 []string               `json:"cities"`
	ShowGallery            bool                   `json:"showGallery"`
	ShowPricing            bool                   `json:"showPricing"`
	ShowFloorPlans         bool                   `json:"showFloorPlans"`
	ShowTestimonials       bool                   `json:"showTestimonials"`
	ShowFAQ                bool                   `json:"showFaq"`
	ShowRelatedCommunities bool                   `json:"showRelatedCommunities"`
	CustomContent          map[string]interface{} `json:"customContent"`
	Active                 *bool                  `json:"active"`
	SortOrder              int                    `json:"sortOrder"`
}

// NewTemplateService 构造 TemplateService
func NewTemplateService(gdb *gorm.DB, inv Invalidator) *TemplateService {
	return &TemplateService{db: gdb, invalidator: orNoop(inv)}
}

// List 返回模板集合，按排序值与创建顺序排列
func (s *TemplateService) List(filter TemplateFilter) ([]db.LandingPageTemplate, error) {
	query := s.db.Model(&db.LandingPageTemplate{})
	if t := strings.TrimSpace(filter.TemplateType); t != "" {
		query = query.Where("template_type = ?", t)
	}
	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}

	var records []db.LandingPageTemplate
	if err := query.Order("sort_order ASC, created_at ASC, id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return records, nil
}

// Get 根据 ID 获取模板
func (s *TemplateService) Get(id uint) (*db.LandingPageTemplate, error) {
	var record db.LandingPageTemplate
	if err := s.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("get template: %w", err)
	}
	return &record, nil
}

// Create 新建模板
func (s *TemplateService) Create(ctx context.Context, input TemplateInput) (*db.LandingPageTemplate, error) {
	record := db.LandingPageTemplate{}
	if err := s.apply(&record, input, 0); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return &record, s.invalidator.Invalidate(ctx, "template")
}

// Update 更新模板
func (s *TemplateService) Update(ctx context.Context, id uint, input TemplateInput) (*db.LandingPageTemplate, error) {
	record, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(record, input, id); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(record).Error; err != nil {
		return nil, fmt.Errorf("update template: %w", err)
	}
	return record, s.invalidator.Invalidate(ctx, "template")
}

// Delete 删除模板及其模板级区块
func (s *TemplateService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("landing_page_template_id = ?", id).Delete(&db.PageContentSection{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&db.LandingPageTemplate{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return s.invalidator.Invalidate(ctx, "template")
}

func (s *TemplateService) apply(record *db.LandingPageTemplate, input TemplateInput, selfID uint) error {
	rawPattern := strings.TrimSpace(input.URLPattern)
	if _, err := landing.ParsePattern(rawPattern); err != nil {
		return err
	}

	slug := landing.Slugify(input.Slug)
	if slug == "" {
		slug = landing.Slugify(strings.NewReplacer("/", " ", ":", "").Replace(rawPattern))
	}
	if slug == "" {
		return ErrSlugRequired
	}
	if err := ensureUniqueSlug(s.db, &db.LandingPageTemplate{}, slug, selfID); err != nil {
		return err
	}

	communityID := nonZero(input.CommunityID)
	if communityID != nil {
		if err := s.db.First(&db.Community{}, *communityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCommunityNotFound
			}
			return fmt.Errorf("check community: %w", err)
		}
	}
	careTypeID := nonZero(input.CareTypeID)
	if careTypeID != nil {
		if err := s.db.First(&db.CareType{}, *careTypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCareTypeNotFound
			}
			return fmt.Errorf("check care type: %w", err)
		}
	}

	if err := validateDocument("customContent", input.CustomContent); err != nil {
		return err
	}

	cities := make([]string, 0, len(input.Cities))
	for _, city := range input.Cities {
		if trimmed := strings.TrimSpace(city); trimmed != "" {
			cities = append(cities, trimmed)
		}
	}

	record.Slug = slug
	record.URLPattern = rawPattern
	record.TemplateType = strings.TrimSpace(input.TemplateType)
	record.Title = strings.TrimSpace(input.Title)
	record.MetaDescription = strings.TrimSpace(input.MetaDescription)
	record.H1Headline = strings.TrimSpace(input.H1Headline)
	record.Subheadline = strings.TrimSpace(input.Subheadline)
	record.HeroTitle = strings.TrimSpace(input.HeroTitle)
	record.HeroSubtitle = strings.TrimSpace(input.HeroSubtitle)
	record.HeroCTAText = strings.TrimSpace(input.HeroCTAText)
	record.CommunityID = communityID
	record.CareTypeID = careTypeID
	record.Cities = datatypes.JSONSlice[string](cities)
	record.ShowGallery = input.ShowGallery
	record.ShowPricing = input.ShowPricing
	record.ShowFloorPlans = input.ShowFloorPlans
	record.ShowTestimonials = input.ShowTestimonials
	record.ShowFAQ = input.ShowFAQ
	record.ShowRelatedCommunities = input.ShowRelatedCommunities
	record.CustomContent = datatypes.JSONMap(input.CustomContent)
	record.Active = input.Active == nil || *input.Active
	record.SortOrder = input.SortOrder
	return nil
}

func nonZero(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	value := *id
	return &value
}
