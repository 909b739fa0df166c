package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/landingpages/internal/db"
	"github.com/landingpages/internal/landing"
	"gorm.io/gorm"
)

var (
	ErrCareTypeNotFound  = errors.New("care type not found")
	ErrCareTypeInUse     = errors.New("care type is referenced by templates")
	ErrCommunityNotFound = errors.New("community not found")
	ErrCommunityInUse    = errors.New("community is referenced by templates")
	ErrNameRequired      = errors.New("name is required")
	ErrCityRequired      = errors.New("city is required")
)

// CatalogService 管理护理类型与社区这两类参考数据。
type CatalogService struct {
	db          *gorm.DB
	invalidator Invalidator
}

// CareTypeInput 定义创建/更新护理类型时可配置字段
type CareTypeInput struct {
	Slug   string `json:"slug"`
	Name   string `json:"name"`
	Active *bool  `json:"active"`
}

// CommunityInput 定义创建/更新社区时可配置字段
type CommunityInput struct {
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	City      string `json:"city"`
	Cluster   string `json:"cluster"`
	Active    *bool  `json:"active"`
	SortOrder int    `json:"sortOrder"`
}

// NewCatalogService 构造 CatalogService
func NewCatalogService(gdb *gorm.DB, inv Invalidator) *CatalogService {
	return &CatalogService{db: gdb, invalidator: orNoop(inv)}
}

// ListActiveCareTypes 返回启用的护理类型。
func (s *CatalogService) ListActiveCareTypes(ctx context.Context) ([]landing.CareType, error) {
	var records []db.CareType
	if err := s.db.WithContext(ctx).Where("active = ?", true).Order("slug ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list care types: %w", err)
	}
	out := make([]landing.CareType, 0, len(records))
	for _, record := range records {
		out = append(out, toLandingCareType(record))
	}
	return out, nil
}

// ListActiveCommunities 返回启用的社区。
func (s *CatalogService) ListActiveCommunities(ctx context.Context) ([]landing.Community, error) {
	var records []db.Community
	if err := s.db.WithContext(ctx).Where("active = ?", true).Order("sort_order ASC, name ASC, id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list communities: %w", err)
	}
	out := make([]landing.Community, 0, len(records))
	for _, record := range records {
		out = append(out, toLandingCommunity(record))
	}
	return out, nil
}

// ListCareTypes 返回全部护理类型（后台使用）。
func (s *CatalogService) ListCareTypes() ([]db.CareType, error) {
	var records []db.CareType
	if err := s.db.Order("slug ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list care types: %w", err)
	}
	return records, nil
}

// GetCareType 根据 ID 获取护理类型
func (s *CatalogService) GetCareType(id uint) (*db.CareType, error) {
	var record db.CareType
	if err := s.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCareTypeNotFound
		}
		return nil, fmt.Errorf("get care type: %w", err)
	}
	return &record, nil
}

// CreateCareType 新建护理类型，slug 缺省时由名称生成。
func (s *CatalogService) CreateCareType(ctx context.Context, input CareTypeInput) (*db.CareType, error) {
	record := db.CareType{}
	if err := s.applyCareType(&record, input, 0); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("create care type: %w", err)
	}
	return &record, s.invalidator.Invalidate(ctx, "care_type")
}

// UpdateCareType 更新护理类型
func (s *CatalogService) UpdateCareType(ctx context.Context, id uint, input CareTypeInput) (*db.CareType, error) {
	record, err := s.GetCareType(id)
	if err != nil {
		return nil, err
	}
	if err := s.applyCareType(record, input, id); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(record).Error; err != nil {
		return nil, fmt.Errorf("update care type: %w", err)
	}
	return record, s.invalidator.Invalidate(ctx, "care_type")
}

// DeleteCareType 删除未被模板引用的护理类型
func (s *CatalogService) DeleteCareType(ctx context.Context, id uint) error {
	if _, err := s.GetCareType(id); err != nil {
		return err
	}

	var refs int64
	if err := s.db.WithContext(ctx).Model(&db.LandingPageTemplate{}).Where("care_type_id = ?", id).Count(&refs).Error; err != nil {
		return fmt.Errorf("count care type references: %w", err)
	}
	if refs > 0 {
		return ErrCareTypeInUse
	}

	if err := s.db.WithContext(ctx).Unscoped().Delete(&db.CareType{}, id).Error; err != nil {
		return fmt.Errorf("delete care type: %w", err)
	}
	return s.invalidator.Invalidate(ctx, "care_type")
}

func (s *CatalogService) applyCareType(record *db.CareType, input CareTypeInput, selfID uint) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ErrNameRequired
	}
	slug := landing.Slugify(input.Slug)
	if slug == "" {
		slug = landing.Slugify(name)
	}
	if slug == "" {
		return ErrSlugRequired
	}
	if err := s.ensureUniqueSlug(&db.CareType{}, slug, selfID); err != nil {
		return err
	}

	record.Slug = slug
	record.Name = name
	record.Active = input.Active == nil || *input.Active
	return nil
}

// ListCommunities 返回全部社区（后台使用）。
func (s *CatalogService) ListCommunities() ([]db.Community, error) {
	var records []db.Community
	if err := s.db.Order("sort_order ASC, name ASC, id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list communities: %w", err)
	}
	return records, nil
}

// GetCommunity 根据 ID 获取社区
func (s *CatalogService) GetCommunity(id uint) (*db.Community, error) {
	var record db.Community
	if err := s.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommunityNotFound
		}
		return nil, fmt.Errorf("get community: %w", err)
	}
	return &record, nil
}

// CreateCommunity 新建社区
func (s *CatalogService) CreateCommunity(ctx context.Context, input CommunityInput) (*db.Community, error) {
	record := db.Community{}
	if err := s.applyCommunity(&record, input, 0); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("create community: %w", err)
	}
	return &record, s.invalidator.Invalidate(ctx, "community")
}

// UpdateCommunity 更新社区
func (s *CatalogService) UpdateCommunity(ctx context.Context, id uint, input CommunityInput) (*db.Community, error) {
	record, err := s.GetCommunity(id)
	if err != nil {
		return nil, err
	}
	if err := s.applyCommunity(record, input, id); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(record).Error; err != nil {
		return nil, fmt.Errorf("update community: %w", err)
	}
	return record, s.invalidator.Invalidate(ctx, "community")
}

// DeleteCommunity 删除未被模板绑定的社区
func (s *CatalogService) DeleteCommunity(ctx context.Context, id uint) error {
	if _, err := s.GetCommunity(id); err != nil {
		return err
	}

	var refs int64
	if err := s.db.WithContext(ctx).Model(&db.LandingPageTemplate{}).Where("community_id = ?", id).Count(&refs).Error; err != nil {
		return fmt.Errorf("count community references: %w", err)
	}
	if refs > 0 {
		return ErrCommunityInUse
	}

	if err := s.db.WithContext(ctx).Unscoped().Delete(&db.Community{}, id).Error; err != nil {
		return fmt.Errorf("delete community: %w", err)
	}
	return s.invalidator.Invalidate(ctx, "community")
}

func (s *CatalogService) applyCommunity(record *db.Community, input CommunityInput, selfID uint) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ErrNameRequired
	}
	city := strings.TrimSpace(input.City)
	if city == "" {
		return ErrCityRequired
	}
	slug := landing.Slugify(input.Slug)
	if slug == "" {
		slug = landing.Slugify(name)
	}
	if slug == "" {
		return ErrSlugRequired
	}
	if err := s.ensureUniqueSlug(&db.Community{}, slug, selfID); err != nil {
		return err
	}

	record.Slug = slug
	record.Name = name
	record.City = city
	record.Cluster = nil
	if cluster := strings.TrimSpace(input.Cluster); cluster != "" {
		record.Cluster = &cluster
	}
	record.Active = input.Active == nil || *input.Active
	record.SortOrder = input.SortOrder
	return nil
}

func (s *CatalogService) ensureUniqueSlug(model any, slug string, selfID uint) error {
	return ensureUniqueSlug(s.db, model, slug, selfID)
}

func ensureUniqueSlug(gdb *gorm.DB, model any, slug string, selfID uint) error {
	var count int64
	query := gdb.Model(model).Where("slug = ?", slug)
	if selfID != 0 {
		query = query.Where("id <> ?", selfID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("check slug: %w", err)
	}
	if count > 0 {
		return ErrSlugExists
	}
	return nil
}
