package db

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedFile 是 landingctl seed 读取的 YAML 结构，记录之间通过 slug 引用。
type SeedFile struct {
	CareTypes   []SeedCareType  `yaml:"careTypes"`
	Communities []SeedCommunity `yaml:"communities"`
	Templates   []SeedTemplate  `yaml:"templates"`
	Sections    []SeedSection   `yaml:"sections"`
}

type SeedCareType struct {
	Slug string `yaml:"slug"`
	Name string `yaml:"name"`
}

type SeedCommunity struct {
	Slug      string `yaml:"slug"`
	Name      string `yaml:"name"`
	City      string `yaml:"city"`
	Cluster   string `yaml:"cluster"`
	Active    *bool  `yaml:"active"`
	SortOrder int    `yaml:"sortOrder"`
}

type SeedTemplate struct {
	Slug                   string         `yaml:"slug"`
	URLPattern             string         `yaml:"urlPattern"`
	TemplateType           string         `yaml:"templateType"`
	Title                  string         `yaml:"title"`
	MetaDescription        string         `yaml:"metaDescription"`
	H1Headline             string         `yaml:"h1Headline"`
	Subheadline            string         `yaml:"subheadline"`
	HeroTitle              string         `yaml:"heroTitle"`
	HeroSubtitle           string         `yaml:"heroSubtitle"`
	HeroCTAText            string         `yaml:"heroCtaText"`
	Community              string         `yaml:"community"`
	CareType               string         `yaml:"careType"`
	Cities                 []string       `yaml:"cities"`
	ShowGallery            bool           `yaml:"showGallery"`
	ShowPricing            bool           `yaml:"showPricing"`
	ShowFloorPlans         bool           `yaml:"showFloorPlans"`
	ShowTestimonials       bool           `yaml:"showTestimonials"`
	ShowFAQ                bool           `yaml:"showFaq"`
	ShowRelatedCommunities bool           `yaml:"showRelatedCommunities"`
	CustomContent          map[string]any `yaml:"customContent"`
	Active                 *bool          `yaml:"active"`
	SortOrder              int            `yaml:"sortOrder"`
}

type SeedSection struct {
	PagePath    string         `yaml:"pagePath"`
	Template    string         `yaml:"template"`
	SectionType string         `yaml:"sectionType"`
	SectionKey  string         `yaml:"sectionKey"`
	Title       string         `yaml:"title"`
	Subtitle    string         `yaml:"subtitle"`
	Content     map[string]any `yaml:"content"`
	SortOrder   int            `yaml:"sortOrder"`
	Active      *bool          `yaml:"active"`
}

// SeedStats 汇总一次导入写入的记录数。
type SeedStats struct {
	CareTypes   int
	Communities int
	Templates   int
	Sections    int
}

// ReadSeedFile 解析 YAML 种子文件。
func ReadSeedFile(path string) (SeedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return SeedFile{}, err
	}
	defer f.Close()
	return DecodeSeed(f)
}

// DecodeSeed 从 reader 解析种子数据。
func DecodeSeed(r io.Reader) (SeedFile, error) {
	var seed SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil && !errors.Is(err, io.EOF) {
		return SeedFile{}, fmt.Errorf("decode seed: %w", err)
	}
	return seed, nil
}

// ApplySeed 在一个事务内按 slug upsert 全部记录。
// 区块以 (归属, sectionKey) 作为自然键。
func ApplySeed(conn *gorm.DB, seed SeedFile) (SeedStats, error) {
	var stats SeedStats
	err := conn.Transaction(func(tx *gorm.DB) error {
		careTypes := make(map[string]uint, len(seed.CareTypes))
		for _, item := range seed.CareTypes {
			record := CareType{Slug: strings.TrimSpace(item.Slug), Name: item.Name, Active: true}
			if err := upsertBySlug(tx, &CareType{}, record.Slug, &record, map[string]any{
				"name": record.Name,
			}); err != nil {
				return fmt.Errorf("care type %q: %w", item.Slug, err)
			}
			careTypes[record.Slug] = record.ID
			stats.CareTypes++
		}

		communities := make(map[string]uint, len(seed.Communities))
		for _, item := range seed.Communities {
			record := Community{
				Slug:      strings.TrimSpace(item.Slug),
				Name:      item.Name,
				City:      item.City,
				Cluster:   optionalString(item.Cluster),
				Active:    boolOrTrue(item.Active),
				SortOrder: item.SortOrder,
			}
			if err := upsertBySlug(tx, &Community{}, record.Slug, &record, map[string]any{
				"name":       record.Name,
				"city":       record.City,
				"cluster":    record.Cluster,
				"active":     record.Active,
				"sort_order": record.SortOrder,
			}); err != nil {
				return fmt.Errorf("community %q: %w", item.Slug, err)
			}
			communities[record.Slug] = record.ID
			stats.Communities++
		}

		templates := make(map[string]uint, len(seed.Templates))
		for _, item := range seed.Templates {
			record := LandingPageTemplate{
				Slug:                   strings.TrimSpace(item.Slug),
				URLPattern:             strings.TrimSpace(item.URLPattern),
				TemplateType:           item.TemplateType,
				Title:                  item.Title,
				MetaDescription:        item.MetaDescription,
				H1Headline:             item.H1Headline,
				Subheadline:            item.Subheadline,
				HeroTitle:              item.HeroTitle,
				HeroSubtitle:           item.HeroSubtitle,
				HeroCTAText:            item.HeroCTAText,
				Cities:                 datatypes.JSONSlice[string](item.Cities),
				ShowGallery:            item.ShowGallery,
				ShowPricing:            item.ShowPricing,
				ShowFloorPlans:         item.ShowFloorPlans,
				ShowTestimonials:       item.ShowTestimonials,
				ShowFAQ:                item.ShowFAQ,
				ShowRelatedCommunities: item.ShowRelatedCommunities,
				CustomContent:          datatypes.JSONMap(item.CustomContent),
				Active:                 boolOrTrue(item.Active),
				SortOrder:              item.SortOrder,
			}
			var err error
			if record.CommunityID, err = lookupRef(communities, tx, &Community{}, item.Community); err != nil {
				return fmt.Errorf("template %q community: %w", item.Slug, err)
			}
			if record.CareTypeID, err = lookupRef(careTypes, tx, &CareType{}, item.CareType); err != nil {
				return fmt.Errorf("template %q care type: %w", item.Slug, err)
			}
			if err := upsertBySlug(tx, &LandingPageTemplate{}, record.Slug, &record, map[string]any{
				"url_pattern":              record.URLPattern,
				"template_type":            record.TemplateType,
				"title":                    record.Title,
				"meta_description":         record.MetaDescription,
				"h1_headline":              record.H1Headline,
				"subheadline":              record.Subheadline,
				"hero_title":               record.HeroTitle,
				"hero_subtitle":            record.HeroSubtitle,
				"hero_cta_text":            record.HeroCTAText,
				"community_id":             record.CommunityID,
				"care_type_id":             record.CareTypeID,
				"cities":                   record.Cities,
				"show_gallery":             record.ShowGallery,
				"show_pricing":             record.ShowPricing,
				"show_floor_plans":         record.ShowFloorPlans,
				"show_testimonials":        record.ShowTestimonials,
				"show_faq":                 record.ShowFAQ,
				"show_related_communities": record.ShowRelatedCommunities,
				"custom_content":           record.CustomContent,
				"active":                   record.Active,
				"sort_order":               record.SortOrder,
			}); err != nil {
				return fmt.Errorf("template %q: %w", item.Slug, err)
			}
			templates[record.Slug] = record.ID
			stats.Templates++
		}

		for _, item := range seed.Sections {
			templateID, err := lookupRef(templates, tx, &LandingPageTemplate{}, item.Template)
			if err != nil {
				return fmt.Errorf("section %q template: %w", item.SectionKey, err)
			}
			record := PageContentSection{
				PagePath:              strings.TrimSpace(item.PagePath),
				LandingPageTemplateID: templateID,
				SectionType:           item.SectionType,
				SectionKey:            strings.TrimSpace(item.SectionKey),
				Title:                 item.Title,
				Subtitle:              item.Subtitle,
				Content:               datatypes.JSONMap(item.Content),
				SortOrder:             item.SortOrder,
				Active:                boolOrTrue(item.Active),
			}
			if (record.PagePath == "") == (templateID == nil) {
				return fmt.Errorf("section %q: exactly one of pagePath or template is required", item.SectionKey)
			}
			if err := upsertSection(tx, &record); err != nil {
				return fmt.Errorf("section %q: %w", item.SectionKey, err)
			}
			stats.Sections++
		}
		return nil
	})
	return stats, err
}

func upsertBySlug(tx *gorm.DB, model any, slug string, record any, updates map[string]any) error {
	if slug == "" {
		return errors.New("slug is required")
	}
	err := tx.Model(model).Where("slug = ?", slug).First(model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(record).Error
	}
	if err != nil {
		return err
	}
	if err := tx.Model(model).Updates(updates).Error; err != nil {
		return err
	}
	return tx.Where("slug = ?", slug).First(record).Error
}

func upsertSection(tx *gorm.DB, record *PageContentSection) error {
	query := tx.Model(&PageContentSection{}).Where("section_key = ?", record.SectionKey)
	if record.LandingPageTemplateID != nil {
		query = query.Where("landing_page_template_id = ?", *record.LandingPageTemplateID)
	} else {
		query = query.Where("page_path = ? AND landing_page_template_id IS NULL", record.PagePath)
	}

	var existing PageContentSection
	err := query.First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(record).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&existing).Updates(map[string]any{
		"section_type": record.SectionType,
		"title":        record.Title,
		"subtitle":     record.Subtitle,
		"content":      record.Content,
		"sort_order":   record.SortOrder,
		"active":       record.Active,
	}).Error
}

type slugRecord struct {
	ID uint
}

func lookupRef(known map[string]uint, tx *gorm.DB, model any, slug string) (*uint, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, nil
	}
	if id, ok := known[slug]; ok {
		return &id, nil
	}
	var found slugRecord
	err := tx.Model(model).Select("id").Where("slug = ?", slug).Take(&found).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("unknown slug %q", slug)
	}
	if err != nil {
		return nil, err
	}
	return &found.ID, nil
}

func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func boolOrTrue(value *bool) bool {
	return value == nil || *value
}
