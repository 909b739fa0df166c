package landing

import (
	"time"
)

// Document is a loosely structured content tree of headings, bodies and lists.
type Document = map[string]any

// CareType is a level of care such as Memory Care.
type CareType struct {
	ID   uint   `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Community is a physical location. An empty Cluster opts out of cluster-based relatedness.
type Community struct {
	ID        uint   `json:"id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	City      string `json:"city"`
	Cluster   string `json:"cluster,omitempty"`
	Active    bool   `json:"active"`
	SortOrder int    `json:"sortOrder"`
}

// Template describes one URL shape and the copy rendered for it.
type Template struct {
	ID              uint      `json:"id"`
	Slug            string    `json:"slug"`
	URLPattern      string    `json:"urlPattern"`
	TemplateType    string    `json:"templateType"`
	Title           string    `json:"title"`
	MetaDescription string    `json:"metaDescription"`
	H1Headline      string    `json:"h1Headline"`
	Subheadline     string    `json:"subheadline"`
	HeroTitle       string    `json:"heroTitle"`
	HeroSubtitle    string    `json:"heroSubtitle"`
	HeroCTAText     string    `json:"heroCtaText"`
	CommunityID     *uint     `json:"communityId,omitempty"`
	CareTypeID      *uint     `json:"careTypeId,omitempty"`
	Cities          []string  `json:"cities"`
	Flags           Flags     `json:"flags"`
	CustomContent   Document  `json:"customContent,omitempty"`
	Active          bool      `json:"active"`
	SortOrder       int       `json:"sortOrder"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Flags toggles the built-in structural sections of a page.
type Flags struct {
	ShowGallery            bool `json:"showGallery"`
	ShowPricing            bool `json:"showPricing"`
	ShowFloorPlans         bool `json:"showFloorPlans"`
	ShowTestimonials       bool `json:"showTestimonials"`
	ShowFAQ                bool `json:"showFaq"`
	ShowRelatedCommunities bool `json:"showRelatedCommunities"`
}

// CommunityBound reports whether the template serves exactly one community.
func (t Template) CommunityBound() bool {
	return t.CommunityID != nil && *t.CommunityID != 0
}

// Section is an independently stored block of page content, owned either by a
// literal page path or by a template.
type Section struct {
	ID          uint     `json:"id"`
	PagePath    string   `json:"pagePath,omitempty"`
	TemplateID  *uint    `json:"landingPageTemplateId,omitempty"`
	SectionType string   `json:"sectionType"`
	SectionKey  string   `json:"sectionKey"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Content     Document `json:"content,omitempty"`
	SortOrder   int      `json:"sortOrder"`
	Active      bool     `json:"active"`
}

// TemplateScoped reports whether the section belongs to a template rather than a path.
func (s Section) TemplateScoped() bool {
	return s.TemplateID != nil && *s.TemplateID != 0
}

// Snapshot is the full set of records the engine works over.
type Snapshot struct {
	CareTypes   []CareType  `json:"careTypes"`
	Communities []Community `json:"communities"`
	Templates   []Template  `json:"templates"`
	Sections    []Section   `json:"sections"`
}

// Match is the outcome of a successful path match.
type Match struct {
	Template Template          `json:"template"`
	Params   map[string]string `json:"params"`
	Path     string            `json:"path"`
}

// ResolvedText holds the token-expanded text fields of a template.
type ResolvedText struct {
	Title           string `json:"title"`
	MetaDescription string `json:"metaDescription"`
	H1Headline      string `json:"h1Headline"`
	Subheadline     string `json:"subheadline"`
	HeroTitle       string `json:"heroTitle"`
	HeroSubtitle    string `json:"heroSubtitle"`
	HeroCTAText     string `json:"heroCtaText"`
}

// ResolvedPage is the render-ready payload handed to the renderer.
type ResolvedPage struct {
	Template           Template          `json:"template"`
	Params             map[string]string `json:"params"`
	Path               string            `json:"path"`
	City               string            `json:"city,omitempty"`
	CareType           string            `json:"careType"`
	Variants           []string          `json:"variants,omitempty"`
	Text               ResolvedText      `json:"text"`
	Content            Document          `json:"content,omitempty"`
	CustomContent      Document          `json:"customContent,omitempty"`
	RelatedCommunities []Community       `json:"relatedCommunities"`
	Sections           []Section         `json:"sections"`
	Warnings           []Warning         `json:"warnings,omitempty"`
}

// URLEntry is one canonical live URL.
type URLEntry struct {
	URL          string `json:"url"`
	Title        string `json:"title"`
	TemplateID   uint   `json:"templateId"`
	TemplateSlug string `json:"templateSlug"`
	TemplateType string `json:"templateType"`
}
