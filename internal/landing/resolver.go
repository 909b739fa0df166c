package landing

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Resolver expands a matched template into render-ready text and content.
type Resolver struct {
	catalog      *Catalog
	base         BaseContent
	relatedLimit int
	policy       *bluemonday.Policy
}

// NewResolver builds a resolver over catalog. A nil base falls back to the
// built-in library.
func NewResolver(catalog *Catalog, base BaseContent, relatedLimit int) *Resolver {
	if base == nil {
		base = DefaultBaseContent()
	}
	if relatedLimit <= 0 {
		relatedLimit = DefaultRelatedLimit
	}
	return &Resolver{
		catalog:      catalog,
		base:         base,
		relatedLimit: relatedLimit,
		policy:       bluemonday.StrictPolicy(),
	}
}

// Resolve produces everything but the section list. It never fails: problems
// are reported as warnings on the page.
func (r *Resolver) Resolve(m Match) ResolvedPage {
	tpl := m.Template
	segments := SplitPath(m.Path)
	rawCity := r.clean(m.Params[TokenCity])

	page := ResolvedPage{
		Template: tpl,
		Params:   r.cleanParams(m.Params),
		Path:     m.Path,
	}

	values := make(map[string]string, len(knownTokens))

	var community *Community
	if tpl.CommunityBound() {
		found, err := r.catalog.GetCommunity(*tpl.CommunityID)
		if err != nil {
			page.Warnings = append(page.Warnings, Warning{
				Kind:    WarningInvalidRecord,
				Field:   "communityId",
				Message: fmt.Sprintf("template %d is bound to missing community %d", tpl.ID, *tpl.CommunityID),
			})
		} else {
			community = &found
			values[TokenCommunityName] = found.Name
		}
	}

	switch {
	case rawCity != "":
		page.City = TitleCity(CityFromParam(rawCity))
	case community != nil:
		page.City = strings.TrimSpace(community.City)
	}
	if page.City != "" {
		values[TokenCity] = page.City
	}

	care := resolveCareType(segments, tpl, r.catalog)
	page.CareType = care.Name
	values[TokenCareType] = care.Name

	x := newTokenExpander(values)
	page.Text = ResolvedText{
		Title:           x.String("title", tpl.Title),
		MetaDescription: x.String("metaDescription", tpl.MetaDescription),
		H1Headline:      x.String("h1Headline", tpl.H1Headline),
		Subheadline:     x.String("subheadline", tpl.Subheadline),
		HeroTitle:       x.String("heroTitle", tpl.HeroTitle),
		HeroSubtitle:    x.String("heroSubtitle", tpl.HeroSubtitle),
		HeroCTAText:     x.String("heroCtaText", tpl.HeroCTAText),
	}
	page.CustomContent = x.Document("customContent", tpl.CustomContent)

	if page.City != "" {
		content, applied := ApplyVariants(r.base.Lookup(care.Key), VariantInput{Segments: segments, City: rawCity})
		page.Content = x.Document("content", content)
		page.Variants = applied
	}

	page.Warnings = append(page.Warnings, x.warnings...)
	page.RelatedCommunities = selectRelated(r.catalog, tpl, CityFromParam(rawCity), r.relatedLimit)
	return page
}

// Title expands only the template title, falling back to the H1 headline.
func (r *Resolver) Title(m Match) string {
	page := r.Resolve(m)
	if strings.TrimSpace(page.Text.Title) != "" {
		return page.Text.Title
	}
	return page.Text.H1Headline
}

// clean strips markup from a captured path value before it reaches copy.
func (r *Resolver) clean(value string) string {
	if value == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(r.policy.Sanitize(value)))
}

func (r *Resolver) cleanParams(params map[string]string) map[string]string {
	out := make(map[string]string, len(params))
	for key, value := range params {
		out[key] = r.clean(value)
	}
	return out
}
