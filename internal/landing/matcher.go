package landing

import (
	"cmp"
	"fmt"
	"slices"
)

// Specificity tiers, most specific first.
const (
	rankLiteral = iota
	rankCommunity
	rankCareType
	rankGeneric
)

type compiledTemplate struct {
	template Template
	pattern  Pattern
	order    int
}

type candidate struct {
	entry  *compiledTemplate
	rank   int
	params map[string]string
}

// Matcher resolves a path to the single best template. It holds no mutable
// state and is safe for concurrent use.
type Matcher struct {
	catalog   *Catalog
	templates []*compiledTemplate
	skipped   []Warning
}

// NewMatcher compiles the active templates. Templates with an invalid pattern
// are skipped and reported by Skipped.
func NewMatcher(templates []Template, catalog *Catalog) *Matcher {
	ordered := slices.Clone(templates)
	slices.SortStableFunc(ordered, func(a, b Template) int {
		if diff := a.CreatedAt.Compare(b.CreatedAt); diff != 0 {
			return diff
		}
		return cmp.Compare(a.ID, b.ID)
	})

	m := &Matcher{catalog: catalog}
	for i, tpl := range ordered {
		if !tpl.Active {
			continue
		}
		pattern, err := ParsePattern(tpl.URLPattern)
		if err != nil {
			m.skipped = append(m.skipped, Warning{
				Kind:    WarningInvalidRecord,
				Field:   "urlPattern",
				Message: fmt.Sprintf("template %d skipped: %v", tpl.ID, err),
			})
			continue
		}
		m.templates = append(m.templates, &compiledTemplate{template: tpl, pattern: pattern, order: i})
	}
	return m
}

// Skipped lists templates that could not be compiled.
func (m *Matcher) Skipped() []Warning {
	return slices.Clone(m.skipped)
}

// Match finds the most specific active template for a normalized path.
func (m *Matcher) Match(path string) (Match, error) {
	segments := SplitPath(path)

	var candidates []candidate
	for _, entry := range m.templates {
		params, ok := entry.pattern.Bind(segments)
		if !ok {
			continue
		}
		rank, ok := m.rank(entry, params)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{entry: entry, rank: rank, params: params})
	}

	if len(candidates) == 0 {
		return Match{}, ErrNoMatch
	}

	slices.SortFunc(candidates, func(a, b candidate) int {
		if diff := cmp.Compare(a.rank, b.rank); diff != 0 {
			return diff
		}
		if diff := cmp.Compare(a.entry.template.SortOrder, b.entry.template.SortOrder); diff != 0 {
			return diff
		}
		return cmp.Compare(a.entry.order, b.entry.order)
	})

	top := candidates[0]
	if tie, ok := exactTie(candidates); ok {
		return Match{}, &AmbiguousMatchError{
			Path:        path,
			TemplateIDs: [2]uint{top.entry.template.ID, tie.entry.template.ID},
		}
	}

	return Match{Template: top.entry.template, Params: top.params, Path: path}, nil
}

// exactTie finds a candidate sharing the top candidate's tier, sort order and
// pattern shape. Candidates of another shape may sort between the two.
func exactTie(sorted []candidate) (candidate, bool) {
	top := sorted[0]
	shape := top.entry.pattern.shape()
	for _, c := range sorted[1:] {
		if c.rank != top.rank || c.entry.template.SortOrder != top.entry.template.SortOrder {
			break
		}
		if c.entry.pattern.shape() == shape {
			return c, true
		}
	}
	return candidate{}, false
}

// rank places a structural match into a specificity tier. A community-bound
// template whose captured city is not its community's city is not a candidate.
func (m *Matcher) rank(entry *compiledTemplate, params map[string]string) (int, bool) {
	if entry.pattern.Literal() {
		return rankLiteral, true
	}

	tpl := entry.template
	if tpl.CommunityBound() {
		community, err := m.catalog.GetCommunity(*tpl.CommunityID)
		if err != nil {
			return 0, false
		}
		city, hasCity := params["city"]
		if hasCity && CityFromParam(city) != Slugify(community.City) {
			return 0, false
		}
		return rankCommunity, true
	}

	if tpl.CareTypeID != nil && *tpl.CareTypeID != 0 {
		return rankCareType, true
	}
	return rankGeneric, true
}
