package landing

import (
	"cmp"
	"errors"
	"slices"

	"go.uber.org/zap"
)

var careParamNames = map[string]struct{}{
	"careLevel": {},
	"careType":  {},
	"care":      {},
}

// EnumerateURLs expands every active template into its canonical URLs. A
// generated URL belongs to the template the matcher picks for it. When the
// matcher cannot choose between generators, the first declared one keeps the
// URL; a same-tier generator that loses is reported as a duplicate.
func (e *Engine) EnumerateURLs() []URLEntry {
	type generated struct {
		entry *compiledTemplate
		paths []string
	}

	var expanded []generated
	generators := make(map[string][]*compiledTemplate)
	for _, entry := range e.matcher.templates {
		paths, ok := e.expand(entry)
		if !ok {
			continue
		}
		expanded = append(expanded, generated{entry: entry, paths: paths})
		for _, path := range paths {
			generators[path] = append(generators[path], entry)
		}
	}

	var entries []URLEntry
	owners := make(map[string]*compiledTemplate)
	for _, gen := range expanded {
		tpl := gen.entry.template
		for _, path := range gen.paths {
			owner, ok := owners[path]
			if !ok {
				owner = e.owner(path, generators[path])
				owners[path] = owner
			}

			switch {
			case owner == gen.entry:
				m := Match{Template: tpl, Params: bindParams(gen.entry, path), Path: path}
				entries = append(entries, URLEntry{
					URL:          path,
					Title:        e.resolver.Title(m),
					TemplateID:   tpl.ID,
					TemplateSlug: tpl.Slug,
					TemplateType: tpl.TemplateType,
				})
			case owner != nil && e.sameTier(owner, gen.entry, path):
				e.logger.Warn("duplicate generated url",
					zap.String("kind", string(WarningDuplicateURL)),
					zap.String("url", path),
					zap.Uint("kept_template_id", owner.template.ID),
					zap.Uint("dropped_template_id", tpl.ID),
				)
			default:
				e.logger.Debug("generated url shadowed",
					zap.Uint("template_id", tpl.ID),
					zap.String("url", path),
				)
			}
		}
	}
	return entries
}

// owner picks which generator a URL is listed under, or nil when a template
// that never generated it wins the match.
func (e *Engine) owner(path string, generators []*compiledTemplate) *compiledTemplate {
	m, err := e.matcher.Match(path)
	if err == nil {
		for _, gen := range generators {
			if gen.template.ID == m.Template.ID {
				return gen
			}
		}
		return nil
	}

	var ambiguous *AmbiguousMatchError
	if !errors.As(err, &ambiguous) {
		return nil
	}
	// generators 按声明顺序排列
	for _, gen := range generators {
		if slices.Contains(ambiguous.TemplateIDs[:], gen.template.ID) {
			return gen
		}
	}
	return nil
}

func (e *Engine) sameTier(a, b *compiledTemplate, path string) bool {
	rankA, okA := e.matcher.rank(a, bindParams(a, path))
	rankB, okB := e.matcher.rank(b, bindParams(b, path))
	return okA && okB && rankA == rankB
}

func bindParams(entry *compiledTemplate, path string) map[string]string {
	params, _ := entry.pattern.Bind(SplitPath(path))
	return params
}

// expand builds the literal paths for one template. It reports false when a
// named segment cannot be filled from the template's bindings.
func (e *Engine) expand(entry *compiledTemplate) ([]string, bool) {
	tpl := entry.template
	combos := []map[string]string{{}}

	for _, name := range entry.pattern.Params() {
		values := e.paramValues(tpl, name)
		if len(values) == 0 {
			e.logger.Debug("template has no values for named segment",
				zap.Uint("template_id", tpl.ID),
				zap.String("segment", name),
			)
			return nil, false
		}
		next := make([]map[string]string, 0, len(combos)*len(values))
		for _, combo := range combos {
			for _, value := range values {
				extended := make(map[string]string, len(combo)+1)
				for k, v := range combo {
					extended[k] = v
				}
				extended[name] = value
				next = append(next, extended)
			}
		}
		combos = next
	}

	paths := make([]string, 0, len(combos))
	for _, combo := range combos {
		if path, ok := entry.pattern.Build(combo); ok {
			paths = append(paths, path)
		}
	}
	return paths, true
}

func (e *Engine) paramValues(tpl Template, name string) []string {
	switch {
	case name == TokenCity:
		if tpl.CommunityBound() {
			community, err := e.catalog.GetCommunity(*tpl.CommunityID)
			if err != nil {
				return nil
			}
			return uniqueSlugs([]string{community.City})
		}
		return uniqueSlugs(tpl.Cities)

	case isCareParam(name):
		if tpl.CareTypeID != nil {
			if ct, err := e.catalog.GetCareType(*tpl.CareTypeID); err == nil {
				return uniqueSlugs([]string{ct.Slug})
			}
			return nil
		}
		var slugs []string
		for _, ct := range e.catalog.CareTypes() {
			slugs = append(slugs, ct.Slug)
		}
		return uniqueSlugs(slugs)

	case name == "community":
		if tpl.CommunityBound() {
			community, err := e.catalog.GetCommunity(*tpl.CommunityID)
			if err != nil {
				return nil
			}
			return uniqueSlugs([]string{community.Slug})
		}
		var slugs []string
		for _, city := range tpl.Cities {
			for _, community := range e.catalog.CommunitiesByCity(city) {
				slugs = append(slugs, community.Slug)
			}
		}
		return uniqueSlugs(slugs)
	}
	return nil
}

func isCareParam(name string) bool {
	_, ok := careParamNames[name]
	return ok
}

func uniqueSlugs(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		slug := Slugify(value)
		if slug == "" {
			continue
		}
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		out = append(out, slug)
	}
	return out
}

// URLGroup is the admin listing of live URLs for one template type.
type URLGroup struct {
	TemplateType string     `json:"templateType"`
	Entries      []URLEntry `json:"entries"`
}

// GroupByTemplateType groups entries by template type, types in lexical order.
func GroupByTemplateType(entries []URLEntry) []URLGroup {
	index := make(map[string]int)
	var groups []URLGroup
	for _, entry := range entries {
		i, ok := index[entry.TemplateType]
		if !ok {
			i = len(groups)
			index[entry.TemplateType] = i
			groups = append(groups, URLGroup{TemplateType: entry.TemplateType})
		}
		groups[i].Entries = append(groups[i].Entries, entry)
	}
	slices.SortStableFunc(groups, func(a, b URLGroup) int {
		return cmp.Compare(a.TemplateType, b.TemplateType)
	})
	return groups
}
