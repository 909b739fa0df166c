package landing

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Built-in sections contributed by template display flags. They sort after
// authored sections unless an authored section with the same key replaces them.
const flagSectionBaseOrder = 1000

type flagSection struct {
	key     string
	enabled func(Flags) bool
}

var flagSections = []flagSection{
	{key: "gallery", enabled: func(f Flags) bool { return f.ShowGallery }},
	{key: "floor-plans", enabled: func(f Flags) bool { return f.ShowFloorPlans }},
	{key: "pricing", enabled: func(f Flags) bool { return f.ShowPricing }},
	{key: "testimonials", enabled: func(f Flags) bool { return f.ShowTestimonials }},
	{key: "faq", enabled: func(f Flags) bool { return f.ShowFAQ }},
	{key: "related-communities", enabled: func(f Flags) bool { return f.ShowRelatedCommunities }},
}

// Composer indexes stored sections by owner.
type Composer struct {
	byTemplate map[uint][]Section
	byPath     map[string][]Section
	skipped    []Warning
}

// NewComposer indexes the active sections. Sections without exactly one owner
// are skipped and reported by Skipped.
func NewComposer(sections []Section) *Composer {
	c := &Composer{
		byTemplate: make(map[uint][]Section),
		byPath:     make(map[string][]Section),
	}
	for _, section := range sections {
		if !section.Active {
			continue
		}
		hasPath := strings.TrimSpace(section.PagePath) != ""
		hasTemplate := section.TemplateScoped()
		if hasPath == hasTemplate {
			c.skipped = append(c.skipped, Warning{
				Kind:    WarningInvalidRecord,
				Field:   "pagePath",
				Message: fmt.Sprintf("section %d must be owned by exactly one of pagePath or template", section.ID),
			})
			continue
		}
		if hasTemplate {
			c.byTemplate[*section.TemplateID] = append(c.byTemplate[*section.TemplateID], section)
			continue
		}
		path := NormalizePath(section.PagePath)
		c.byPath[path] = append(c.byPath[path], section)
	}
	return c
}

// Skipped lists sections that could not be indexed.
func (c *Composer) Skipped() []Warning {
	return slices.Clone(c.skipped)
}

// Compose merges flag, path and template sections for one page. On a key
// collision template sections beat path sections, which beat flag sections.
func (c *Composer) Compose(tpl Template, path string) []Section {
	merged := make(map[string]Section)

	for i, flag := range flagSections {
		if !flag.enabled(tpl.Flags) {
			continue
		}
		merged[flag.key] = Section{
			SectionType: flag.key,
			SectionKey:  flag.key,
			SortOrder:   flagSectionBaseOrder + i*10,
			Active:      true,
		}
	}

	overlay := func(sections []Section) {
		layer := make(map[string]Section, len(sections))
		for _, section := range sections {
			if existing, dup := layer[section.SectionKey]; dup && existing.ID < section.ID {
				continue
			}
			layer[section.SectionKey] = section
		}
		for key, section := range layer {
			merged[key] = section
		}
	}
	overlay(c.byPath[NormalizePath(path)])
	overlay(c.byTemplate[tpl.ID])

	out := make([]Section, 0, len(merged))
	for _, section := range merged {
		section.Content = CloneDocument(section.Content)
		out = append(out, section)
	}
	slices.SortFunc(out, func(a, b Section) int {
		if diff := cmp.Compare(a.SortOrder, b.SortOrder); diff != 0 {
			return diff
		}
		return cmp.Compare(a.SectionKey, b.SectionKey)
	})
	return out
}
