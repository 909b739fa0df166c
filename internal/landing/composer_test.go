package landing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionKeys(sections []Section) []string {
	keys := make([]string, 0, len(sections))
	for _, s := range sections {
		keys = append(keys, s.SectionKey)
	}
	return keys
}

func TestComposeTemplateSectionWinsKeyCollision(t *testing.T) {
	tpl := tmpl(1, "/cost/:careLevel/:city")
	sections := []Section{
		{ID: 1, TemplateID: uintPtr(1), SectionKey: "cta", SectionType: "cta", Title: "template cta", SortOrder: 10, Active: true},
		{ID: 2, PagePath: "/cost/memory-care/arvada", SectionKey: "cta", SectionType: "cta", Title: "page cta", SortOrder: 10, Active: true},
	}

	composed := NewComposer(sections).Compose(tpl, "/cost/memory-care/arvada")

	require.Len(t, composed, 1)
	assert.Equal(t, "template cta", composed[0].Title)
}

func TestComposeOrdersBySortOrderThenKey(t *testing.T) {
	tpl := tmpl(7, "/:careLevel/:city")
	sections := []Section{
		{ID: 1, TemplateID: uintPtr(7), SectionKey: "pricing-table", SortOrder: 20, Active: true},
		{ID: 2, TemplateID: uintPtr(7), SectionKey: "intro", SortOrder: 10, Active: true},
		{ID: 3, PagePath: "/Memory-Care/Golden/", SectionKey: "awards", SortOrder: 20, Active: true},
		{ID: 4, PagePath: "/memory-care/golden", SectionKey: "hidden", SortOrder: 1, Active: false},
		{ID: 5, PagePath: "/memory-care/arvada", SectionKey: "elsewhere", SortOrder: 1, Active: true},
		{ID: 6, TemplateID: uintPtr(8), SectionKey: "other-template", SortOrder: 1, Active: true},
	}

	composed := NewComposer(sections).Compose(tpl, "/memory-care/golden")

	assert.Equal(t, []string{"intro", "awards", "pricing-table"}, sectionKeys(composed))
}

func TestComposeFlagSections(t *testing.T) {
	tpl := tmpl(3, "/:careLevel/:city")
	tpl.Flags = Flags{ShowGallery: true, ShowPricing: true, ShowFAQ: true}
	sections := []Section{
		{ID: 1, TemplateID: uintPtr(3), SectionKey: "faq", SectionType: "faq", Title: "Questions", SortOrder: 5, Active: true},
		{ID: 2, TemplateID: uintPtr(3), SectionKey: "hero", SortOrder: 0, Active: true},
	}

	composed := NewComposer(sections).Compose(tpl, "/assisted-living/golden")

	assert.Equal(t, []string{"hero", "faq", "gallery", "pricing"}, sectionKeys(composed))
	assert.Equal(t, "Questions", composed[1].Title)
}

func TestComposeSkipsSectionsWithoutSingleOwner(t *testing.T) {
	sections := []Section{
		{ID: 1, TemplateID: uintPtr(1), PagePath: "/about", SectionKey: "both", Active: true},
		{ID: 2, SectionKey: "neither", Active: true},
		{ID: 3, PagePath: "/about", SectionKey: "ok", Active: true},
	}

	c := NewComposer(sections)

	assert.Len(t, c.Skipped(), 2)
	assert.Equal(t, []string{"ok"}, sectionKeys(c.Compose(tmpl(1, "/about"), "/about")))
}

func TestComposeReturnsCopies(t *testing.T) {
	tpl := tmpl(1, "/about")
	sections := []Section{
		{ID: 1, TemplateID: uintPtr(1), SectionKey: "body", Content: Document{"heading": "About"}, Active: true},
	}
	c := NewComposer(sections)

	first := c.Compose(tpl, "/about")
	first[0].Content["heading"] = "changed"

	second := c.Compose(tpl, "/about")
	assert.Equal(t, "About", second[0].Content["heading"])
}
