package service

import (
	"context"
	"errors"
	"testing"

	"github.com/landingpages/internal/db"
	"github.com/landingpages/internal/landing"
)

func TestTemplateServiceCreateValidates(t *testing.T) {
	gdb := setupServiceTestDB(t)
	inv := &countingInvalidator{}
	svc := NewTemplateService(gdb, inv)
	ctx := context.Background()

	tests := []struct {
		name  string
		input TemplateInput
		want  error
	}{
		{name: "relative pattern", input: TemplateInput{URLPattern: "memory-care/:city"}, want: landing.ErrInvalidPattern},
		{name: "repeated segment", input: TemplateInput{URLPattern: "/:city/:city"}, want: landing.ErrInvalidPattern},
		{name: "unknown community", input: TemplateInput{URLPattern: "/x", CommunityID: uintPtr(42)}, want: ErrCommunityNotFound},
		{name: "unknown care type", input: TemplateInput{URLPattern: "/y", CareTypeID: uintPtr(42)}, want: ErrCareTypeNotFound},
		{
			name: "body must be text",
			input: TemplateInput{
				URLPattern:    "/z",
				CustomContent: map[string]interface{}{"body": 12},
			},
			want: ErrInvalidContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tt.input); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if len(inv.reasons) != 0 {
		t.Fatalf("failed writes must not invalidate, got %v", inv.reasons)
	}
}

func TestTemplateServiceCreateAndUpdate(t *testing.T) {
	gdb := setupServiceTestDB(t)
	inv := &countingInvalidator{}
	svc := NewTemplateService(gdb, inv)
	ctx := context.Background()

	created, err := svc.Create(ctx, TemplateInput{
		URLPattern:    "/cost/:careLevel/:city/",
		Title:         " {careType} Costs in {city} ",
		Cities:        []string{"golden", " ", "arvada"},
		CustomContent: map[string]interface{}{"hero": map[string]interface{}{"heading": "{city}"}},
	})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	if created.Slug != "cost-carelevel-city" {
		t.Fatalf("unexpected derived slug %q", created.Slug)
	}
	if created.Title != "{careType} Costs in {city}" || len(created.Cities) != 2 || !created.Active {
		t.Fatalf("unexpected template: %+v", created)
	}

	if _, err := svc.Create(ctx, TemplateInput{Slug: "cost-carelevel-city", URLPattern: "/other"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, TemplateInput{
		Slug:       created.Slug,
		URLPattern: created.URLPattern,
		Title:      "Updated",
		Active:     boolPtr(false),
	})
	if err != nil {
		t.Fatalf("update template: %v", err)
	}
	if updated.Title != "Updated" || updated.Active {
		t.Fatalf("unexpected update: %+v", updated)
	}

	if _, err := svc.Update(ctx, 999, TemplateInput{URLPattern: "/x"}); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}

	if len(inv.reasons) != 2 {
		t.Fatalf("expected 2 invalidations, got %v", inv.reasons)
	}
}

func TestTemplateServiceDeleteRemovesTemplateSections(t *testing.T) {
	gdb := setupServiceTestDB(t)
	templates := NewTemplateService(gdb, nil)
	sections := NewSectionService(gdb, nil)
	ctx := context.Background()

	tpl, err := templates.Create(ctx, TemplateInput{URLPattern: "/about"})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	if _, err := sections.Create(ctx, SectionInput{LandingPageTemplateID: &tpl.ID, SectionKey: "hero"}); err != nil {
		t.Fatalf("create section: %v", err)
	}
	if _, err := sections.Create(ctx, SectionInput{PagePath: "/about", SectionKey: "hero"}); err != nil {
		t.Fatalf("create path section: %v", err)
	}

	if err := templates.Delete(ctx, tpl.ID); err != nil {
		t.Fatalf("delete template: %v", err)
	}

	remaining, err := sections.List(SectionFilter{})
	if err != nil {
		t.Fatalf("list sections: %v", err)
	}
	if len(remaining) != 1 || remaining[0].PagePath != "/about" {
		t.Fatalf("expected only the path section to remain, got %+v", remaining)
	}
}

func TestTemplateServiceListFilters(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewTemplateService(gdb, nil)
	ctx := context.Background()

	inputs := []TemplateInput{
		{URLPattern: "/cost/:careLevel/:city", TemplateType: "cost", SortOrder: 2},
		{URLPattern: "/tours/:city", TemplateType: "tours", SortOrder: 1},
		{URLPattern: "/old-cost/:city", TemplateType: "cost", Active: boolPtr(false)},
	}
	for _, input := range inputs {
		if _, err := svc.Create(ctx, input); err != nil {
			t.Fatalf("create %s: %v", input.URLPattern, err)
		}
	}

	all, err := svc.List(TemplateFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].URLPattern != "/old-cost/:city" || all[1].URLPattern != "/tours/:city" {
		t.Fatalf("unexpected order: %v", templatePatterns(all))
	}

	cost, err := svc.List(TemplateFilter{TemplateType: "cost", ActiveOnly: true})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cost) != 1 || cost[0].URLPattern != "/cost/:careLevel/:city" {
		t.Fatalf("unexpected filtered list: %v", templatePatterns(cost))
	}
}

func templatePatterns(records []db.LandingPageTemplate) []string {
	out := make([]string, 0, len(records))
	for _, record := range records {
		out = append(out, record.URLPattern)
	}
	return out
}
