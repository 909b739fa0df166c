package service

import (
	"context"
	"errors"
	"testing"
)

func TestSectionServiceOwnerRules(t *testing.T) {
	gdb := setupServiceTestDB(t)
	templates := NewTemplateService(gdb, nil)
	svc := NewSectionService(gdb, nil)
	ctx := context.Background()

	tpl, err := templates.Create(ctx, TemplateInput{URLPattern: "/memory-care/:city"})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}

	if _, err := svc.Create(ctx, SectionInput{SectionKey: "hero"}); !errors.Is(err, ErrInvalidSectionOwner) {
		t.Fatalf("expected ErrInvalidSectionOwner for no owner, got %v", err)
	}
	if _, err := svc.Create(ctx, SectionInput{PagePath: "/x", LandingPageTemplateID: &tpl.ID, SectionKey: "hero"}); !errors.Is(err, ErrInvalidSectionOwner) {
		t.Fatalf("expected ErrInvalidSectionOwner for two owners, got %v", err)
	}
	if _, err := svc.Create(ctx, SectionInput{LandingPageTemplateID: uintPtr(999), SectionKey: "hero"}); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
	if _, err := svc.Create(ctx, SectionInput{PagePath: "/x"}); !errors.Is(err, ErrSectionKeyMissing) {
		t.Fatalf("expected ErrSectionKeyMissing, got %v", err)
	}
}

func TestSectionServiceKeyUniqueWithinOwner(t *testing.T) {
	gdb := setupServiceTestDB(t)
	templates := NewTemplateService(gdb, nil)
	svc := NewSectionService(gdb, nil)
	ctx := context.Background()

	tpl, err := templates.Create(ctx, TemplateInput{URLPattern: "/memory-care/:city"})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}

	first, err := svc.Create(ctx, SectionInput{PagePath: "/Memory-Care/Golden/", SectionKey: "cta"})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}
	if first.PagePath != "/memory-care/golden" || first.SectionType != "cta" {
		t.Fatalf("expected normalized path and default type, got %+v", first)
	}

	if _, err := svc.Create(ctx, SectionInput{PagePath: "/memory-care/golden", SectionKey: "cta"}); !errors.Is(err, ErrSectionKeyExists) {
		t.Fatalf("expected ErrSectionKeyExists, got %v", err)
	}
	if _, err := svc.Create(ctx, SectionInput{LandingPageTemplateID: &tpl.ID, SectionKey: "cta"}); err != nil {
		t.Fatalf("same key under a different owner should be allowed: %v", err)
	}
	if _, err := svc.Update(ctx, first.ID, SectionInput{PagePath: "/memory-care/golden", SectionKey: "cta", Title: "Tour"}); err != nil {
		t.Fatalf("updating a section must not clash with itself: %v", err)
	}

	list, err := svc.List(SectionFilter{PagePath: "/MEMORY-CARE/golden"})
	if err != nil {
		t.Fatalf("list sections: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Tour" {
		t.Fatalf("unexpected sections: %+v", list)
	}
}

func TestSectionServiceValidatesContent(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewSectionService(gdb, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, SectionInput{
		PagePath:   "/faq",
		SectionKey: "faq",
		Content:    map[string]interface{}{"items": "not a list"},
	})
	if !errors.Is(err, ErrInvalidContent) {
		t.Fatalf("expected ErrInvalidContent, got %v", err)
	}

	_, err = svc.Create(ctx, SectionInput{
		PagePath:   "/faq",
		SectionKey: "faq",
		Content: map[string]interface{}{
			"body":  "## Questions",
			"items": []interface{}{map[string]interface{}{"q": "Cost?", "a": "Varies"}},
		},
	})
	if err != nil {
		t.Fatalf("expected valid content, got %v", err)
	}
}
