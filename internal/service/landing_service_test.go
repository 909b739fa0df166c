package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/landingpages/internal/cache"
	"github.com/landingpages/internal/landing"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func seedLandingData(t *testing.T, gdb *gorm.DB, inv Invalidator) {
	t.Helper()
	ctx := context.Background()
	catalog := NewCatalogService(gdb, inv)
	templates := NewTemplateService(gdb, inv)
	sections := NewSectionService(gdb, inv)

	if _, err := catalog.CreateCareType(ctx, CareTypeInput{Name: "Memory Care"}); err != nil {
		t.Fatalf("create care type: %v", err)
	}
	if _, err := catalog.CreateCommunity(ctx, CommunityInput{Name: "Golden Grove", City: "Golden", Cluster: "west-metro"}); err != nil {
		t.Fatalf("create community: %v", err)
	}
	if _, err := catalog.CreateCommunity(ctx, CommunityInput{Name: "Arvada Meadows", City: "Arvada", Cluster: "west-metro", SortOrder: 1}); err != nil {
		t.Fatalf("create community: %v", err)
	}
	tpl, err := templates.Create(ctx, TemplateInput{
		URLPattern: "/:careLevel/:city",
		Title:      "{careType} in {city}",
		Cities:     []string{"golden"},
		ShowFAQ:    true,
	})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	if _, err := sections.Create(ctx, SectionInput{LandingPageTemplateID: &tpl.ID, SectionKey: "hero", SortOrder: -1}); err != nil {
		t.Fatalf("create section: %v", err)
	}
}

func TestLandingServiceResolve(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewLandingService(gdb, nil, zaptest.NewLogger(t), 0)
	seedLandingData(t, gdb, svc)
	ctx := context.Background()

	page, err := svc.Resolve(ctx, "/Memory-Care/Golden-Near-Me/")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if page.Text.Title != "Memory Care in Golden" {
		t.Fatalf("unexpected title %q", page.Text.Title)
	}
	if len(page.Variants) != 1 || page.Variants[0] != "near-me" {
		t.Fatalf("unexpected variants %v", page.Variants)
	}
	if len(page.RelatedCommunities) != 2 || page.RelatedCommunities[0].Name != "Golden Grove" {
		t.Fatalf("unexpected related communities %+v", page.RelatedCommunities)
	}
	if len(page.Sections) != 2 || page.Sections[0].SectionKey != "hero" || page.Sections[1].SectionKey != "faq" {
		t.Fatalf("unexpected sections %+v", page.Sections)
	}

	if _, err := svc.Resolve(ctx, "/a/b/c"); !errors.Is(err, landing.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestLandingServiceCachesUntilInvalidated(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewLandingService(gdb, nil, nil, 0)
	seedLandingData(t, gdb, svc)
	ctx := context.Background()

	first, err := svc.Engine(ctx)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	second, err := svc.Engine(ctx)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	if first != second {
		t.Fatal("expected the engine to be reused between requests")
	}

	templates := NewTemplateService(gdb, svc)
	if _, err := templates.Create(ctx, TemplateInput{URLPattern: "/for-professionals", Title: "For Professionals"}); err != nil {
		t.Fatalf("create template: %v", err)
	}

	third, err := svc.Engine(ctx)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	if third == first {
		t.Fatal("expected a rebuilt engine after an admin write")
	}
	if _, err := svc.Match(ctx, "/for-professionals"); err != nil {
		t.Fatalf("new template should be live immediately: %v", err)
	}
}

func TestLandingServiceSharedRedisVersion(t *testing.T) {
	mr := miniredis.RunT(t)
	newStore := func() *cache.RedisStore {
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		return cache.NewRedisStore(client, "test", time.Minute)
	}

	gdb := setupServiceTestDB(t)
	writer := NewLandingService(gdb, newStore(), nil, 0)
	reader := NewLandingService(gdb, newStore(), nil, 0)
	seedLandingData(t, gdb, writer)
	ctx := context.Background()

	if _, err := reader.Match(ctx, "/tours"); !errors.Is(err, landing.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch before the write, got %v", err)
	}

	templates := NewTemplateService(gdb, writer)
	if _, err := templates.Create(ctx, TemplateInput{URLPattern: "/tours"}); err != nil {
		t.Fatalf("create template: %v", err)
	}

	if _, err := reader.Match(ctx, "/tours"); err != nil {
		t.Fatalf("reader should observe the write through the shared version: %v", err)
	}
}

func TestLandingServiceEnumerateURLs(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewLandingService(gdb, nil, nil, 0)
	seedLandingData(t, gdb, svc)

	entries, err := svc.EnumerateURLs(context.Background())
	if err != nil {
		t.Fatalf("enumerate: %v", err)
	}
	if len(entries) != 1 || entries[0].URL != "/memory-care/golden" || entries[0].Title != "Memory Care in Golden" {
		t.Fatalf("unexpected entries %+v", entries)
	}
}
