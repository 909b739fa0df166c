package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/landingpages/internal/db"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := db.Open(dsn)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

type countingInvalidator struct {
	reasons []string
	err     error
}

func (c *countingInvalidator) Invalidate(_ context.Context, reason string) error {
	c.reasons = append(c.reasons, reason)
	return c.err
}

func boolPtr(v bool) *bool {
	return &v
}

func uintPtr(v uint) *uint {
	return &v
}

func TestCatalogServiceCreateDerivesSlug(t *testing.T) {
	gdb := setupServiceTestDB(t)
	inv := &countingInvalidator{}
	svc := NewCatalogService(gdb, inv)
	ctx := context.Background()

	careType, err := svc.CreateCareType(ctx, CareTypeInput{Name: "Memory Care"})
	if err != nil {
		t.Fatalf("create care type: %v", err)
	}
	if careType.Slug != "memory-care" || !careType.Active {
		t.Fatalf("unexpected care type: %+v", careType)
	}

	if _, err := svc.CreateCareType(ctx, CareTypeInput{Name: "Memory  Care"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}

	community, err := svc.CreateCommunity(ctx, CommunityInput{Name: "Golden Grove", City: "Golden", Cluster: " west-metro "})
	if err != nil {
		t.Fatalf("create community: %v", err)
	}
	if community.Cluster == nil || *community.Cluster != "west-metro" {
		t.Fatalf("expected trimmed cluster, got %v", community.Cluster)
	}

	if _, err := svc.CreateCommunity(ctx, CommunityInput{Name: "Nowhere"}); !errors.Is(err, ErrCityRequired) {
		t.Fatalf("expected ErrCityRequired, got %v", err)
	}

	if len(inv.reasons) != 2 || inv.reasons[0] != "care_type" || inv.reasons[1] != "community" {
		t.Fatalf("unexpected invalidations: %v", inv.reasons)
	}
}

func TestCatalogServiceListActive(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewCatalogService(gdb, nil)
	ctx := context.Background()

	if _, err := svc.CreateCommunity(ctx, CommunityInput{Name: "B Place", City: "Golden", SortOrder: 2}); err != nil {
		t.Fatalf("create community: %v", err)
	}
	if _, err := svc.CreateCommunity(ctx, CommunityInput{Name: "A Place", City: "Golden", SortOrder: 2}); err != nil {
		t.Fatalf("create community: %v", err)
	}
	if _, err := svc.CreateCommunity(ctx, CommunityInput{Name: "Closed", City: "Golden", Active: boolPtr(false)}); err != nil {
		t.Fatalf("create community: %v", err)
	}

	list, err := svc.ListActiveCommunities(ctx)
	if err != nil {
		t.Fatalf("list communities: %v", err)
	}
	if len(list) != 2 || list[0].Name != "A Place" || list[1].Name != "B Place" {
		t.Fatalf("unexpected communities: %+v", list)
	}
}

func TestCatalogServiceDeleteRejectsReferencedRecords(t *testing.T) {
	gdb := setupServiceTestDB(t)
	catalog := NewCatalogService(gdb, nil)
	templates := NewTemplateService(gdb, nil)
	ctx := context.Background()

	careType, err := catalog.CreateCareType(ctx, CareTypeInput{Name: "Memory Care"})
	if err != nil {
		t.Fatalf("create care type: %v", err)
	}
	if _, err := templates.Create(ctx, TemplateInput{URLPattern: "/memory-care/:city", CareTypeID: &careType.ID}); err != nil {
		t.Fatalf("create template: %v", err)
	}

	if err := catalog.DeleteCareType(ctx, careType.ID); !errors.Is(err, ErrCareTypeInUse) {
		t.Fatalf("expected ErrCareTypeInUse, got %v", err)
	}
	if err := catalog.DeleteCommunity(ctx, 999); !errors.Is(err, ErrCommunityNotFound) {
		t.Fatalf("expected ErrCommunityNotFound, got %v", err)
	}
}
