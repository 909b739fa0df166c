package landing

import (
	"time"
)

var fixtureEpoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func uintPtr(v uint) *uint {
	return &v
}

func tmpl(id uint, pattern string) Template {
	return Template{
		ID:         id,
		Slug:       pattern,
		URLPattern: pattern,
		Active:     true,
		CreatedAt:  fixtureEpoch.Add(time.Duration(id) * time.Minute),
	}
}

func fixtureCareTypes() []CareType {
	return []CareType{
		{ID: 1, Slug: "assisted-living", Name: "Assisted Living"},
		{ID: 2, Slug: "memory-care", Name: "Memory Care"},
		{ID: 3, Slug: "independent-living", Name: "Independent Living"},
	}
}

func fixtureCommunities() []Community {
	return []Community{
		{ID: 10, Slug: "golden-grove", Name: "Golden Grove", City: "Golden", Cluster: "west-metro", Active: true, SortOrder: 1},
		{ID: 11, Slug: "arvada-meadows", Name: "Arvada Meadows", City: "Arvada", Cluster: "west-metro", Active: true, SortOrder: 2},
		{ID: 12, Slug: "lakewood-commons", Name: "Lakewood Commons", City: "Lakewood", Cluster: "west-metro", Active: true, SortOrder: 3},
		{ID: 13, Slug: "castle-rock-ridge", Name: "Castle Rock Ridge", City: "Castle Rock", Cluster: "south", Active: true, SortOrder: 1},
		{ID: 14, Slug: "aurora-hills", Name: "Aurora Hills", City: "Aurora", Active: true, SortOrder: 5},
		{ID: 15, Slug: "arvada-closed", Name: "Arvada Closed", City: "Arvada", Cluster: "west-metro", Active: false, SortOrder: 0},
	}
}

func fixtureCatalog() *Catalog {
	return NewCatalog(fixtureCareTypes(), fixtureCommunities())
}
