package landing

import (
	"cmp"
	"slices"
	"strings"
)

// Catalog is a read-only index over care types and communities.
type Catalog struct {
	careTypes   map[uint]CareType
	communities map[uint]Community
	ordered     []Community
}

// NewCatalog indexes the given records. Inputs are copied.
func NewCatalog(careTypes []CareType, communities []Community) *Catalog {
	c := &Catalog{
		careTypes:   make(map[uint]CareType, len(careTypes)),
		communities: make(map[uint]Community, len(communities)),
		ordered:     make([]Community, 0, len(communities)),
	}
	for _, ct := range careTypes {
		c.careTypes[ct.ID] = ct
	}
	for _, community := range communities {
		c.communities[community.ID] = community
		c.ordered = append(c.ordered, community)
	}
	sortCommunities(c.ordered)
	return c
}

// GetCareType returns the care type with the given id.
func (c *Catalog) GetCareType(id uint) (CareType, error) {
	ct, ok := c.careTypes[id]
	if !ok {
		return CareType{}, ErrNotFound
	}
	return ct, nil
}

// GetCommunity returns the community with the given id.
func (c *Catalog) GetCommunity(id uint) (Community, error) {
	community, ok := c.communities[id]
	if !ok {
		return Community{}, ErrNotFound
	}
	return community, nil
}

// CareTypes lists all care types ordered by slug.
func (c *Catalog) CareTypes() []CareType {
	out := make([]CareType, 0, len(c.careTypes))
	for _, ct := range c.careTypes {
		out = append(out, ct)
	}
	slices.SortFunc(out, func(a, b CareType) int {
		if diff := cmp.Compare(a.Slug, b.Slug); diff != 0 {
			return diff
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// CommunitiesByCluster lists active communities sharing a cluster. An empty
// cluster never matches anything.
func (c *Catalog) CommunitiesByCluster(cluster string) []Community {
	key := strings.TrimSpace(cluster)
	if key == "" {
		return nil
	}
	var out []Community
	for _, community := range c.ordered {
		if community.Active && strings.EqualFold(strings.TrimSpace(community.Cluster), key) {
			out = append(out, community)
		}
	}
	return out
}

// CommunitiesByCity lists active communities located in city, compared in slug form.
func (c *Catalog) CommunitiesByCity(city string) []Community {
	key := Slugify(city)
	if key == "" {
		return nil
	}
	var out []Community
	for _, community := range c.ordered {
		if community.Active && Slugify(community.City) == key {
			out = append(out, community)
		}
	}
	return out
}

// Slugify lower-cases s and joins its words with '-'.
func Slugify(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(strings.TrimSpace(s)), func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '\t'
	})
	return strings.Join(fields, "-")
}

func sortCommunities(list []Community) {
	slices.SortStableFunc(list, func(a, b Community) int {
		if diff := cmp.Compare(a.SortOrder, b.SortOrder); diff != 0 {
			return diff
		}
		if diff := cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); diff != 0 {
			return diff
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
