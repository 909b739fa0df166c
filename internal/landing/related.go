package landing

// DefaultRelatedLimit caps the related-community list.
const DefaultRelatedLimit = 6

// selectRelated picks communities to list on a non-community page. Communities
// in the requested city come first, followed by the communities sharing a
// cluster with the nearest one.
func selectRelated(catalog *Catalog, tpl Template, city string, limit int) []Community {
	related := []Community{}
	if tpl.CommunityBound() || catalog == nil {
		return related
	}
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	exact := catalog.CommunitiesByCity(city)

	var nearest *Community
	if len(exact) > 0 {
		nearest = &exact[0]
	} else {
		for _, declared := range tpl.Cities {
			if inCity := catalog.CommunitiesByCity(CityFromParam(declared)); len(inCity) > 0 {
				nearest = &inCity[0]
				break
			}
		}
	}

	var clustered []Community
	if nearest != nil {
		clustered = catalog.CommunitiesByCluster(nearest.Cluster)
	}

	seen := make(map[uint]struct{}, len(exact)+len(clustered))
	for _, group := range [][]Community{exact, clustered} {
		for _, community := range group {
			if len(related) >= limit {
				return related
			}
			if _, dup := seen[community.ID]; dup {
				continue
			}
			seen[community.ID] = struct{}{}
			related = append(related, community)
		}
	}
	return related
}
