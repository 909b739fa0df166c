package landing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogLookups(t *testing.T) {
	catalog := fixtureCatalog()

	ct, err := catalog.GetCareType(2)
	require.NoError(t, err)
	assert.Equal(t, "Memory Care", ct.Name)

	_, err = catalog.GetCareType(99)
	assert.ErrorIs(t, err, ErrNotFound)

	community, err := catalog.GetCommunity(13)
	require.NoError(t, err)
	assert.Equal(t, "Castle Rock", community.City)

	_, err = catalog.GetCommunity(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogListsActiveCommunitiesInOrder(t *testing.T) {
	catalog := fixtureCatalog()

	assert.Equal(t, []uint{10, 11, 12}, communityIDs(catalog.CommunitiesByCluster("West-Metro")))
	assert.Empty(t, catalog.CommunitiesByCluster(""))
	assert.Equal(t, []uint{11}, communityIDs(catalog.CommunitiesByCity("arvada")))
	assert.Equal(t, []uint{13}, communityIDs(catalog.CommunitiesByCity("castle rock")))
	assert.Empty(t, catalog.CommunitiesByCity("boulder"))
}

func TestCityHelpers(t *testing.T) {
	assert.Equal(t, "castle-rock", Slugify("  Castle Rock "))
	assert.Equal(t, "arvada", CityFromParam("arvada-near-me"))
	assert.Equal(t, "golden", CityFromParam("best-golden"))
	assert.Equal(t, "golden", CityFromParam("luxury-golden-near-me"))
	assert.Equal(t, "near-me-ville", CityFromParam("near-me-ville"))
	assert.Equal(t, "Castle Rock", TitleCity("castle-rock"))
}
