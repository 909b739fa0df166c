package landing

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	fallbackCareTypeName = "Assisted Living"
	fallbackCareTypeKey  = "assisted-living"
)

type careMarker struct {
	prefix string
	name   string
	key    string
}

// careMarkers are checked in this order against each path segment; the first
// hit wins. Dementia and Alzheimer's requests are served memory-care copy.
var careMarkers = []careMarker{
	{prefix: "memory-care", name: "Memory Care", key: "memory-care"},
	{prefix: "independent-living", name: "Independent Living", key: "independent-living"},
	{prefix: "dementia-care", name: "Memory Care", key: "memory-care"},
	{prefix: "alzheimers-care", name: "Memory Care", key: "memory-care"},
	{prefix: "senior-living", name: "Senior Living", key: "senior-living"},
	{prefix: "55-plus", name: "55+ Active Adult Living", key: "55-plus"},
	{prefix: "luxury-senior-living", name: "Luxury Senior Living", key: "luxury-senior-living"},
}

// resolvedCareType is the display name and base-content key for a request.
type resolvedCareType struct {
	Name string
	Key  string
}

// resolveCareType inspects the path for care markers, then falls back to the
// template's bound care type, then to assisted living.
func resolveCareType(segments []string, tpl Template, catalog *Catalog) resolvedCareType {
	for _, marker := range careMarkers {
		for _, seg := range segments {
			if strings.HasPrefix(seg, marker.prefix) {
				return resolvedCareType{Name: marker.name, Key: marker.key}
			}
		}
	}

	if tpl.CareTypeID != nil && catalog != nil {
		if ct, err := catalog.GetCareType(*tpl.CareTypeID); err == nil && strings.TrimSpace(ct.Name) != "" {
			key := Slugify(ct.Slug)
			if key == "" {
				key = Slugify(ct.Name)
			}
			return resolvedCareType{Name: ct.Name, Key: key}
		}
	}

	return resolvedCareType{Name: fallbackCareTypeName, Key: fallbackCareTypeKey}
}

const nearMeSuffix = "-near-me"

var cityPrefixes = []string{"best-", "luxury-"}

// CityFromParam strips variant markers from a captured city value, so
// "arvada-near-me" and "best-arvada" both name the city "arvada".
func CityFromParam(raw string) string {
	city := Slugify(raw)
	city = strings.TrimSuffix(city, nearMeSuffix)
	for _, prefix := range cityPrefixes {
		city = strings.TrimPrefix(city, prefix)
	}
	return city
}

// TitleCity renders a city slug for display: "castle-rock" becomes "Castle Rock".
func TitleCity(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool { return r == '-' })
	return cases.Title(language.English).String(strings.Join(words, " "))
}
