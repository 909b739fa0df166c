package landing

import (
	"strings"
)

// VariantInput carries what variant triggers inspect.
type VariantInput struct {
	Segments []string
	City     string
}

// VariantRule is a pure content transformation guarded by a trigger. Apply
// must not modify its argument and must be idempotent.
type VariantRule struct {
	Name    string
	Trigger func(VariantInput) bool
	Apply   func(Document) Document
}

// VariantRules run in this order; a later rule wins on a field two rules touch.
var VariantRules = []VariantRule{
	{Name: "near-me", Trigger: nearMeTrigger, Apply: applyNearMe},
	{Name: "best", Trigger: segmentPrefixTrigger("best-"), Apply: applyBest},
	{Name: "luxury", Trigger: segmentPrefixTrigger("luxury-"), Apply: applyLuxury},
	{Name: "55-plus", Trigger: segmentPrefixTrigger("55-plus"), Apply: applyFiftyFivePlus},
}

// ApplyVariants runs every triggered rule over a copy of base and returns the
// result with the names of the rules that fired.
func ApplyVariants(base Document, in VariantInput) (Document, []string) {
	doc := CloneDocument(base)
	if doc == nil {
		doc = Document{}
	}
	var applied []string
	for _, rule := range VariantRules {
		if !rule.Trigger(in) {
			continue
		}
		doc = rule.Apply(doc)
		applied = append(applied, rule.Name)
	}
	return doc, applied
}

// nearMeTrigger only looks at the city value, and only at its tail, so a city
// that merely contains "near-me" does not fire it.
func nearMeTrigger(in VariantInput) bool {
	return strings.HasSuffix(in.City, nearMeSuffix)
}

func segmentPrefixTrigger(prefix string) func(VariantInput) bool {
	return func(in VariantInput) bool {
		for _, seg := range in.Segments {
			if strings.HasPrefix(seg, prefix) {
				return true
			}
		}
		return false
	}
}

func applyNearMe(doc Document) Document {
	out := CloneDocument(doc)
	setField(out, "Find {careType} Near You in {city}", "intro", "heading")
	setField(out, "Why Families Near {city} Choose Our {careType}", "whyChoose", "heading")
	return out
}

func applyBest(doc Document) Document {
	out := CloneDocument(doc)
	setField(out, "Compare the Best {careType} in {city}", "intro", "heading")
	setField(out, "What Sets the Best {careType} in {city} Apart", "whyChoose", "heading")
	return out
}

func applyLuxury(doc Document) Document {
	out := CloneDocument(doc)
	setReason(out, "amenities", Document{
		"key":   "amenities",
		"title": "Resort-Style Amenities",
		"body":  "Chef-prepared dining, spa services, concierge care and elegantly appointed residences in {city}.",
	})
	return out
}

func applyFiftyFivePlus(doc Document) Document {
	out := CloneDocument(doc)
	out["keyPoints"] = []any{
		"Maintenance-free homes designed for active adults",
		"Fitness centers, pools and walking trails",
		"Clubs, classes and social events every week",
		"Freedom to travel with the peace of mind of a lock-and-leave lifestyle",
		"Optional services that grow with you",
	}
	setField(out, "Active 55+ Living in {city}", "intro", "heading")
	setField(out, "Why Active Adults Choose Our Communities in {city}", "whyChoose", "heading")
	return out
}

// setField writes value at the nested key path, creating objects as needed.
func setField(doc Document, value any, keys ...string) {
	current := doc
	for _, key := range keys[:len(keys)-1] {
		next, ok := current[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[key] = next
		}
		current = next
	}
	current[keys[len(keys)-1]] = value
}

// setReason replaces the whyChoose reason card with the given key, appending it
// when absent.
func setReason(doc Document, key string, card Document) {
	why, ok := doc["whyChoose"].(map[string]any)
	if !ok {
		why = map[string]any{}
		doc["whyChoose"] = why
	}
	reasons, _ := why["reasons"].([]any)
	for i, item := range reasons {
		if existing, ok := item.(map[string]any); ok && existing["key"] == key {
			reasons[i] = card
			why["reasons"] = reasons
			return
		}
	}
	why["reasons"] = append(reasons, card)
}
