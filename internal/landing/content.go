package landing

// BaseContent maps a care-type key to the canonical content document that
// variant rules transform. Documents are never mutated.
type BaseContent map[string]Document

// Lookup returns the document for key, falling back to assisted living.
func (b BaseContent) Lookup(key string) Document {
	if doc, ok := b[key]; ok {
		return doc
	}
	return b[fallbackCareTypeKey]
}

func reasons(cards ...[3]string) []any {
	out := make([]any, 0, len(cards))
	for _, card := range cards {
		out = append(out, map[string]any{"key": card[0], "title": card[1], "body": card[2]})
	}
	return out
}

func baseDocument(introBody string, keyPoints []any, cards []any) Document {
	return Document{
		"intro": map[string]any{
			"heading": "{careType} in {city}",
			"body":    introBody,
		},
		"whyChoose": map[string]any{
			"heading": "Why Choose Our {careType} Communities in {city}",
			"reasons": cards,
		},
		"keyPoints": keyPoints,
	}
}

// DefaultBaseContent is the built-in copy library.
func DefaultBaseContent() BaseContent {
	return BaseContent{
		"assisted-living": baseDocument(
			"Our assisted living communities in {city} pair private apartments with help for daily routines, so residents keep their independence.",
			[]any{
				"Personalized care plans reviewed with every family",
				"Licensed nurses and caregivers on site around the clock",
				"Three chef-prepared meals a day",
				"Housekeeping, laundry and scheduled transportation",
			},
			reasons(
				[3]string{"care", "Care That Adapts", "Support levels change with each resident's needs, without a move."},
				[3]string{"amenities", "Everyday Comforts", "Dining, fitness and social spaces designed for connection in {city}."},
				[3]string{"team", "A Familiar Team", "Long-tenured staff who know residents by name."},
			),
		),
		"memory-care": baseDocument(
			"{careType} in {city} provides a secure, purpose-built setting for people living with Alzheimer's disease and other forms of dementia.",
			[]any{
				"Secured neighborhoods with circular walking paths",
				"Dementia-trained caregivers on every shift",
				"Daily programming built around each resident's history",
				"Family education and support groups",
			},
			reasons(
				[3]string{"care", "Specialized Training", "Every team member completes dementia care certification."},
				[3]string{"amenities", "Calming Spaces", "Sensory gardens and familiar, home-like rooms in {city}."},
				[3]string{"team", "Partnership With Families", "Regular care conferences keep families informed."},
			),
		),
		"independent-living": baseDocument(
			"Independent living in {city} means maintenance-free apartments, dining and activities with support close at hand.",
			[]any{
				"Spacious apartments with full kitchens",
				"Weekly housekeeping and maintenance included",
				"Fitness, wellness and lifelong learning programs",
				"Access to additional care if needs change",
			},
			reasons(
				[3]string{"lifestyle", "A Full Calendar", "Clubs, outings and events planned by residents."},
				[3]string{"amenities", "Everything On Site", "Bistro, salon, fitness center and library in {city}."},
				[3]string{"security", "Peace of Mind", "Emergency response and staff available day and night."},
			),
		),
		"senior-living": baseDocument(
			"Senior living in {city} offers a range of care options on one campus, from independent living to memory care.",
			[]any{
				"Multiple levels of care in one community",
				"Restaurant-style dining",
				"Wellness programs tailored to older adults",
				"Transportation to appointments and errands",
			},
			reasons(
				[3]string{"care", "Continuum of Care", "Residents can stay in a familiar place as needs change."},
				[3]string{"amenities", "Room to Enjoy", "Gardens, lounges and activity spaces across {city} campuses."},
				[3]string{"team", "Trusted Locally", "Serving {city} families for many years."},
			),
		),
		"55-plus": baseDocument(
			"Our 55+ communities in {city} are designed for active adults who want more time for what they love.",
			[]any{
				"Homes designed for active adults",
				"Community events and clubs",
				"Walkable neighborhoods",
			},
			reasons(
				[3]string{"lifestyle", "Live Your Way", "Freedom from home upkeep with neighbors who share your interests."},
				[3]string{"amenities", "Resort Amenities", "Pools, fitness studios and clubhouses in {city}."},
			),
		),
		"luxury-senior-living": baseDocument(
			"Luxury senior living in {city} combines refined residences with attentive, personalized service.",
			[]any{
				"Elegant residences with premium finishes",
				"Fine dining and private dining rooms",
				"Concierge and valet services",
				"Care available on site when needed",
			},
			reasons(
				[3]string{"service", "Hospitality First", "A service culture modeled on fine hotels."},
				[3]string{"amenities", "Refined Amenities", "Spa, wine room and theater in {city}."},
				[3]string{"care", "Care Behind the Scenes", "Licensed care team available whenever needed."},
			),
		),
	}
}
