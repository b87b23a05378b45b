// Package knowledge holds the static keyword tables and compiled text patterns used by the
// rule-based extractor. Everything here is built once and read-only afterwards.
package knowledge

import (
	"regexp"
	"strings"
	"sync"

	"github.com/joseph-ayodele/tourpack/constants"
)

// JoinPolicy decides how the matched terms of a keyword set are ordered before joining.
type JoinPolicy int

const (
	// SortedUnique sorts matches case-insensitively.
	SortedUnique JoinPolicy = iota
	// FirstSeen orders matches by first occurrence in the text, ties broken by list order.
	FirstSeen
)

// MatchMode decides whether a term must stand as a whole word.
type MatchMode int

const (
	Substring MatchMode = iota
	WholeWord
)

// Term is one keyword with its compiled matcher.
type Term struct {
	Display string
	re      *regexp.Regexp
}

// Index returns the byte offset of the first match of the term in text, or -1.
func (t Term) Index(text string) int {
	loc := t.re.FindStringIndex(text)
	if loc == nil {
		return -1
	}
	return loc[0]
}

// KeywordSet is a keyword list together with how it is matched and joined.
type KeywordSet struct {
	Name   string
	Mode   MatchMode
	Policy JoinPolicy
	Terms  []Term
}

// NewKeywordSet compiles terms into case-insensitive matchers. Internal whitespace in a term
// matches any run of whitespace so phrases survive line wrapping.
func NewKeywordSet(name string, mode MatchMode, policy JoinPolicy, terms ...string) KeywordSet {
	set := KeywordSet{Name: name, Mode: mode, Policy: policy, Terms: make([]Term, 0, len(terms))}
	for _, t := range terms {
		set.Terms = append(set.Terms, Term{Display: t, re: compileTerm(t, mode)})
	}
	return set
}

func compileTerm(term string, mode MatchMode) *regexp.Regexp {
	words := strings.Fields(term)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	expr := strings.Join(words, `\s+`)
	if mode == WholeWord {
		expr = `\b` + expr + `\b`
	}
	return regexp.MustCompile(`(?i)` + expr)
}

// CountryRule maps a lower-case keyword to the country name written to the record.
type CountryRule struct {
	Keyword string
	Name    string
}

// CategoryRule maps a lower-case keyword to a category.
type CategoryRule struct {
	Keyword  string
	Category constants.Category
}

// ServiceRule lists the terms whose presence in the inclusions or exclusions block
// answers a yes/no service field.
type ServiceRule struct {
	Field string
	Terms []string
}

// Knowledgebase bundles every table and pattern the rule engine consults.
type Knowledgebase struct {
	Countries  []CountryRule
	Categories []CategoryRule
	Services   []ServiceRule

	Cities     KeywordSet
	Places     KeywordSet
	Activities KeywordSet
	Food       KeywordSet
	Amenities  KeywordSet

	Patterns *Patterns
}

var defaultKB = sync.OnceValue(build)

// Default returns the process-wide knowledgebase.
func Default() *Knowledgebase {
	return defaultKB()
}

func build() *Knowledgebase {
	return &Knowledgebase{
		// Order matters: the first keyword found wins.
		Countries: []CountryRule{
			{"bhutan", "Bhutan"},
			{"nepal", "Nepal"},
			{"bali", "Indonesia"},
			{"indonesia", "Indonesia"},
			{"thailand", "Thailand"},
			{"vietnam", "Vietnam"},
			{"sri lanka", "Sri Lanka"},
			{"maldives", "Maldives"},
			{"dubai", "United Arab Emirates"},
			{"singapore", "Singapore"},
			{"malaysia", "Malaysia"},
			{"japan", "Japan"},
			{"india", "India"},
		},
		Categories: []CategoryRule{
			{"honeymoon", constants.Honeymoon},
			{"pilgrimage", constants.Pilgrimage},
			{"safari", constants.Wildlife},
			{"wildlife", constants.Wildlife},
			{"trek", constants.Adventure},
			{"adventure", constants.Adventure},
			{"family", constants.Family},
			{"beach", constants.Beach},
			{"heritage", constants.Cultural},
			{"cultural", constants.Cultural},
		},
		Services: []ServiceRule{
			{constants.FieldFlightsIncluded, []string{"flight", "airfare", "air ticket"}},
			{constants.FieldAirportTransfer, []string{"airport transfer", "airport pickup", "airport pick-up", "airport drop"}},
			{constants.FieldGuideIncluded, []string{"guide"}},
		},
		Cities: NewKeywordSet(constants.FieldCities, WholeWord, SortedUnique,
			"Ubud", "Kuta", "Seminyak", "Nusa Dua", "Denpasar", "Uluwatu",
			"Thimphu", "Paro", "Punakha", "Bumthang",
			"Kathmandu", "Pokhara", "Chitwan",
			"Bangkok", "Phuket", "Pattaya", "Krabi", "Chiang Mai",
			"Hanoi", "Ho Chi Minh City", "Da Nang",
			"Colombo", "Kandy", "Galle",
			"Dubai", "Abu Dhabi", "Singapore", "Kuala Lumpur", "Langkawi",
			"Tokyo", "Kyoto", "Osaka",
			"Delhi", "Agra", "Jaipur", "Goa",
		),
		Places: NewKeywordSet(constants.FieldPlaces, WholeWord, SortedUnique,
			"Tanah Lot", "Uluwatu Temple", "Tegallalang Rice Terrace", "Mount Batur", "Ubud Monkey Forest",
			"Tiger's Nest", "Punakha Dzong", "Dochula Pass", "Buddha Dordenma", "Chele La Pass",
			"Swayambhunath", "Pashupatinath", "Phewa Lake",
			"Grand Palace", "Phi Phi Islands", "Ha Long Bay",
			"Sigiriya", "Temple of the Tooth",
			"Burj Khalifa", "Marina Bay Sands", "Sentosa", "Petronas Towers",
			"Mount Fuji", "Taj Mahal",
		),
		Activities: NewKeywordSet(constants.FieldActivities, Substring, SortedUnique,
			"Snorkeling", "Scuba Diving", "Trekking", "Hiking", "Rafting", "Paragliding",
			"Cycling", "Kayaking", "Surfing", "Safari", "Cooking Class", "Sightseeing",
			"Temple Visit", "City Tour", "Boat Ride", "Cruise", "Yoga", "Hot Stone Bath",
		),
		Food: NewKeywordSet(constants.FieldFoodDetails, Substring, FirstSeen,
			"Breakfast", "Lunch", "Dinner", "Buffet", "Local Cuisine", "Seafood",
			"Vegetarian", "Halal", "Welcome Drink", "Barbecue",
		),
		Amenities: NewKeywordSet(constants.FieldAmenities, Substring, FirstSeen,
			"WiFi", "Wi-Fi", "Swimming Pool", "Private Pool", "Spa", "Gym", "Air-Conditioned",
			"Minibar", "Room Service", "Jacuzzi", "Parking",
		),
		Patterns: compilePatterns(),
	}
}
