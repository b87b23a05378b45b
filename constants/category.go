package constants

import (
	"strings"
)

type Category string

const (
	TourPackage Category = "Tour Package"
	Honeymoon   Category = "Honeymoon"
	Adventure   Category = "Adventure"
	Pilgrimage  Category = "Pilgrimage"
	Wildlife    Category = "Wildlife"
	Family      Category = "Family"
	Beach       Category = "Beach"
	Cultural    Category = "Cultural"
)

// DefaultCategory is what the rule engine writes when no category keyword matches.
const DefaultCategory = TourPackage

var allCategories = []Category{
	TourPackage,
	Honeymoon,
	Adventure,
	Pilgrimage,
	Wildlife,
	Family,
	Beach,
	Cultural,
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// Canonicalize maps a free-form label (usually from a model) onto a known category.
// Unknown labels return the input trimmed and false, so callers can keep the model's wording.
func Canonicalize(input string) (Category, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false
	}

	normalized := strings.ToLower(trimmed)

	synonyms := map[string]Category{
		"honeymoon package": Honeymoon,
		"romantic":          Honeymoon,
		"couple":            Honeymoon,
		"trekking":          Adventure,
		"hiking":            Adventure,
		"religious":         Pilgrimage,
		"spiritual":         Pilgrimage,
		"safari":            Wildlife,
		"family tour":       Family,
		"beach holiday":     Beach,
		"heritage":          Cultural,
		"culture":           Cultural,
		"tour":              TourPackage,
		"package":           TourPackage,
	}

	if cat, ok := synonyms[normalized]; ok {
		return cat, true
	}

	for _, cat := range allCategories {
		if normalized == strings.ToLower(string(cat)) {
			return cat, true
		}
	}

	return Category(trimmed), false
}
