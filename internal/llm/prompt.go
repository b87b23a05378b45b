package llm

import (
	"strings"

	"github.com/joseph-ayodele/tourpack/constants"
)

// BuildSystemPrompt composes the system message: output shape, the exact key list and the
// formatting rules the validator enforces.
func BuildSystemPrompt(fields []string) string {
	if len(fields) == 0 {
		fields = constants.Fields
	}
	parts := []string{
		"You are a tour package parser. Read the itinerary document and return ONLY one flat JSON object.",
		"Use exactly these keys, all of them, and no others: " + strings.Join(fields, ", ") + ".",
		"Every value MUST be a string. If a value is not present in the document, use an empty string. Never output null.",
		"Lists (cities, places, hotels, activities, amenities) are comma-and-space separated in one string.",
		"flights_included, airport_transfer and guide_included are \"Yes\", \"No\" or \"\".",
		"category is one of: " + strings.Join(constants.AsStringSlice(), ", ") + ".",
		"If no price is given, use \"" + constants.DefaultPrice + "\".",
		"itinerary lists the day-by-day lines separated by newlines.",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt packages the document identifier and its full text.
func BuildUserPrompt(docID, text string) string {
	var b strings.Builder
	if id := strings.TrimSpace(docID); id != "" {
		b.WriteString("Document: ")
		b.WriteString(id)
		b.WriteString("\n")
	}
	b.WriteString("\nItinerary text:\n")
	b.WriteString(strings.TrimSpace(text))
	b.WriteString("\n\nReturn ONLY JSON with the keys listed above.")
	return b.String()
}
