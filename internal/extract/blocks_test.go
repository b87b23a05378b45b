package extract

import (
	"testing"

	"github.com/joseph-ayodele/tourpack/internal/knowledge"
)

func TestInclusionsBlock(t *testing.T) {
	p := knowledge.Default().Patterns

	tests := []struct {
		name string
		text string
		want string
	}{
		{"same line header", "Inclusions: Breakfast, Airport pickup\nExclusions: Lunch", "Breakfast, Airport pickup"},
		{"multi-line bullets", "INCLUSIONS\n• Hotel stay\n• Transfers,\n\nEXCLUDES\n• Tips", "Hotel stay, Transfers"},
		{"earliest terminator wins", "Inclusion: Car\nDoes not include: Tips\nExclusions: Visa", "Car"},
		{"no terminator", "Inclusions: everything under the sun", ""},
		{"no header", "Exclusions: Lunch", ""},
		{"no headers at all", "Just a plain itinerary\nDay 1", ""},
		{"title mentions both headers", "Package Inclusions & Exclusions\n\nInclusions:\n- Breakfast\n- Airport pickup\nExclusions:\n- Lunch", "Breakfast, Airport pickup"},
		{"bulleted header", "* Inclusions: Guide\n* Exclusions: Tips", "Guide"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InclusionsBlock(tt.text, p); got != tt.want {
				t.Errorf("InclusionsBlock = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExclusionsBlock(t *testing.T) {
	p := knowledge.Default().Patterns

	tests := []struct {
		name string
		text string
		want string
	}{
		{"to end of text", "Exclusions: Lunch", "Lunch"},
		{"stops at blank line", "Excludes:\nVisa fees\nTips\n\nTerms and conditions apply", "Visa fees, Tips"},
		{"header followed by blank line", "Exclusions:\n\nPersonal expenses\nInsurance", "Personal expenses, Insurance"},
		{"does not include", "Does not include: airfare", "airfare"},
		{"header word in prose", "The package does not include airfare", ""},
		{"title mentions both headers", "Package Inclusions & Exclusions\n\nInclusions:\n- Breakfast\n- Airport pickup\nExclusions:\n- Lunch", "Lunch"},
		{"excludes in prose before inclusions", "Price excludes GST.\nInclusions:\nBreakfast\nExclusions:\nLunch", "Lunch"},
		{"closing header of inclusions", "Exclusions below\nInclusions: Car\nExcludes: Tips", "Tips"},
		{"absent", "Inclusions: Breakfast", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExclusionsBlock(tt.text, p); got != tt.want {
				t.Errorf("ExclusionsBlock = %q, want %q", got, tt.want)
			}
		})
	}
}
