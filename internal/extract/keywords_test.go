package extract

import (
	"testing"

	"github.com/joseph-ayodele/tourpack/internal/knowledge"
)

func TestMatchKeywords_JoinPolicies(t *testing.T) {
	text := "Dinner on arrival, lunch by the river, BREAKFAST daily"

	tests := []struct {
		name   string
		policy knowledge.JoinPolicy
		want   string
	}{
		{"sorted unique", knowledge.SortedUnique, "Breakfast, Dinner, Lunch"},
		{"first seen", knowledge.FirstSeen, "Dinner, Lunch, Breakfast"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := knowledge.NewKeywordSet("food", knowledge.Substring, tt.policy, "Breakfast", "Lunch", "Dinner")
			if got := MatchKeywords(text, set); got != tt.want {
				t.Errorf("MatchKeywords = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMatchKeywords_DuplicatesCaseInsensitive(t *testing.T) {
	set := knowledge.NewKeywordSet("food", knowledge.Substring, knowledge.FirstSeen, "Breakfast", "breakfast", "BREAKFAST")
	if got := MatchKeywords("breakfast included", set); got != "Breakfast" {
		t.Errorf("MatchKeywords = %q, want single Breakfast", got)
	}
}

func TestMatchKeywords_WholeWord(t *testing.T) {
	whole := knowledge.NewKeywordSet("cities", knowledge.WholeWord, knowledge.SortedUnique, "Paro", "Goa")
	sub := knowledge.NewKeywordSet("cities", knowledge.Substring, knowledge.SortedUnique, "Paro", "Goa")
	text := "A paronym for the goal."

	if got := MatchKeywords(text, whole); got != "" {
		t.Errorf("whole-word matched inside words: %q", got)
	}
	if got := MatchKeywords(text, sub); got != "Goa, Paro" {
		t.Errorf("substring = %q", got)
	}
}

func TestMatchKeywords_PhraseAcrossLineBreak(t *testing.T) {
	set := knowledge.NewKeywordSet("places", knowledge.WholeWord, knowledge.SortedUnique, "Tiger's Nest")
	if got := MatchKeywords("hike to Tiger's\nNest today", set); got != "Tiger's Nest" {
		t.Errorf("MatchKeywords = %q", got)
	}
}

func TestMatchKeywords_Empty(t *testing.T) {
	if got := MatchKeywords("", knowledge.Default().Activities); got != "" {
		t.Errorf("MatchKeywords on empty text = %q", got)
	}
}
