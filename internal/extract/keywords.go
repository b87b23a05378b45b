package extract

import (
	"sort"
	"strings"

	"github.com/joseph-ayodele/tourpack/internal/knowledge"
)

type keywordHit struct {
	display string
	pos     int
	order   int
}

// MatchKeywords finds every term of set in text and joins the hits with ", " according to the
// set's join policy. Duplicate terms (case-insensitive) are reported once.
func MatchKeywords(text string, set knowledge.KeywordSet) string {
	if text == "" {
		return ""
	}
	seen := make(map[string]struct{}, len(set.Terms))
	hits := make([]keywordHit, 0, 4)
	for i, term := range set.Terms {
		key := strings.ToLower(term.Display)
		if _, dup := seen[key]; dup {
			continue
		}
		pos := term.Index(text)
		if pos < 0 {
			continue
		}
		seen[key] = struct{}{}
		hits = append(hits, keywordHit{display: term.Display, pos: pos, order: i})
	}
	if len(hits) == 0 {
		return ""
	}

	switch set.Policy {
	case knowledge.FirstSeen:
		sort.SliceStable(hits, func(a, b int) bool {
			if hits[a].pos != hits[b].pos {
				return hits[a].pos < hits[b].pos
			}
			return hits[a].order < hits[b].order
		})
	default:
		sort.SliceStable(hits, func(a, b int) bool {
			la, lb := strings.ToLower(hits[a].display), strings.ToLower(hits[b].display)
			if la != lb {
				return la < lb
			}
			return hits[a].display < hits[b].display
		})
	}

	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.display
	}
	return strings.Join(out, ", ")
}

// joinUnique joins non-empty parts, dropping case-insensitive duplicates while keeping order.
func joinUnique(parts []string) string {
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		key := strings.ToLower(p)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return strings.Join(out, ", ")
}
