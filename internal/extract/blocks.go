package extract

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/tourpack/internal/knowledge"
)

// InclusionsBlock returns the text between the inclusions header and the earliest exclusions
// header that follows it. Without both boundaries the block is empty.
func InclusionsBlock(text string, p *knowledge.Patterns) string {
	loc := p.InclusionsHeader.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	rest := text[loc[1]:]
	start, _ := earliestMatch(rest, p.ExclusionsHeaders)
	if start < 0 {
		return ""
	}
	return flattenBlock(rest[:start])
}

// ExclusionsBlock returns the paragraph that follows the exclusions header, ending at the next
// blank line or the end of the text. When an inclusions block is closed, the header that closed
// it is the one used; otherwise the earliest exclusions header in the text.
func ExclusionsBlock(text string, p *knowledge.Patterns) string {
	from := 0
	if loc := p.InclusionsHeader.FindStringIndex(text); loc != nil {
		if start, _ := earliestMatch(text[loc[1]:], p.ExclusionsHeaders); start >= 0 {
			from = loc[1] + start
		}
	}
	_, end := earliestMatch(text[from:], p.ExclusionsHeaders)
	if end < 0 {
		return ""
	}
	rest := strings.TrimLeft(text[from+end:], " \t\r\n")
	if loc := p.BlankLine.FindStringIndex(rest); loc != nil {
		rest = rest[:loc[0]]
	}
	return flattenBlock(rest)
}

// earliestMatch returns the start and end offsets of the leftmost match among candidates.
func earliestMatch(text string, candidates []*regexp.Regexp) (int, int) {
	start, end := -1, -1
	for _, re := range candidates {
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		if start < 0 || loc[0] < start {
			start, end = loc[0], loc[1]
		}
	}
	return start, end
}

// flattenBlock turns a multi-line span into one line: each line trimmed of whitespace, bullet
// glyphs and trailing separators, blanks dropped, joined with ", ".
func flattenBlock(span string) string {
	lines := strings.Split(span, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		l = strings.TrimLeft(l, "•·*-\u2013\u2014 \t")
		l = strings.TrimRight(l, ",; \t")
		if l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, ", ")
}
