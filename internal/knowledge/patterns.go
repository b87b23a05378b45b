package knowledge

import "regexp"

// header matches term at the start of a line, optionally after a bullet glyph, with an
// optional trailing colon.
func header(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^[ \t]*(?:[-•*][ \t]*)?(?:` + term + `)\b[ \t]*:?`)
}

// Patterns are the compiled text rules. Header patterns only locate boundaries; the span
// between boundaries is cut by the extractor.
type Patterns struct {
	Duration         *regexp.Regexp
	Price            *regexp.Regexp
	InclusionsHeader *regexp.Regexp
	// ExclusionsHeaders are the candidate terminators of the inclusions block and the start of
	// the exclusions block.
	ExclusionsHeaders []*regexp.Regexp
	BlankLine         *regexp.Regexp
	Hotel             *regexp.Regexp
	DayLine           *regexp.Regexp
}

func compilePatterns() *Patterns {
	return &Patterns{
		Duration: regexp.MustCompile(`(?i)\b\d+[ \t]*nights?[ \t]*/[ \t]*\d+[ \t]*days?\b`),
		Price: regexp.MustCompile(
			`(?i)(?:\b(?:USD|INR|EUR|GBP|AUD|SGD|AED|NPR|Rs\.?)[ \t]*|[$₹€£][ \t]*)\d[\d,]*(?:\.\d{1,2})?`),
		InclusionsHeader: header(`inclusions?`),
		ExclusionsHeaders: []*regexp.Regexp{
			header(`exclusions?`),
			header(`excludes`),
			header(`does[ \t]+not[ \t]+include`),
		},
		BlankLine: regexp.MustCompile(`\n[ \t]*\n`),
		// Up to four capitalised words directly before Hotel/Resort/Villa, on one line.
		Hotel:   regexp.MustCompile(`\b(?:[A-Z][A-Za-z'&.-]*[ \t]+){1,4}(?:Hotel|Resort|Villas?)\b`),
		DayLine: regexp.MustCompile(`(?i)^day[ \t]*\d+\b`),
	}
}
