package extract

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/joseph-ayodele/tourpack/constants"
	"github.com/joseph-ayodele/tourpack/internal/entity"
	"github.com/joseph-ayodele/tourpack/internal/knowledge"
)

// descriptionWindow is how many lines after the title feed the description.
const descriptionWindow = 5

// Engine is the rule-based record extractor. It never fails: every field falls back to "".
type Engine struct {
	kb     *knowledge.Knowledgebase
	now    func() time.Time
	logger *slog.Logger
}

type Option func(*Engine)

// WithClock overrides the time source used for created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func WithKnowledgebase(kb *knowledge.Knowledgebase) Option {
	return func(e *Engine) {
		if kb != nil {
			e.kb = kb
		}
	}
}

func NewEngine(logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{kb: knowledge.Default(), now: time.Now, logger: logger}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Engine) Name() string { return string(constants.StrategyRules) }

// Extract implements RecordExtractor. The error is always nil.
func (e *Engine) Extract(_ context.Context, doc entity.Document) (entity.Record, error) {
	rec := e.ExtractText(doc.Text)
	e.logger.Debug("extract.rules.ok",
		"doc_id", doc.ID,
		"text_len", len(doc.Text),
		"title", rec[constants.FieldTitle],
		"country", rec[constants.FieldCountry],
		"duration", rec[constants.FieldDuration],
	)
	return rec, nil
}

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// ExtractText builds one record from raw document text.
func (e *Engine) ExtractText(text string) entity.Record {
	rec := entity.NewRecord()
	ts := e.now().UTC().Format(time.RFC3339)
	rec[constants.FieldCreatedAt] = ts
	rec[constants.FieldUpdatedAt] = ts

	text = lineEndings.Replace(text)
	if strings.TrimSpace(text) == "" {
		return rec
	}

	p := e.kb.Patterns
	lower := strings.ToLower(text)
	lines := strings.Split(text, "\n")

	titleIdx, title := firstNonBlank(lines)
	rec[constants.FieldTitle] = title
	rec[constants.FieldDescription] = description(lines, titleIdx)
	rec[constants.FieldDuration] = p.Duration.FindString(text)
	rec[constants.FieldPrice] = firstNonEmpty(strings.TrimSpace(p.Price.FindString(text)), constants.DefaultPrice)
	rec[constants.FieldCategory] = firstNonEmpty(e.category(lower), string(constants.DefaultCategory))
	rec[constants.FieldCountry] = e.country(lower)

	cities := MatchKeywords(text, e.kb.Cities)
	places := MatchKeywords(text, e.kb.Places)
	rec[constants.FieldCities] = cities
	rec[constants.FieldPlaces] = places
	rec[constants.FieldLocations] = joinUnique(append(splitList(cities), splitList(places)...))
	rec[constants.FieldHotels] = joinUnique(p.Hotel.FindAllString(text, -1))

	inclusions := InclusionsBlock(text, p)
	exclusions := ExclusionsBlock(text, p)
	rec[constants.FieldInclusions] = inclusions
	rec[constants.FieldExclusions] = exclusions
	for _, svc := range e.kb.Services {
		rec[svc.Field] = serviceFlag(svc, inclusions, exclusions)
	}

	rec[constants.FieldActivities] = MatchKeywords(text, e.kb.Activities)
	rec[constants.FieldFoodDetails] = MatchKeywords(text, e.kb.Food)
	rec[constants.FieldAmenities] = MatchKeywords(text, e.kb.Amenities)
	rec[constants.FieldItinerary] = itinerary(lines, p)

	return rec
}

func (e *Engine) country(lower string) string {
	for _, c := range e.kb.Countries {
		if strings.Contains(lower, c.Keyword) {
			return c.Name
		}
	}
	return ""
}

func (e *Engine) category(lower string) string {
	for _, c := range e.kb.Categories {
		if strings.Contains(lower, c.Keyword) {
			return string(c.Category)
		}
	}
	return ""
}

func firstNonBlank(lines []string) (int, string) {
	for i, l := range lines {
		if t := strings.TrimSpace(l); t != "" {
			return i, t
		}
	}
	return -1, ""
}

func description(lines []string, titleIdx int) string {
	if titleIdx < 0 {
		return ""
	}
	end := min(titleIdx+1+descriptionWindow, len(lines))
	parts := make([]string, 0, descriptionWindow)
	for _, l := range lines[titleIdx+1 : end] {
		if t := strings.TrimSpace(l); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func itinerary(lines []string, p *knowledge.Patterns) string {
	var days []string
	for _, l := range lines {
		t := strings.TrimSpace(l)
		if p.DayLine.MatchString(t) {
			days = append(days, t)
		}
	}
	return strings.Join(days, "\n")
}

// serviceFlag answers Yes when the inclusions mention the service, No when the exclusions do.
func serviceFlag(rule knowledge.ServiceRule, inclusions, exclusions string) string {
	inc, exc := strings.ToLower(inclusions), strings.ToLower(exclusions)
	for _, t := range rule.Terms {
		if strings.Contains(inc, t) {
			return constants.Yes
		}
	}
	for _, t := range rule.Terms {
		if strings.Contains(exc, t) {
			return constants.No
		}
	}
	return ""
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ", ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
