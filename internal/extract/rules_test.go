package extract

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/joseph-ayodele/tourpack/constants"
	"github.com/joseph-ayodele/tourpack/internal/entity"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func newTestEngine() *Engine {
	return NewEngine(nil, WithClock(func() time.Time { return fixedNow }))
}

const bhutanItinerary = `
Magical Bhutan Honeymoon
Discover the last Himalayan kingdom.
Visit Paro and Thimphu with a private escort.

Hike to Tiger's Nest monastery.
Enjoy a hot stone bath.
Price: USD 1,450 per person
Duration: 4 Nights / 5 Days
Accommodation: Zhiwa Ling Heritage Hotel
Dhensa Boutique Resort
Rooms offer Wi-Fi and a spa.

Day 1: Arrive in Paro
Day 2: Thimphu sightseeing
  Day 3 - Punakha Dzong excursion

Inclusions:
- Daily breakfast and dinner
- Airport pickup and drop
- English speaking guide
Exclusions:
- Flights
- Lunch

Terms apply.`

func TestExtractText_FullItinerary(t *testing.T) {
	rec := newTestEngine().ExtractText(bhutanItinerary)

	want := map[string]string{
		constants.FieldTitle:           "Magical Bhutan Honeymoon",
		constants.FieldDescription:     "Discover the last Himalayan kingdom. Visit Paro and Thimphu with a private escort. Hike to Tiger's Nest monastery. Enjoy a hot stone bath.",
		constants.FieldPrice:           "USD 1,450",
		constants.FieldDuration:        "4 Nights / 5 Days",
		constants.FieldCategory:        "Honeymoon",
		constants.FieldCountry:         "Bhutan",
		constants.FieldCities:          "Paro, Punakha, Thimphu",
		constants.FieldPlaces:          "Punakha Dzong, Tiger's Nest",
		constants.FieldLocations:       "Paro, Punakha, Thimphu, Punakha Dzong, Tiger's Nest",
		constants.FieldHotels:          "Zhiwa Ling Heritage Hotel, Dhensa Boutique Resort",
		constants.FieldInclusions:      "Daily breakfast and dinner, Airport pickup and drop, English speaking guide",
		constants.FieldExclusions:      "Flights, Lunch",
		constants.FieldFlightsIncluded: "No",
		constants.FieldAirportTransfer: "Yes",
		constants.FieldGuideIncluded:   "Yes",
		constants.FieldActivities:      "Hot Stone Bath, Sightseeing",
		constants.FieldFoodDetails:     "Breakfast, Dinner, Lunch",
		constants.FieldAmenities:       "Wi-Fi, Spa",
		constants.FieldItinerary:       "Day 1: Arrive in Paro\nDay 2: Thimphu sightseeing\nDay 3 - Punakha Dzong excursion",
		constants.FieldCreatedAt:       "2025-03-14T09:26:53Z",
		constants.FieldUpdatedAt:       "2025-03-14T09:26:53Z",
	}
	for field, v := range want {
		if got := rec[field]; got != v {
			t.Errorf("%s = %q, want %q", field, got, v)
		}
	}
	for _, field := range []string{constants.FieldID, constants.FieldPDFURL, constants.FieldMinimumPax, constants.FieldVisaGuidance} {
		if rec[field] != "" {
			t.Errorf("%s = %q, want empty", field, rec[field])
		}
	}
}

func TestExtractText_EveryFieldPresent(t *testing.T) {
	inputs := []string{"", "   \n\n", "Just a title", bhutanItinerary, "Inclusions: nothing closes this"}
	e := newTestEngine()
	for _, in := range inputs {
		rec := e.ExtractText(in)
		if len(rec) != len(constants.Fields) {
			t.Fatalf("record for %q has %d fields, want %d", in, len(rec), len(constants.Fields))
		}
		for _, f := range constants.Fields {
			if _, ok := rec[f]; !ok {
				t.Errorf("record for %q missing field %s", in, f)
			}
		}
	}
}

func TestExtractText_EmptyDocument(t *testing.T) {
	rec := NewEngine(nil).ExtractText("")
	for _, f := range constants.Fields {
		switch f {
		case constants.FieldCreatedAt, constants.FieldUpdatedAt:
			if _, err := time.Parse(time.RFC3339, rec[f]); err != nil {
				t.Errorf("%s = %q is not ISO-8601: %v", f, rec[f], err)
			}
		default:
			if rec[f] != "" {
				t.Errorf("%s = %q, want empty", f, rec[f])
			}
		}
	}
}

func TestExtractText_Idempotent(t *testing.T) {
	first := NewEngine(nil, WithClock(func() time.Time { return fixedNow })).ExtractText(bhutanItinerary)
	second := NewEngine(nil, WithClock(func() time.Time { return fixedNow.Add(time.Hour) })).ExtractText(bhutanItinerary)

	a, b := first.WithoutTimestamps(), second.WithoutTimestamps()
	for _, f := range constants.Fields {
		if a[f] != b[f] {
			t.Errorf("%s differs between runs: %q vs %q", f, a[f], b[f])
		}
	}
}

func TestExtractText_Duration(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Tour\n3 Nights / 4 Days", "3 Nights / 4 Days"},
		{"Tour\n1 night/2 days of fun", "1 night/2 days"},
		{"Tour\n3N/4D", ""},
		{"Tour\nno duration here", ""},
		{"Tour\n3 Nights\n/ 4 Days", ""},
	}
	e := newTestEngine()
	for _, tt := range tests {
		if got := e.ExtractText(tt.text)[constants.FieldDuration]; got != tt.want {
			t.Errorf("duration(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestExtractText_HeadersInTitleLine(t *testing.T) {
	rec := newTestEngine().ExtractText("Package Inclusions & Exclusions\n\nInclusions:\n- Breakfast\n- Airport pickup\nExclusions:\n- Lunch")
	if got := rec[constants.FieldInclusions]; got != "Breakfast, Airport pickup" {
		t.Errorf("inclusions = %q", got)
	}
	if got := rec[constants.FieldExclusions]; got != "Lunch" {
		t.Errorf("exclusions = %q", got)
	}
	if got := rec[constants.FieldAirportTransfer]; got != "Yes" {
		t.Errorf("airport_transfer = %q, want Yes", got)
	}
}

func TestExtractText_LineEndings(t *testing.T) {
	rec := newTestEngine().ExtractText("Title\r\nline2\rline3")
	if got := rec[constants.FieldTitle]; got != "Title" {
		t.Errorf("title = %q", got)
	}
	if got := rec[constants.FieldDescription]; got != "line2 line3" {
		t.Errorf("description = %q, want %q", got, "line2 line3")
	}
}

func TestExtractText_Country(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Trip to BHUTAN", "Bhutan"},
		{"a week in bhutan", "Bhutan"},
		{"Bali escape with a stop in Bhutan", "Bhutan"},
		{"Bali escape", "Indonesia"},
		{"Nowhere in particular", ""},
	}
	e := newTestEngine()
	for _, tt := range tests {
		if got := e.ExtractText(tt.text)[constants.FieldCountry]; got != tt.want {
			t.Errorf("country(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestExtractText_CitiesSorted(t *testing.T) {
	rec := newTestEngine().ExtractText("Bali Highlights\nStart in ubud, end on the beach at KUTA.")
	if got := rec[constants.FieldCities]; got != "Kuta, Ubud" {
		t.Fatalf("cities = %q, want %q", got, "Kuta, Ubud")
	}
}

func TestExtractText_InclusionsExample(t *testing.T) {
	rec := newTestEngine().ExtractText("Inclusions: Breakfast, Airport pickup\nExclusions: Lunch")
	if got := rec[constants.FieldInclusions]; got != "Breakfast, Airport pickup" {
		t.Errorf("inclusions = %q", got)
	}
	if got := rec[constants.FieldExclusions]; got != "Lunch" {
		t.Errorf("exclusions = %q", got)
	}
}

func TestExtractText_DefaultsOnlyWithContent(t *testing.T) {
	rec := newTestEngine().ExtractText("Weekend Getaway\nA short break.")
	if rec[constants.FieldCategory] != string(constants.DefaultCategory) {
		t.Errorf("category = %q", rec[constants.FieldCategory])
	}
	if rec[constants.FieldPrice] != constants.DefaultPrice {
		t.Errorf("price = %q", rec[constants.FieldPrice])
	}
}

func TestEngine_ExtractNeverFails(t *testing.T) {
	e := newTestEngine()
	rec, err := e.Extract(context.Background(), entity.Document{ID: "x.pdf", Text: "\x00\xff garbage \n Inclusions"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec[constants.FieldInclusions] != "" {
		t.Errorf("unterminated inclusions should be empty, got %q", rec[constants.FieldInclusions])
	}
	if !strings.HasPrefix(rec[constants.FieldTitle], "\x00") {
		t.Errorf("title = %q", rec[constants.FieldTitle])
	}
}
