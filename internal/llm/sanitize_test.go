package llm

import (
	"encoding/json"
	"testing"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{"a":"b"}`, `{"a":"b"}`},
		{"```json\n{\"a\":\"b\"}\n```", `{"a":"b"}`},
		{"```\n{\"a\":\"b\"}```", `{"a":"b"}`},
		{"```{\"a\":\"b\"}```", `{"a":"b"}`},
		{"  \n{\"a\":\"b\"}\n ", `{"a":"b"}`},
	}
	for _, tt := range tests {
		if got := StripCodeFences(tt.in); got != tt.want {
			t.Errorf("StripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeAndSanitizeJSON(t *testing.T) {
	raw := []byte(`{
		"Title": " Goa Beach Break ",
		"Flights Included": true,
		"minimum_pax": 4,
		"price": 1299.5,
		"hotels": ["Taj Resort", "", "Sea Villa"],
		"visa_guidance": null,
		"category": "Beach holiday",
		"extra": {"nested": 1}
	}`)
	out, changed, err := NormalizeAndSanitizeJSON(raw, quietLogger())
	if err != nil {
		t.Fatalf("NormalizeAndSanitizeJSON: %v", err)
	}
	if len(changed) == 0 {
		t.Error("expected changes to be reported")
	}

	var m map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"title":            "Goa Beach Break",
		"flights_included": "Yes",
		"minimum_pax":      "4",
		"price":            "1299.5",
		"hotels":           "Taj Resort, Sea Villa",
		"visa_guidance":    "",
		"category":         "Beach",
	}
	for k, v := range want {
		if m[k] != v {
			t.Errorf("%s = %#v, want %q", k, m[k], v)
		}
	}
	if _, ok := m["Title"]; ok {
		t.Error("original key Title should have been renamed")
	}
	if _, ok := m["extra"]; !ok {
		t.Error("unknown keys must be kept for the validator to reject")
	}
}

func TestNormalizeAndSanitizeJSON_NotJSON(t *testing.T) {
	if _, _, err := NormalizeAndSanitizeJSON([]byte("not json"), quietLogger()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestBuildRecordJSONSchema_RejectsWrongShape(t *testing.T) {
	schema := BuildRecordJSONSchema([]string{"title", "price"})
	if err := ValidateJSONAgainstSchema(schema, []byte(`{"title":"a","price":"b"}`)); err != nil {
		t.Fatalf("valid document rejected: %v", err)
	}
	for _, bad := range []string{
		`{"title":"a"}`,
		`{"title":"a","price":"b","other":"c"}`,
		`{"title":"a","price":3}`,
		`["title","price"]`,
	} {
		if err := ValidateJSONAgainstSchema(schema, []byte(bad)); err == nil {
			t.Errorf("expected %s to be rejected", bad)
		}
	}
}
