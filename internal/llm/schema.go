package llm

import "github.com/joseph-ayodele/tourpack/constants"

// BuildRecordJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a generic map.
// Every field is required and must be a string; any other key fails validation.
func BuildRecordJSONSchema(fields []string) map[string]any {
	if len(fields) == 0 {
		fields = constants.Fields
	}
	props := make(map[string]any, len(fields))
	for _, f := range fields {
		props[f] = map[string]any{"type": "string"}
	}

	required := make([]string, len(fields))
	copy(required, fields)

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             required,
	}
}
