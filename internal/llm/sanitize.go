package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/tourpack/constants"
)

// NormalizeAndSanitizeJSON
// - Renames keys that only differ from a field name by case or separators ("Flights Included")
// - Turns null into "" and numbers/bools into strings
// - Flattens arrays of scalars into a ", " joined string
// - Canonicalizes category labels
// Unknown keys are left in place so strict validation still rejects them.
func NormalizeAndSanitizeJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	changed := make([]string, 0, 8)

	// 1) rename near-miss keys onto schema fields
	for k := range maps.Clone(m) {
		if constants.IsField(k) {
			continue
		}
		to := fieldKey(k)
		if !constants.IsField(to) {
			continue
		}
		if _, exists := m[to]; !exists {
			m[to] = m[k]
		}
		delete(m, k)
		changed = append(changed, k+"->"+to)
	}

	// 2) coerce values to strings
	for k, v := range m {
		if !constants.IsField(k) {
			continue
		}
		s, ok := coerceValue(v)
		if !ok {
			continue
		}
		if cur, isStr := v.(string); !isStr || cur != s {
			changed = append(changed, k)
		}
		m[k] = s
	}

	// 3) category onto the known taxonomy when it is a synonym
	if v, ok := m[constants.FieldCategory].(string); ok {
		if cat, known := constants.Canonicalize(v); known && string(cat) != v {
			m[constants.FieldCategory] = string(cat)
			changed = append(changed, constants.FieldCategory+"(canonical)")
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, changed, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(changed) > 0 {
		slices.Sort(changed)
		logger.Warn("llm.extract.normalize_sanitize", "changed", changed)
	}
	return out, changed, nil
}

// coerceValue converts a decoded JSON scalar (or a list of scalars) to its string form.
// Objects and nested lists are left alone for the validator to reject.
func coerceValue(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return strings.TrimSpace(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		if t {
			return constants.Yes, true
		}
		return constants.No, true
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			switch item.(type) {
			case map[string]any, []any:
				return "", false
			}
			if s, ok := coerceValue(item); ok && s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", "), true
	default:
		return "", false
	}
}

func fieldKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(k)
}
