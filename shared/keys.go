package shared

// recognizedKeys are the keys counted by KeyCounts: the kind tags plus the
// argument list key nested inside function components.
var recognizedKeys = map[string]bool{
	"function":   true,
	"arguments":  true,
	"expression": true,
	"range":      true,
	"reference":  true,
	"constant":   true,
	"operator":   true,
}

// KeyCounts walks a structured formula value and counts occurrences of each
// recognized key, recursing into nested maps and slices. If label is
// non-empty only that key is counted. Read-only, used for introspection
// and tests.
func KeyCounts(v any, label string) map[string]int {
	counts := make(map[string]int)
	countKeys(v, label, counts)
	return counts
}

func countKeys(v any, label string, counts map[string]int) {
	switch t := v.(type) {
	case map[string]any:
		for key, value := range t {
			if key == label || (label == "" && recognizedKeys[key]) {
				counts[key]++
			}
			countKeys(value, label, counts)
		}
	case []any:
		for _, item := range t {
			countKeys(item, label, counts)
		}
	}
}
