// Package courses normalizes the loosely-typed "courses" field accepted by the
// registration form. Clients have been observed sending a JSON array, a
// JSON-encoded string (sometimes wrapped in an extra layer of quotes), a bare
// comma-separated string, or nothing at all. Normalization always yields a
// list of strings and never fails.
package courses

import (
	"encoding/json"
	"strings"
)

// Normalize parses a raw courses value into a canonical ordered list.
//
// Resolution order: strip one layer of surrounding quotes, attempt a JSON
// decode (a decoded non-list becomes a singleton), then fall back to
// comma-splitting, then to a singleton of the whole trimmed value. Empty
// input yields an empty list.
func Normalize(raw string) []string {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return []string{}
	}

	if strings.HasPrefix(clean, `"`) && strings.HasSuffix(clean, `"`) && len(clean) >= 2 {
		clean = clean[1 : len(clean)-1]
		clean = strings.TrimSpace(clean)
		if clean == "" {
			return []string{}
		}
	}

	var list []string
	if err := json.Unmarshal([]byte(clean), &list); err == nil {
		return compact(list)
	}

	// A decoded scalar wraps into a singleton.
	var scalar interface{}
	if err := json.Unmarshal([]byte(clean), &scalar); err == nil {
		switch v := scalar.(type) {
		case string:
			return singleOrSplit(v)
		case nil:
			return []string{}
		default:
			return []string{clean}
		}
	}

	return singleOrSplit(clean)
}

// FromForm normalizes a multipart form value list. A repeated field is taken
// as the list itself; a single value goes through full normalization.
func FromForm(values []string) []string {
	switch len(values) {
	case 0:
		return []string{}
	case 1:
		return Normalize(values[0])
	default:
		return compact(values)
	}
}

func singleOrSplit(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	if strings.Contains(s, ",") {
		return compact(strings.Split(s, ","))
	}
	return []string{s}
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
