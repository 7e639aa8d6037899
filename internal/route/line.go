package route

import "strings"

// LineMatcher recognizes the monitored line's label under the formatting
// variants different upstream feeds produce: the exact code, the code with
// a space before the first digit, and case-insensitive "bus"-prefixed forms.
type LineMatcher struct {
	variants map[string]struct{}
}

// NewLineMatcher builds a matcher for the given line code, e.g. "M41".
func NewLineMatcher(code string) *LineMatcher {
	spaced := spaceBeforeDigit(code)
	variants := map[string]struct{}{}
	for _, v := range []string{code, spaced, "bus " + code, "bus " + spaced} {
		variants[strings.ToLower(v)] = struct{}{}
	}
	return &LineMatcher{variants: variants}
}

// Matches reports whether an upstream line label refers to the monitored line.
func (m *LineMatcher) Matches(label string) bool {
	_, ok := m.variants[strings.ToLower(strings.TrimSpace(label))]
	return ok
}

// spaceBeforeDigit inserts a space before the first digit ("M41" -> "M 41").
// Returns the code unchanged if it has no letter prefix.
func spaceBeforeDigit(code string) string {
	for i, r := range code {
		if r >= '0' && r <= '9' {
			if i == 0 {
				return code
			}
			return code[:i] + " " + code[i:]
		}
	}
	return code
}
