// Package analysis implements the aggregation and derivation engine behind the
// dashboard: keyword matching, time bucketing, frequency aggregation, fallback
// trend/insight synthesis and the top-level metrics compiler. Everything here
// is pure and synchronous - inputs are borrowed read-only, every call produces
// fresh output structures, and the current instant is always an explicit
// parameter so results are deterministic under test.
package analysis

import "strings"

// Matches reports whether text contains any of the given keywords,
// case-insensitively. Empty text or an empty keyword set never matches.
func Matches(text string, keywords []string) bool {
	if text == "" || len(keywords) == 0 {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
