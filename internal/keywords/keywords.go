// Package keywords derives search tokens from free-text issue descriptions.
// Matching is plain substring containment over lowercased text; there is no
// stemming or word-boundary handling, so triggers can fire inside longer
// words. That looseness is acceptable for a search filter.
package keywords

import "strings"

// #region trigger-table

// topic pairs a category token with the substrings that trigger it.
// The list is ordered so extraction output is deterministic.
type topic struct {
	category string
	triggers []string
}

var topics = []topic{
	{"delay", []string{"delay", "late", "behind"}},
	{"priority", []string{"priority", "urgent", "superfast", "express"}},
	{"signal", []string{"signal", "failure", "fault"}},
	{"power", []string{"power", "electric", "traction"}},
	{"crew", []string{"crew", "staff", "driver"}},
	{"freight", []string{"freight", "goods", "cargo"}},
	{"passenger", []string{"passenger", "people"}},
	{"emergency", []string{"emergency", "accident", "incident"}},
	{"maintenance", []string{"maintenance", "repair", "work"}},
	{"weather", []string{"weather", "fog", "rain", "storm"}},
}

// #endregion trigger-table

// #region extract

// Extract returns the deduplicated keyword set for an issue description:
// every topic category whose trigger occurs in the lowercased text, plus up
// to the first 3 raw words longer than 3 characters (trailing punctuation
// stripped). Identical input always yields identical output.
func Extract(text string) []string {
	lower := strings.ToLower(text)

	seen := make(map[string]bool)
	var out []string
	add := func(kw string) {
		if kw == "" || seen[kw] {
			return
		}
		seen[kw] = true
		out = append(out, kw)
	}

	for _, t := range topics {
		for _, trigger := range t.triggers {
			if strings.Contains(lower, trigger) {
				add(t.category)
				break
			}
		}
	}

	taken := 0
	for _, word := range strings.Fields(text) {
		if taken >= 3 {
			break
		}
		if len(word) <= 3 {
			continue
		}
		add(strings.TrimRight(word, ".,!?"))
		taken++
	}

	return out
}

// #endregion extract
