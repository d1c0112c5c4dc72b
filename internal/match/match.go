// Package match implements the keyword scan applied to extracted page text.
package match

import "strings"

// Keywords returns the subset of keywords contained in text, compared
// case-insensitively, preserving the configured order. An empty keyword list
// always yields an empty result.
func Keywords(text string, keywords []string) []string {
	if len(keywords) == 0 {
		return nil
	}
	lower := strings.ToLower(text)
	var matched []string
	for _, k := range keywords {
		if k == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(k)) {
			matched = append(matched, k)
		}
	}
	return matched
}
