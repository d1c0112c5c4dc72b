package domain

import "time"

// CheckResult is the outcome of one target in one cycle. Details is only set
// for error results; MatchedKeywords only for keyword-change, in the order
// the keywords were configured.
type CheckResult struct {
	URL             string    `json:"url"`
	Status          Status    `json:"status"`
	Details         string    `json:"details,omitempty"`
	MatchedKeywords []string  `json:"matched_keywords,omitempty"`
	CheckedAt       time.Time `json:"checked_at"`
}
