package domain

import "time"

// Status classifies what happened to one target during one check cycle.
type Status string

const (
	StatusError             Status = "error"
	StatusInitialized       Status = "initialized"
	StatusNoChange          Status = "no-change"
	StatusKeywordChange     Status = "keyword-change"
	StatusChangedNoKeywords Status = "changed-but-no-keywords"
)

// Target is one monitored page: its URL plus the keywords to flag when the
// page's text changes. URL doubles as the target's identity.
type Target struct {
	URL       string    `json:"url"`
	Keywords  []string  `json:"keywords,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Snapshot is the last extracted text observed for a target. At most one
// snapshot exists per target; absence means the target was never observed.
type Snapshot struct {
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
}
