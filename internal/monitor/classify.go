package monitor

import (
	"github.com/hamed0406/pagewatch/internal/domain"
	"github.com/hamed0406/pagewatch/internal/match"
)

// Decision is what one classification yields: the status to report, the
// matched keywords (keyword-change only), and whether the extracted text
// becomes the new snapshot.
type Decision struct {
	Status        domain.Status
	Matched       []string
	WriteSnapshot bool
}

// Classify is the pure decision core of a check. Evaluated in order:
//
//  1. no prior snapshot        -> initialized, write
//  2. text equals prior text   -> no-change, no write
//  3. changed, keywords hit    -> keyword-change, write
//  4. changed, no keywords hit -> changed-but-no-keywords, write
//
// Equality is checked before the keyword scan, so an unchanged page never
// costs a scan or a save; write volume tracks real change rate, not cycle
// frequency. An empty extracted text is a value like any other: an all-image
// page gaining text is a real change.
func Classify(text string, prior *domain.Snapshot, keywords []string) Decision {
	if prior == nil {
		return Decision{Status: domain.StatusInitialized, WriteSnapshot: true}
	}
	if text == prior.Text {
		return Decision{Status: domain.StatusNoChange}
	}
	if matched := match.Keywords(text, keywords); len(matched) > 0 {
		return Decision{Status: domain.StatusKeywordChange, Matched: matched, WriteSnapshot: true}
	}
	return Decision{Status: domain.StatusChangedNoKeywords, WriteSnapshot: true}
}
