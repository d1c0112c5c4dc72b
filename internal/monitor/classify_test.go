package monitor

import (
	"reflect"
	"testing"
	"time"

	"github.com/hamed0406/pagewatch/internal/domain"
)

func snap(text string) *domain.Snapshot {
	return &domain.Snapshot{Timestamp: time.Now().UTC(), Text: text}
}

func TestClassify_FirstObservation(t *testing.T) {
	d := Classify("Welcome to Example", nil, []string{"layoffs"})
	if d.Status != domain.StatusInitialized || !d.WriteSnapshot || d.Matched != nil {
		t.Fatalf("unexpected decision: %+v", d)
	}
}

func TestClassify_NoChangeSkipsWriteAndScan(t *testing.T) {
	// Text contains the keyword but is unchanged: equality wins, no scan.
	d := Classify("Layoffs announced", snap("Layoffs announced"), []string{"layoffs"})
	if d.Status != domain.StatusNoChange || d.WriteSnapshot || d.Matched != nil {
		t.Fatalf("unexpected decision: %+v", d)
	}
}

func TestClassify_KeywordChange(t *testing.T) {
	d := Classify(
		"Welcome to Example. Layoffs announced.",
		snap("Welcome to Example"),
		[]string{"hiring", "layoffs"},
	)
	if d.Status != domain.StatusKeywordChange || !d.WriteSnapshot {
		t.Fatalf("unexpected decision: %+v", d)
	}
	if !reflect.DeepEqual(d.Matched, []string{"layoffs"}) {
		t.Fatalf("want exact ordered matched subset [layoffs], got %v", d.Matched)
	}
}

func TestClassify_ChangedButNoKeywords(t *testing.T) {
	d := Classify("new text", snap("old text"), []string{"layoffs"})
	if d.Status != domain.StatusChangedNoKeywords || !d.WriteSnapshot || d.Matched != nil {
		t.Fatalf("unexpected decision: %+v", d)
	}
}

func TestClassify_ChangeWithEmptyKeywordListNeverMatches(t *testing.T) {
	d := Classify("new text", snap("old text"), nil)
	if d.Status != domain.StatusChangedNoKeywords {
		t.Fatalf("empty keywords must never be keyword-change: %+v", d)
	}
}

func TestClassify_EmptyTextIsAValidValue(t *testing.T) {
	// Page went all-images -> empty extraction is a legitimate change.
	d := Classify("", snap("had text before"), []string{"layoffs"})
	if d.Status != domain.StatusChangedNoKeywords || !d.WriteSnapshot {
		t.Fatalf("unexpected decision: %+v", d)
	}
	// And an empty snapshot matching empty extraction is no-change.
	d = Classify("", snap(""), []string{"layoffs"})
	if d.Status != domain.StatusNoChange {
		t.Fatalf("unexpected decision: %+v", d)
	}
}
