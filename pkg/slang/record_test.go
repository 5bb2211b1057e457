package slang

import (
	"testing"
	"time"
)

func TestSwapped(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := TranslationRecord{
		ID:             "orig",
		OriginalText:   "A",
		TranslatedText: "B",
		SourceLang:     "en",
		TargetLang:     "zh",
		AudioData:      "UEND",
		VisualPrompt:   "neon arena",
		Tags:           []string{"smug"},
	}

	got := rec.Swapped(now)

	if got.OriginalText != "B" || got.TranslatedText != "A" {
		t.Errorf("texts not swapped: %+v", got)
	}
	if got.SourceLang != "zh" || got.TargetLang != "en" {
		t.Errorf("languages not swapped: %+v", got)
	}
	if got.AudioData != "" {
		t.Error("stale audio must be cleared, it no longer matches the text")
	}
	if got.ID == rec.ID || got.ID == "" {
		t.Errorf("swapped record must get a fresh identifier, got %q", got.ID)
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, now)
	}

	// The source record is untouched.
	if rec.OriginalText != "A" || rec.AudioData != "UEND" {
		t.Errorf("Swapped mutated its receiver: %+v", rec)
	}
}

func TestClampTags(t *testing.T) {
	got := clampTags([]string{"a", "b", "c", "d", "e"})
	if len(got) != MaxTags {
		t.Errorf("len = %d, want %d", len(got), MaxTags)
	}
	if clampTags(nil) != nil {
		t.Error("nil tags must stay nil")
	}
}

func TestNewRecordIDMonotonic(t *testing.T) {
	a := newRecordID(time.Unix(0, 1000))
	b := newRecordID(time.Unix(0, 2000))
	if a == b {
		t.Error("distinct instants must yield distinct identifiers")
	}
}
