package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/ganklab/gankspeak/pkg/slang"
)

func TestRenderRecord(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := slang.TranslationRecord{
		ID:             "1",
		OriginalText:   "that was easy",
		TranslatedText: "gg ez no re",
		Tags:           []string{"smug", "victorious"},
		AudioData:      "UEND",
		CreatedAt:      now.Add(-2 * time.Minute),
		SourceLang:     "en",
		TargetLang:     "en",
	}

	out := renderRecord(rec, 60, now)

	for _, want := range []string{"that was easy", "gg ez no re", "smug", "victorious", "English", "ago", "audio"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered record missing %q:\n%s", want, out)
		}
	}
}

func TestRenderRecordWrapsLongText(t *testing.T) {
	rec := slang.TranslationRecord{
		TranslatedText: strings.Repeat("gank ", 30),
		SourceLang:     "en",
		TargetLang:     "en",
	}
	out := renderRecord(rec, 40, time.Now())
	for _, line := range strings.Split(out, "\n") {
		// Styled lines carry escape codes, so bound generously.
		if len([]rune(line)) > 80 {
			t.Errorf("line not wrapped: %q", line)
		}
	}
}

func TestContentWidthHonorsConfiguredWrap(t *testing.T) {
	tests := []struct {
		name string
		term int
		wrap uint
		want int
	}{
		{"no wrap uses terminal", 100, 0, 96},
		{"wrap narrower than terminal wins", 100, 60, 60},
		{"wrap wider than terminal is ignored", 50, 120, 46},
		{"floor on tiny terminals", 10, 0, 20},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := contentWidth(tc.term, tc.wrap); got != tc.want {
				t.Errorf("contentWidth(%d, %d) = %d, want %d", tc.term, tc.wrap, got, tc.want)
			}
		})
	}
}

func TestRenderHistoryEmpty(t *testing.T) {
	out := renderHistory(nil, 60, time.Now())
	if !strings.Contains(out, "No translations yet") {
		t.Errorf("empty history message missing: %q", out)
	}
}
