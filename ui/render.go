package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"

	"github.com/ganklab/gankspeak/pkg/slang"
	"github.com/ganklab/gankspeak/pkg/slang/lang"
)

// renderRecord formats one history entry for the viewport.
func renderRecord(rec slang.TranslationRecord, width int, now time.Time) string {
	if width < 20 {
		width = 20
	}
	var sb strings.Builder

	header := fmt.Sprintf("%s %s %s",
		langStyle.Render(lang.Label(rec.SourceLang)),
		arrowStyle.Render("→"),
		langStyle.Render(lang.Label(rec.TargetLang)),
	)
	if !rec.CreatedAt.IsZero() {
		header += "  " + timeStyle.Render(humanize.RelTime(rec.CreatedAt, now, "ago", "from now"))
	}
	sb.WriteString(header + "\n")

	sb.WriteString(originalStyle.Render(wordwrap.String(rec.OriginalText, width)) + "\n")
	sb.WriteString(translatedStyle.Render(wordwrap.String(rec.TranslatedText, width)) + "\n")

	if len(rec.Tags) > 0 {
		tags := make([]string, len(rec.Tags))
		for i, tag := range rec.Tags {
			tags[i] = tagStyle.Render(tag)
		}
		sb.WriteString(strings.Join(tags, " ") + "\n")
	}

	var extras []string
	if rec.AudioData != "" {
		extras = append(extras, "🔊 audio")
	}
	if rec.ImageData != "" {
		extras = append(extras, "🖼 image")
	}
	if len(extras) > 0 {
		sb.WriteString(helpStyle.Render(strings.Join(extras, "  ")) + "\n")
	}
	return sb.String()
}

// renderHistory formats the full history, newest first.
func renderHistory(records []slang.TranslationRecord, width int, now time.Time) string {
	if len(records) == 0 {
		return helpStyle.Render("No translations yet. Type something and hit enter.")
	}
	parts := make([]string, len(records))
	for i, rec := range records {
		parts[i] = renderRecord(rec, width, now)
	}
	return strings.Join(parts, strings.Repeat("─", min(width, 40))+"\n")
}
