package slang

import (
	"strconv"
	"time"
)

// MaxTags is the maximum number of mood tags a record may carry.
const MaxTags = 3

// VoicePlaceholder stands in for the original text when the input was a
// voice recording rather than typed text.
const VoicePlaceholder = "(voice message)"

// TranslationRecord is one user-facing translation result.
//
// A record is created as a skeleton (empty TranslatedText) the moment a
// request starts, mutated in place while stream fragments and asset-task
// results arrive, and frozen once committed to history. After commit only
// AudioData and ImageData may be backfilled, and only while the record's
// request is still the active one.
type TranslationRecord struct {
	ID             string    `json:"id"`
	OriginalText   string    `json:"originalText"`
	TranslatedText string    `json:"translatedText"`
	VisualPrompt   string    `json:"visualPrompt,omitempty"`
	ImageData      string    `json:"imageData,omitempty"`
	AudioData      string    `json:"audioData,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	SourceLang     string    `json:"sourceLang"`
	TargetLang     string    `json:"targetLang"`
}

// newRecordID derives a unique, time-ordered identifier.
func newRecordID(now time.Time) string {
	return strconv.FormatInt(now.UnixNano(), 10)
}

// clampTags limits tags to MaxTags entries.
func clampTags(tags []string) []string {
	if len(tags) > MaxTags {
		return tags[:MaxTags]
	}
	return tags
}

// Swapped returns the inverse of a finished record: original and translated
// text exchanged, languages exchanged, and the audio payload dropped since
// it no longer matches the new translated text. The image and tags still
// describe the same utterance pair, so they are kept. No network involved.
func (r TranslationRecord) Swapped(now time.Time) TranslationRecord {
	s := r
	s.ID = newRecordID(now)
	s.CreatedAt = now
	s.OriginalText, s.TranslatedText = r.TranslatedText, r.OriginalText
	s.SourceLang, s.TargetLang = r.TargetLang, r.SourceLang
	s.AudioData = ""
	return s
}

// clone returns a deep copy so published snapshots cannot alias the
// orchestrator's working record.
func (r TranslationRecord) clone() TranslationRecord {
	c := r
	if r.Tags != nil {
		c.Tags = make([]string, len(r.Tags))
		copy(c.Tags, r.Tags)
	}
	return c
}
