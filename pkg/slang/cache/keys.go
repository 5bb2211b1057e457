package cache

import (
	"fmt"
	"strings"
)

// Key generates the translation cache key for a typed utterance. The text
// is normalized by trimming and lowercasing so lookups are case- and
// whitespace-tolerant. Audio input is never cache-keyed.
func Key(text, sourceLang, targetLang string) string {
	return fmt.Sprintf("%s:%s:%s", sourceLang, targetLang, strings.ToLower(strings.TrimSpace(text)))
}

// ReverseKey generates the reverse-translation cache key. Unlike Key it
// only trims: reverse lookups are keyed by exact model output, where
// casing can distinguish proper nouns, so two casings are two entries.
func ReverseKey(text, targetLang string) string {
	return fmt.Sprintf("%s:%s", targetLang, strings.TrimSpace(text))
}

// AudioKey generates the speech-audio cache key, normalized the same way
// as translation keys so audio lookups tolerate case and whitespace noise.
func AudioKey(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
