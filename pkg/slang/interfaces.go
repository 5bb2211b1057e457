package slang

import (
	"context"
	"iter"
)

// Input is a user utterance: either typed text or a recorded audio blob.
type Input struct {
	Text      string // typed text, ignored when Audio is set
	Audio     []byte // raw recording bytes
	AudioMIME string // e.g. "audio/webm", required when Audio is set
}

// IsAudio reports whether the input is a voice recording.
func (in Input) IsAudio() bool {
	return len(in.Audio) > 0
}

// Translation is a complete non-streamed translation result.
type Translation struct {
	SlangText    string
	VisualPrompt string
	Tags         []string
}

// Enrichment is the metadata derived from an existing translation pair:
// an abstract visual description plus up to three short mood tags.
type Enrichment struct {
	VisualPrompt string
	Tags         []string
}

// PronunciationScore grades a recorded attempt at speaking a phrase.
type PronunciationScore struct {
	Score    int    // 0-100
	Feedback string // one short sentence
}

// BestEffort carries the result of an operation that swallows its own
// failures. Degraded marks that Value is a substitute default rather than
// a real result, so callers can tell the two apart without sentinel
// comparisons.
type BestEffort[T any] struct {
	Value    T
	Degraded bool
}

// Got wraps a real result.
func Got[T any](v T) BestEffort[T] { return BestEffort[T]{Value: v} }

// Fallback wraps a substitute default.
func Fallback[T any](v T) BestEffort[T] { return BestEffort[T]{Value: v, Degraded: true} }

// StreamQuotaNotice is the terminal fragment a stream yields when quota
// exhaustion cuts it short after text has already been produced. Its
// arrival ends the stream cleanly; consumers display it but must not
// cache or voice the truncated result.
const StreamQuotaNotice = "\n\n[cut short: translation quota reached]"

// Stream is a lazy, single-consumption sequence of translation text
// fragments. It is not restartable: once the consumer stops iterating the
// remainder is lost. The sequence may end early with a terminal notice
// fragment (quota exhaustion) without yielding an error.
type Stream = iter.Seq2[string, error]

// Backend is the remote generative-inference service. Implementations wrap
// every operation except Illustrate in the retry/backoff policy.
type Backend interface {
	// Translate returns a full slang translation in one shot. Used as the
	// fallback when streaming fails before producing any text.
	Translate(ctx context.Context, in Input, sourceLang, targetLang string) (*Translation, error)

	// TranslateStream returns the translation as a fragment stream.
	// Transport errors surface through the sequence, except a mid-stream
	// quota condition which yields a terminal human-readable fragment and
	// ends the sequence cleanly.
	TranslateStream(ctx context.Context, in Input, sourceLang, targetLang string) Stream

	// Enrich derives mood tags and a visual description for an already
	// produced translation pair.
	Enrich(ctx context.Context, original, translated, targetLang string) (*Enrichment, error)

	// Synthesize returns base64-encoded 24kHz mono 16-bit PCM speech.
	Synthesize(ctx context.Context, text string) (string, error)

	// Illustrate renders an image for a visual prompt. Best effort: any
	// failure resolves to a degraded empty result, never an error.
	Illustrate(ctx context.Context, prompt string) BestEffort[string]

	// ReverseTranslate renders arbitrary text into the named target
	// language using a permissive safety configuration so gaming
	// terminology is not blocked.
	ReverseTranslate(ctx context.Context, text, targetLang string) (string, error)

	// ScorePronunciation grades a recording against the expected phrase.
	ScorePronunciation(ctx context.Context, recording []byte, mimeType, expected string) (*PronunciationScore, error)
}
