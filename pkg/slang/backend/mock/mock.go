// Package mock provides a scriptable backend for testing the
// orchestrator without network access.
package mock

import (
	"context"
	"encoding/base64"
	"sync"
	"time"

	"github.com/ganklab/gankspeak/pkg/slang"
)

// Backend implements slang.Backend with scriptable results and call
// counting. The zero value produces a fixed successful translation.
type Backend struct {
	mu sync.Mutex

	// Scripted results.
	Fragments   []string // streamed fragments, in order
	Result      slang.Translation
	Enrichment  slang.Enrichment
	Audio       string // base64 payload returned by Synthesize
	Image       string
	Reverse     string
	Score       slang.PronunciationScore
	Delay       time.Duration // per-call simulated latency
	FragmentGap time.Duration // pause between streamed fragments

	// SynthesizeDelay adds latency to Synthesize only, for skewing the
	// asset tasks against each other.
	SynthesizeDelay time.Duration

	// Scripted failures.
	StreamErr     error // surfaced in-sequence after Fragments
	TranslateErr  error
	EnrichErr     error
	SynthesizeErr error
	ReverseErr    error
	ScoreErr      error

	// Hooks, run before the corresponding call settles.
	OnFragment func(i int, frag string)

	calls map[string]int
}

var _ slang.Backend = (*Backend)(nil)

// New creates a mock with a plausible default script.
func New() *Backend {
	return &Backend{
		Fragments: []string{"I'm ", "gank", "ing top."},
		Result: slang.Translation{
			SlangText:    "I'm ganking top.",
			VisualPrompt: "a shadowy figure creeping up a jungle path",
			Tags:         []string{"sneaky", "aggressive"},
		},
		Enrichment: slang.Enrichment{
			VisualPrompt: "a shadowy figure creeping up a jungle path",
			Tags:         []string{"sneaky", "aggressive"},
		},
		Audio: base64.StdEncoding.EncodeToString(make([]byte, 480)),
	}
}

// Calls returns how many times the named operation ran.
func (b *Backend) Calls(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

// TotalCalls returns the count across every operation.
func (b *Backend) TotalCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		n += c
	}
	return n
}

func (b *Backend) count(op string) {
	b.mu.Lock()
	if b.calls == nil {
		b.calls = make(map[string]int)
	}
	b.calls[op]++
	b.mu.Unlock()
	if b.Delay > 0 {
		time.Sleep(b.Delay)
	}
}

func (b *Backend) Translate(_ context.Context, _ slang.Input, _, _ string) (*slang.Translation, error) {
	b.count("translate")
	if b.TranslateErr != nil {
		return nil, b.TranslateErr
	}
	r := b.Result
	return &r, nil
}

func (b *Backend) TranslateStream(_ context.Context, _ slang.Input, _, _ string) slang.Stream {
	b.count("stream")
	return func(yield func(string, error) bool) {
		for i, frag := range b.Fragments {
			if b.FragmentGap > 0 {
				time.Sleep(b.FragmentGap)
			}
			if b.OnFragment != nil {
				b.OnFragment(i, frag)
			}
			if !yield(frag, nil) {
				return
			}
		}
		if b.StreamErr != nil {
			yield("", b.StreamErr)
		}
	}
}

func (b *Backend) Enrich(_ context.Context, _, _, _ string) (*slang.Enrichment, error) {
	b.count("enrich")
	if b.EnrichErr != nil {
		return nil, b.EnrichErr
	}
	e := b.Enrichment
	return &e, nil
}

func (b *Backend) Synthesize(_ context.Context, _ string) (string, error) {
	b.count("synthesize")
	if b.SynthesizeDelay > 0 {
		time.Sleep(b.SynthesizeDelay)
	}
	if b.SynthesizeErr != nil {
		return "", b.SynthesizeErr
	}
	return b.Audio, nil
}

func (b *Backend) Illustrate(_ context.Context, _ string) slang.BestEffort[string] {
	b.count("illustrate")
	if b.Image == "" {
		return slang.Fallback[string]("")
	}
	return slang.Got(b.Image)
}

func (b *Backend) ReverseTranslate(_ context.Context, _, _ string) (string, error) {
	b.count("reverse")
	if b.ReverseErr != nil {
		return "", b.ReverseErr
	}
	return b.Reverse, nil
}

func (b *Backend) ScorePronunciation(_ context.Context, _ []byte, _, _ string) (*slang.PronunciationScore, error) {
	b.count("score")
	if b.ScoreErr != nil {
		return nil, b.ScoreErr
	}
	s := b.Score
	return &s, nil
}
