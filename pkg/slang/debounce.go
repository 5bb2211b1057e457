package slang

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// Auto-submit delays. A finished sentence submits quickly; anything else
// waits longer in case the user is mid-thought. Every keystroke resets
// the timer.
const (
	DebounceShort = 800 * time.Millisecond
	DebounceLong  = 1500 * time.Millisecond
)

// sentence-ending punctuation, including CJK forms.
const sentenceEnders = ".!?。！？…"

func endsSentence(text string) bool {
	text = strings.TrimRight(text, " \t")
	if text == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text)
	return strings.ContainsRune(sentenceEnders, r)
}

// Debouncer defers text submission until typing pauses. Explicit submits
// bypass it by calling Cancel and submitting directly; starting a voice
// recording cancels it too.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates an idle debouncer.
func NewDebouncer() *Debouncer {
	return &Debouncer{}
}

// Observe restarts the countdown for the current input text. When the
// countdown elapses without another keystroke, fire runs on the timer
// goroutine. Empty input just cancels.
func (d *Debouncer) Observe(text string, fire func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	if strings.TrimSpace(text) == "" {
		return
	}
	delay := DebounceLong
	if endsSentence(text) {
		delay = DebounceShort
	}
	d.timer = time.AfterFunc(delay, fire)
}

// Delay reports the countdown Observe would use for text. Exposed for
// presentation layers that drive their own timers.
func Delay(text string) time.Duration {
	if endsSentence(text) {
		return DebounceShort
	}
	return DebounceLong
}

// Cancel stops any pending submission.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
