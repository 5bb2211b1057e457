package slang

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDelayByPunctuation(t *testing.T) {
	tests := []struct {
		text string
		want time.Duration
	}{
		{"gg wp.", DebounceShort},
		{"are you serious?!", DebounceShort},
		{"太强了！", DebounceShort},
		{"让我想想……", DebounceShort},
		{"gg wp. ", DebounceShort}, // trailing spaces ignored
		{"one sec", DebounceLong},
		{"almost done,", DebounceLong},
	}
	for _, tt := range tests {
		if got := Delay(tt.text); got != tt.want {
			t.Errorf("Delay(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestDebouncerKeystrokeResets(t *testing.T) {
	d := NewDebouncer()
	var fired atomic.Int32

	d.Observe("first", func() { fired.Add(1) })
	d.Observe("first keystroke again", func() { fired.Add(1) })
	d.Cancel()

	time.Sleep(DebounceLong + 100*time.Millisecond)
	if n := fired.Load(); n != 0 {
		t.Errorf("cancelled debounce fired %d times", n)
	}
}

func TestDebouncerFiresOnce(t *testing.T) {
	d := NewDebouncer()
	var fired atomic.Int32
	done := make(chan struct{})

	d.Observe("gg.", func() {
		fired.Add(1)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(DebounceShort + time.Second):
		t.Fatal("debounce never fired")
	}
	if n := fired.Load(); n != 1 {
		t.Errorf("fired %d times, want 1", n)
	}
}

func TestDebouncerEmptyInputCancels(t *testing.T) {
	d := NewDebouncer()
	var fired atomic.Int32
	d.Observe("gg.", func() { fired.Add(1) })
	d.Observe("   ", func() { fired.Add(1) })

	time.Sleep(DebounceLong + 100*time.Millisecond)
	if n := fired.Load(); n != 0 {
		t.Errorf("cleared input still fired %d times", n)
	}
}
