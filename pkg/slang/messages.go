package slang

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Messages for Bubble Tea communication between the orchestrator and UI.

// RecordUpdatedMsg carries each visible change of the in-flight record,
// including every streamed fragment.
type RecordUpdatedMsg struct {
	Record TranslationRecord
}

// SessionStateMsg indicates the session state has changed.
type SessionStateMsg struct {
	State StateType
}

// TranslateDoneMsg indicates a translation request settled.
type TranslateDoneMsg struct {
	Err   error
	Quota bool // quota exhaustion, shown differently from generic failure
}

// WarningMsg carries a non-blocking degradation notice (assets
// incomplete, stream interrupted).
type WarningMsg struct {
	Message string
}

// SwappedMsg indicates a record inversion was pushed into history.
type SwappedMsg struct {
	Record TranslationRecord
}

// ReverseDoneMsg carries the result of a reverse translation.
type ReverseDoneMsg struct {
	Text string
	Err  error
}

// PronunciationMsg carries a pronunciation grade.
type PronunciationMsg struct {
	Score *PronunciationScore
	Err   error
}

// SpeechReadyMsg carries synthesized audio for playback.
type SpeechReadyMsg struct {
	RecordID string
	Data     string // base64 PCM
	Err      error
}

// HistoryClearedMsg indicates the history was emptied.
type HistoryClearedMsg struct{}

// DebounceMsg fires when the auto-submit countdown elapses. Seq guards
// against stale timers: the UI ignores any sequence but the latest.
type DebounceMsg struct {
	Seq  int
	Text string
}

// Dispatcher bridges orchestrator callbacks into the Bubble Tea message
// loop. The UI keeps exactly one Wait command pending at all times.
type Dispatcher struct {
	ch chan tea.Msg
}

// NewDispatcher creates a dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{ch: make(chan tea.Msg, 64)}
}

// Callbacks returns orchestrator callbacks that forward into the loop.
func (d *Dispatcher) Callbacks() Callbacks {
	return Callbacks{
		OnRecord:  func(rec TranslationRecord) { d.ch <- RecordUpdatedMsg{Record: rec} },
		OnState:   func(st StateType) { d.ch <- SessionStateMsg{State: st} },
		OnWarning: func(msg string) { d.ch <- WarningMsg{Message: msg} },
	}
}

// Send forwards an arbitrary message into the loop.
func (d *Dispatcher) Send(msg tea.Msg) {
	d.ch <- msg
}

// Wait blocks for the next forwarded message.
func (d *Dispatcher) Wait() tea.Cmd {
	return func() tea.Msg {
		return <-d.ch
	}
}

// Commands for async orchestrator operations.

// TranslateCmd runs the full translation pipeline. Incremental updates
// arrive through the dispatcher; this command returns the terminal status.
func TranslateCmd(o *Orchestrator, in Input, sourceLang, targetLang string) tea.Cmd {
	return func() tea.Msg {
		err := o.Translate(context.Background(), in, sourceLang, targetLang)
		if errors.Is(err, ErrSuperseded) {
			return nil
		}
		return TranslateDoneMsg{Err: err, Quota: errors.Is(err, ErrQuotaExceeded)}
	}
}

// SwapCmd inverts a finished record.
func SwapCmd(o *Orchestrator, rec TranslationRecord) tea.Cmd {
	return func() tea.Msg {
		return SwappedMsg{Record: o.Swap(rec)}
	}
}

// ReverseCmd runs a reverse translation.
func ReverseCmd(o *Orchestrator, text, targetLang string) tea.Cmd {
	return func() tea.Msg {
		out, err := o.ReverseTranslate(context.Background(), text, targetLang)
		return ReverseDoneMsg{Text: out, Err: err}
	}
}

// SpeechCmd fetches speech audio for a record's translated text.
func SpeechCmd(o *Orchestrator, recordID, text string) tea.Cmd {
	return func() tea.Msg {
		data, err := o.Speech(context.Background(), text)
		return SpeechReadyMsg{RecordID: recordID, Data: data, Err: err}
	}
}

// PronounceCmd grades a recorded pronunciation attempt.
func PronounceCmd(o *Orchestrator, recording []byte, mimeType, expected string) tea.Cmd {
	return func() tea.Msg {
		score, err := o.Pronounce(context.Background(), recording, mimeType, expected)
		return PronunciationMsg{Score: score, Err: err}
	}
}

// ClearHistoryCmd empties the history.
func ClearHistoryCmd(o *Orchestrator) tea.Cmd {
	return func() tea.Msg {
		o.ClearHistory()
		return HistoryClearedMsg{}
	}
}

// DebounceCmd arms the auto-submit countdown for the current input.
func DebounceCmd(d *Debouncer, seq int, text string, send func(tea.Msg)) tea.Cmd {
	return func() tea.Msg {
		d.Observe(text, func() {
			send(DebounceMsg{Seq: seq, Text: text})
		})
		return nil
	}
}
