// Package ui provides the terminal UI for gankspeak.
package ui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/ganklab/gankspeak/pkg/slang"
	"github.com/ganklab/gankspeak/pkg/slang/audio"
)

const statusMessageTimeout = 3 * time.Second

// NewProgram returns a new Tea program wired to the orchestrator.
func NewProgram(cfg Config, o *slang.Orchestrator, disp *slang.Dispatcher) *tea.Program {
	log.Debug("starting gankspeak", "source", cfg.SourceLang, "target", cfg.TargetLang)
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.EnableMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return tea.NewProgram(newModel(cfg, o, disp), opts...)
}

// view is the top-level UI state.
type view int

const (
	viewMain view = iota
	viewPicker
)

type statusTimeoutMsg struct{ at time.Time }

type keyMap struct {
	Submit  key.Binding
	Swap    key.Binding
	Replay  key.Binding
	Copy    key.Binding
	Source  key.Binding
	Target  key.Binding
	Clear   key.Binding
	ScrollU key.Binding
	ScrollD key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "translate")),
		Swap:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "swap last")),
		Replay:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "replay audio")),
		Copy:    key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
		Source:  key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "source lang")),
		Target:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "target lang")),
		Clear:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear history")),
		ScrollU: key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		ScrollD: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("ctrl+c", "quit")),
	}
}

type model struct {
	cfg  Config
	keys keyMap

	orc    *slang.Orchestrator
	disp   *slang.Dispatcher
	player *audio.Player

	input    textinput.Model
	spinner  spinner.Model
	history  viewport.Model
	picker   langPicker
	view     view
	width    int
	height   int
	ready    bool

	sourceLang string
	targetLang string

	state      slang.StateType
	inFlight   slang.TranslationRecord
	status     string
	statusAt   time.Time
	lastErr    error
	quotaHit   bool

	debouncer   *slang.Debouncer
	debounceSeq int
}

func newModel(cfg Config, o *slang.Orchestrator, disp *slang.Dispatcher) *model {
	ti := textinput.New()
	ti.Placeholder = "type something to gank-ify"
	ti.Prompt = "> "
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &model{
		cfg:        cfg,
		keys:       defaultKeyMap(),
		orc:        o,
		disp:       disp,
		player:     audio.NewPlayer(),
		input:      ti,
		spinner:    sp,
		sourceLang: cfg.SourceLang,
		targetLang: cfg.TargetLang,
		state:      slang.StateIdle,
		debouncer:  slang.NewDebouncer(),
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.disp.Wait())
}

func (m *model) submit(text string) tea.Cmd {
	m.debouncer.Cancel()
	m.lastErr = nil
	m.quotaHit = false
	m.input.SetValue("")
	return slang.TranslateCmd(m.orc, slang.Input{Text: text}, m.sourceLang, m.targetLang)
}

func (m *model) setStatus(s string) tea.Cmd {
	m.status = s
	m.statusAt = time.Now()
	at := m.statusAt
	return tea.Tick(statusMessageTimeout, func(time.Time) tea.Msg {
		return statusTimeoutMsg{at: at}
	})
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		hv := msg.Height - 8
		if hv < 3 {
			hv = 3
		}
		wv := contentWidth(msg.Width, m.cfg.Width)
		if !m.ready {
			m.history = viewport.New(wv, hv)
			m.ready = true
		} else {
			m.history.Width = wv
			m.history.Height = hv
		}
		m.refreshHistory()
		return m, nil

	case tea.KeyMsg:
		if m.view == viewPicker {
			return m.updatePicker(msg)
		}
		return m.updateMain(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case statusTimeoutMsg:
		if msg.at.Equal(m.statusAt) {
			m.status = ""
		}
		return m, nil

	// Orchestrator messages, forwarded via the dispatcher. Every branch
	// re-arms Wait so exactly one listener is always pending.
	case slang.RecordUpdatedMsg:
		m.inFlight = msg.Record
		m.refreshHistory()
		return m, m.disp.Wait()

	case slang.SessionStateMsg:
		m.state = msg.State
		return m, m.disp.Wait()

	case slang.WarningMsg:
		cmds = append(cmds, m.setStatus(warnStyle.Render(msg.Message)), m.disp.Wait())
		return m, tea.Batch(cmds...)

	case slang.TranslateDoneMsg:
		if msg.Err != nil {
			m.lastErr = msg.Err
			m.quotaHit = msg.Quota
		} else {
			m.inFlight = slang.TranslationRecord{}
			m.refreshHistory()
			cmds = append(cmds, m.playLatest())
		}
		return m, tea.Batch(cmds...)

	case slang.SwappedMsg:
		m.refreshHistory()
		return m, m.setStatus(statusStyle.Render("swapped!"))

	case slang.SpeechReadyMsg:
		if msg.Err != nil {
			return m, m.setStatus(warnStyle.Render("no audio: " + msg.Err.Error()))
		}
		m.play(msg.Data)
		return m, nil

	case slang.HistoryClearedMsg:
		m.refreshHistory()
		return m, m.setStatus(statusStyle.Render("history cleared"))

	case slang.DebounceMsg:
		// Stale timers fire with an old sequence; ignore them.
		if m.cfg.AutoSubmit && msg.Seq == m.debounceSeq && msg.Text == m.input.Value() && msg.Text != "" {
			return m, tea.Batch(m.submit(msg.Text), m.disp.Wait())
		}
		return m, m.disp.Wait()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		text := m.input.Value()
		if text == "" {
			return m, nil
		}
		return m, m.submit(text)

	case key.Matches(msg, m.keys.Swap):
		records := m.orc.History().Records()
		if len(records) == 0 {
			return m, nil
		}
		return m, slang.SwapCmd(m.orc, records[0])

	case key.Matches(msg, m.keys.Replay):
		return m, m.playLatest()

	case key.Matches(msg, m.keys.Copy):
		records := m.orc.History().Records()
		if len(records) == 0 {
			return m, nil
		}
		if err := clipboard.WriteAll(records[0].TranslatedText); err != nil {
			return m, m.setStatus(warnStyle.Render("copy failed"))
		}
		return m, m.setStatus(statusStyle.Render("copied!"))

	case key.Matches(msg, m.keys.Source):
		m.view = viewPicker
		m.picker = newLangPicker(pickSource)
		return m, nil

	case key.Matches(msg, m.keys.Target):
		m.view = viewPicker
		m.picker = newLangPicker(pickTarget)
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		return m, slang.ClearHistoryCmd(m.orc)

	case key.Matches(msg, m.keys.ScrollU), key.Matches(msg, m.keys.ScrollD):
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	// Every keystroke re-arms the auto-submit countdown.
	if m.cfg.AutoSubmit {
		m.debounceSeq++
		return m, tea.Batch(cmd, slang.DebounceCmd(m.debouncer, m.debounceSeq, m.input.Value(), m.disp.Send))
	}
	return m, cmd
}

func (m *model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	chosen, done, cmd := m.picker.update(msg)
	if chosen != nil {
		if m.picker.side == pickSource {
			m.sourceLang = chosen.Code
		} else {
			m.targetLang = chosen.Code
		}
	}
	if done {
		m.view = viewMain
	}
	return m, cmd
}

func (m *model) playLatest() tea.Cmd {
	records := m.orc.History().Records()
	if len(records) == 0 {
		return nil
	}
	rec := records[0]
	if rec.AudioData != "" {
		m.play(rec.AudioData)
		return nil
	}
	return slang.SpeechCmd(m.orc, rec.ID, rec.TranslatedText)
}

// play decodes and plays a payload. Decode never fails, so the worst
// case is a second of silence.
func (m *model) play(payload string) {
	clip := audio.Decode(payload)
	if _, err := m.player.Play(clip); err != nil {
		log.Debug("playback unavailable", "err", err)
	}
}

// contentWidth derives the history width from the terminal width, capped
// at the configured word-wrap width when one is set.
func contentWidth(term int, wrap uint) int {
	w := term - 4
	if wrap > 0 && int(wrap) < w {
		w = int(wrap)
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m *model) refreshHistory() {
	if !m.ready {
		return
	}
	records := m.orc.History().Records()
	if m.state.IsActive() && m.inFlight.ID != "" {
		records = append([]slang.TranslationRecord{m.inFlight}, records...)
	}
	m.history.SetContent(renderHistory(records, m.history.Width, time.Now()))
	m.history.GotoTop()
}
