package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ganklab/gankspeak/pkg/slang/lang"
)

// pickerSide identifies which language the picker is choosing.
type pickerSide int

const (
	pickSource pickerSide = iota
	pickTarget
)

// langPicker is a fuzzy-filtered language selector.
type langPicker struct {
	side     pickerSide
	query    textinput.Model
	choices  []lang.Language
	filtered []lang.Language
	cursor   int
}

func newLangPicker(side pickerSide) langPicker {
	q := textinput.New()
	q.Placeholder = "filter languages"
	q.Prompt = "/ "
	q.Focus()

	choices := lang.Registry
	if side == pickTarget {
		choices = lang.Targets()
	}
	return langPicker{
		side:     side,
		query:    q,
		choices:  choices,
		filtered: choices,
	}
}

// update handles a key press, returning the chosen language when the
// selection is confirmed.
func (p *langPicker) update(msg tea.KeyMsg) (chosen *lang.Language, done bool, cmd tea.Cmd) {
	switch msg.String() {
	case "esc":
		return nil, true, nil
	case "enter":
		if len(p.filtered) == 0 {
			return nil, true, nil
		}
		l := p.filtered[p.cursor]
		return &l, true, nil
	case "up", "ctrl+p":
		if p.cursor > 0 {
			p.cursor--
		}
		return nil, false, nil
	case "down", "ctrl+n":
		if p.cursor < len(p.filtered)-1 {
			p.cursor++
		}
		return nil, false, nil
	}

	var c tea.Cmd
	p.query, c = p.query.Update(msg)
	p.filtered = lang.Filter(p.query.Value(), p.choices)
	if p.cursor >= len(p.filtered) {
		p.cursor = 0
	}
	return nil, false, c
}

func (p langPicker) view() string {
	var sb strings.Builder
	label := "Source language"
	if p.side == pickTarget {
		label = "Target language"
	}
	sb.WriteString(titleStyle.Render(label) + "\n\n")
	sb.WriteString(p.query.View() + "\n\n")
	for i, l := range p.filtered {
		line := "  " + l.Label
		if i == p.cursor {
			line = pickerSelectedStyle.Render("> " + l.Label)
		}
		sb.WriteString(line + "\n")
	}
	if len(p.filtered) == 0 {
		sb.WriteString(helpStyle.Render("  no matches") + "\n")
	}
	sb.WriteString("\n" + helpStyle.Render("enter: choose • esc: cancel"))
	return sb.String()
}
