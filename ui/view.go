package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ganklab/gankspeak/pkg/slang"
	"github.com/ganklab/gankspeak/pkg/slang/lang"
)

func (m *model) View() string {
	if m.view == viewPicker {
		return appStyle.Render(m.picker.view())
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("gankspeak"))
	sb.WriteString("  " + langStyle.Render(lang.Label(m.sourceLang)) +
		arrowStyle.Render(" → ") + langStyle.Render(lang.Label(m.targetLang)))
	sb.WriteString("\n\n")

	sb.WriteString(m.input.View() + "\n")
	sb.WriteString(m.statusLine() + "\n\n")

	if m.ready {
		sb.WriteString(m.history.View() + "\n")
	}

	sb.WriteString(helpStyle.Render(
		"enter: translate • ctrl+s: swap • ctrl+r: replay • ctrl+y: copy • " +
			"ctrl+f/t: languages • ctrl+x: clear • ctrl+c: quit"))

	return appStyle.Render(sb.String())
}

func (m *model) statusLine() string {
	switch {
	case m.lastErr != nil:
		if m.quotaHit || errors.Is(m.lastErr, slang.ErrQuotaExceeded) {
			return errorStyle.Render("quota exhausted, try again in a bit")
		}
		return errorStyle.Render("translation failed: " + m.lastErr.Error())
	case m.status != "":
		return m.status
	case m.state == slang.StateTranslating:
		return fmt.Sprintf("%s translating…", m.spinner.View())
	case m.state == slang.StateLoading:
		return fmt.Sprintf("%s loading assets…", m.spinner.View())
	case m.state == slang.StateRecording:
		return warnStyle.Render("● recording")
	default:
		return ""
	}
}
