package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/llehouerou/tideplay/internal/icons"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	width := m.Width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	header := "tideplay"
	if h, ok := m.ctrl.Handle(); ok {
		header += " · " + m.binder.Band().String() + " · " + h.ID.String()[:8]
		st, _ := m.ctrl.Snapshot()
		if item, ok := h.Source.Item(st.WindowIndex); ok {
			name := item.Name()
			if item.IsRemote() {
				name = icons.FormatRemote(name)
			}
			header += " · " + name
		}
	} else {
		header += " · detached"
	}
	b.WriteString(titleStyle.Render(runewidth.Truncate(header, width, "…")))
	b.WriteString("\n")
	b.WriteString(m.view.Render(width))

	if m.LastErr != nil {
		b.WriteString("\n")
		b.WriteString(errStyle.Render(runewidth.Truncate(" "+icons.Error()+" "+m.LastErr.Error(), width, "…")))
	}

	if m.ShowHelp {
		for _, ctx := range []string{"playback", "global"} {
			for _, line := range m.keys.HelpLines(ctx) {
				b.WriteString("\n")
				b.WriteString(helpStyle.Render(" " + line))
			}
		}
	} else {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(" ? help"))
	}

	return b.String()
}
