package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tideplay/internal/lifecycle"
)

// TickCmd returns a command that sends TickMsg after 1 second.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// HostEventCmd delivers events to Update as one message.
func HostEventCmd(events ...lifecycle.Event) tea.Cmd {
	return func() tea.Msg {
		return HostEventMsg{Events: events}
	}
}

// WaitEngineEvent returns a command that waits for the next engine callback.
func (m Model) WaitEngineEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return EventsClosedMsg{}
		}
		return EngineEventMsg(ev)
	}
}
