package app

import (
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tideplay/internal/engine"
	"github.com/llehouerou/tideplay/internal/errmsg"
	"github.com/llehouerou/tideplay/internal/lifecycle"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case HostEventMsg:
		return m.applyHostEvents(msg.Events...)

	case tea.FocusMsg:
		return m.applyHostEvents(lifecycle.Resume)

	case tea.BlurMsg:
		return m.applyHostEvents(lifecycle.Pause)

	case tea.ResumeMsg:
		// Back from ctrl+z: visible and focused again.
		return m.applyHostEvents(lifecycle.Start, lifecycle.Resume)

	case EngineEventMsg:
		if msg.Err != nil {
			m.LastErr = errmsg.Wrap(errmsg.OpPlayback, msg.Err)
		} else if msg.State != engine.StateIdle {
			m.LastErr = nil
		}
		return m, m.WaitEngineEvent()

	case EventsClosedMsg:
		m.events = nil
		return m, nil

	case TickMsg:
		if _, active := m.ctrl.Handle(); !active {
			m.Ticking = false
			return m, nil
		}
		return m, TickCmd()

	case spinner.TickMsg:
		return m, m.view.Update(msg)

	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}

	return m, nil
}

// applyHostEvents feeds events to the binder and keeps the tick running while
// a session is held.
func (m Model) applyHostEvents(events ...lifecycle.Event) (tea.Model, tea.Cmd) {
	for _, ev := range events {
		if err := m.binder.Handle(ev); err != nil {
			m.log.Error().Err(err).Str("event", ev.String()).Msg("host event failed")
			m.LastErr = errmsg.Wrap(errmsg.OpAcquire, err)
		}
	}
	if _, active := m.ctrl.Handle(); active && !m.Ticking {
		m.Ticking = true
		return m, TickCmd()
	}
	return m, nil
}

// logControlErr records control errors. Controls on a detached session are
// dropped silently.
func (m *Model) logControlErr(op errmsg.Op, err error) {
	if err == nil {
		return
	}
	if !errors.Is(err, errDetached) {
		m.log.Warn().Err(err).Str("op", string(op)).Msg("control failed")
		m.LastErr = errmsg.Wrap(op, err)
	}
}
