package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tideplay/internal/errmsg"
	"github.com/llehouerou/tideplay/internal/keymap"
	"github.com/llehouerou/tideplay/internal/lifecycle"
	"github.com/llehouerou/tideplay/internal/session"
)

const (
	seekStep = 5 * time.Second
	// previousRestartThreshold: past this point "previous" restarts the window.
	previousRestartThreshold = 3 * time.Second
)

var errDetached = session.ErrDetached

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	action := m.keys.Resolve(key)

	switch action {
	case keymap.ActionQuit:
		next, _ := m.applyHostEvents(lifecycle.Pause, lifecycle.Stop)
		mm, _ := next.(Model)
		mm.Quitting = true
		return mm, tea.Quit

	case keymap.ActionSuspend:
		next, _ := m.applyHostEvents(lifecycle.Pause, lifecycle.Stop)
		return next, tea.Suspend

	case keymap.ActionHelp:
		m.ShowHelp = !m.ShowHelp

	case keymap.ActionPlayPause:
		_, err := m.ctrl.TogglePlay()
		m.logControlErr(errmsg.OpToggle, err)

	case keymap.ActionSeekForward:
		m.logControlErr(errmsg.OpSeek, m.ctrl.Seek(seekStep))

	case keymap.ActionSeekBack:
		m.logControlErr(errmsg.OpSeek, m.ctrl.Seek(-seekStep))

	case keymap.ActionNextWindow:
		m.logControlErr(errmsg.OpWindow, m.stepWindow(1))

	case keymap.ActionPrevWindow:
		m.logControlErr(errmsg.OpWindow, m.previousWindow())

	case keymap.ActionFirstWindow:
		m.logControlErr(errmsg.OpWindow, m.ctrl.SeekTo(0, 0))

	case keymap.ActionRestart:
		m.logControlErr(errmsg.OpSeek, m.stepWindow(0))

	case keymap.ActionStop:
		err := m.ctrl.SetAutoplay(false)
		if err == nil {
			err = m.stepWindow(0)
		}
		m.logControlErr(errmsg.OpStop, err)
	}

	return m, nil
}

// stepWindow moves delta windows from the current one, starting at 0.
// Moving past either end is a no-op.
func (m Model) stepWindow(delta int) error {
	st, active := m.ctrl.Snapshot()
	if !active {
		return errDetached
	}
	h, _ := m.ctrl.Handle()
	target := st.WindowIndex + delta
	if target < 0 || target >= h.Source.Len() {
		return nil
	}
	return m.ctrl.SeekTo(target, 0)
}

func (m Model) previousWindow() error {
	st, active := m.ctrl.Snapshot()
	if !active {
		return errDetached
	}
	if st.Position > previousRestartThreshold || st.WindowIndex == 0 {
		return m.stepWindow(0)
	}
	return m.stepWindow(-1)
}
