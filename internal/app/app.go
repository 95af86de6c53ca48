// Package app is the terminal host: a bubbletea model whose focus and
// visibility changes drive the playback session.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/llehouerou/tideplay/internal/engine"
	"github.com/llehouerou/tideplay/internal/keymap"
	"github.com/llehouerou/tideplay/internal/lifecycle"
	"github.com/llehouerou/tideplay/internal/session"
	"github.com/llehouerou/tideplay/internal/surface"
)

// Controller is the slice of session.Controller the UI drives.
type Controller interface {
	Snapshot() (session.State, bool)
	EngineState() (engine.State, error)
	TogglePlay() (bool, error)
	SetAutoplay(autoplay bool) error
	SeekTo(window int, position time.Duration) error
	Seek(delta time.Duration) error
	Handle() (session.Handle, bool)
}

var _ Controller = (*session.Controller)(nil)

// Options wires a Model.
type Options struct {
	Controller Controller
	Binder     *lifecycle.Binder
	View       *surface.View
	Keys       *keymap.Resolver
	Events     <-chan EngineEvent
	Logger     zerolog.Logger
}

// Model is the terminal host. Its visibility transitions drive the binder.
type Model struct {
	ctrl   Controller
	binder *lifecycle.Binder
	view   *surface.View
	keys   *keymap.Resolver
	events <-chan EngineEvent
	log    zerolog.Logger

	Width    int
	Height   int
	ShowHelp bool
	LastErr  error
	Ticking  bool
	Quitting bool
}

// New creates the host model.
func New(opts Options) Model {
	keys := opts.Keys
	if keys == nil {
		keys = keymap.NewResolver(keymap.All)
	}
	return Model{
		ctrl:   opts.Controller,
		binder: opts.Binder,
		view:   opts.View,
		keys:   keys,
		events: opts.Events,
		log:    opts.Logger,
	}
}

// Init makes the surface visible and focused.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		HostEventCmd(lifecycle.Start, lifecycle.Resume),
		m.WaitEngineEvent(),
		m.view.Tick(),
	)
}
