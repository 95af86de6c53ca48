package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/llehouerou/tideplay/internal/engine"
	"github.com/llehouerou/tideplay/internal/lifecycle"
	"github.com/llehouerou/tideplay/internal/media"
	"github.com/llehouerou/tideplay/internal/session"
	"github.com/llehouerou/tideplay/internal/state"
	"github.com/llehouerou/tideplay/internal/surface"
)

type testHost struct {
	model Model
	ctrl  *session.Controller
	view  *surface.View
	store *state.Mock
	fwd   *Forwarder
	built *[]*engine.Mock
	src   media.Source
}

func newTestHost(t *testing.T, band lifecycle.Band, initial session.State) *testHost {
	t.Helper()
	built := &[]*engine.Mock{}
	view := surface.NewView()
	fwd := NewForwarder(8)
	ctrl := session.New(engine.MockFactory(built), view, session.WithObserver(fwd))
	src, err := media.Parse("/music/a.mp3", "/music/b.mp3", "/music/c.mp3")
	if err != nil {
		t.Fatal(err)
	}
	store := state.NewMock()
	binder := lifecycle.NewBinder(band, ctrl, src, initial, lifecycle.OnRelease(PersistRelease(store)))
	t.Cleanup(binder.Shutdown)

	return &testHost{
		model: New(Options{
			Controller: ctrl,
			Binder:     binder,
			View:       view,
			Events:     fwd.Events(),
			Logger:     zerolog.Nop(),
		}),
		ctrl:  ctrl,
		view:  view,
		store: store,
		fwd:   fwd,
		built: built,
		src:   src,
	}
}

func (h *testHost) update(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := h.model.Update(msg)
	m, ok := next.(Model)
	if !ok {
		t.Fatal("Update should return Model")
	}
	h.model = m
	return cmd
}

func (h *testHost) engine(t *testing.T) *engine.Mock {
	t.Helper()
	if len(*h.built) == 0 {
		t.Fatal("no engine built")
	}
	return (*h.built)[len(*h.built)-1]
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestUpdate_WindowSizeMsg(t *testing.T) {
	h := newTestHost(t, lifecycle.MultiWindow, session.DefaultState())
	h.update(t, tea.WindowSizeMsg{Width: 120, Height: 40})

	if h.model.Width != 120 || h.model.Height != 40 {
		t.Errorf("size = %dx%d, want 120x40", h.model.Width, h.model.Height)
	}
}

func TestUpdate_StartupAcquires(t *testing.T) {
	h := newTestHost(t, lifecycle.MultiWindow, session.DefaultState())

	cmd := h.update(t, HostEventMsg{Events: []lifecycle.Event{lifecycle.Start, lifecycle.Resume}})

	if !h.ctrl.Active() {
		t.Fatal("controller should be active after Start+Resume")
	}
	if !h.model.Ticking || cmd == nil {
		t.Error("expected tick to start after acquire")
	}
	if h.view.Attached() != 1 {
		t.Errorf("Attached() = %d, want 1", h.view.Attached())
	}
	if len(*h.built) != 1 {
		t.Errorf("built %d engines, want 1", len(*h.built))
	}
}

func TestUpdate_BlurKeepsMultiWindowSession(t *testing.T) {
	h := newTestHost(t, lifecycle.MultiWindow, session.DefaultState())
	h.update(t, HostEventMsg{Events: []lifecycle.Event{lifecycle.Start, lifecycle.Resume}})

	h.update(t, tea.BlurMsg{})
	if !h.ctrl.Active() {
		t.Error("multi-window host must keep the session while unfocused")
	}
	h.update(t, tea.FocusMsg{})
	if len(*h.built) != 1 {
		t.Errorf("refocus rebuilt the engine: %d builds", len(*h.built))
	}
}

func TestUpdate_BlurReleasesSingleWindowSession(t *testing.T) {
	h := newTestHost(t, lifecycle.SingleWindow, session.DefaultState())
	h.update(t, HostEventMsg{Events: []lifecycle.Event{lifecycle.Start, lifecycle.Resume}})
	h.engine(t).SetPosition(12 * time.Second)

	h.update(t, tea.BlurMsg{})
	if h.ctrl.Active() {
		t.Fatal("single-window host must release on blur")
	}
	rec, _ := h.store.GetSession(h.src.Key())
	if rec == nil || rec.State.Position != 12*time.Second {
		t.Errorf("saved = %+v, want position 12s", rec)
	}

	h.update(t, tea.FocusMsg{})
	if !h.ctrl.Active() {
		t.Fatal("focus should reacquire")
	}
	if got := h.engine(t).CurrentPosition(); got != 12*time.Second {
		t.Errorf("reacquired at %v, want 12s", got)
	}
}

func TestUpdate_SuspendAndResume(t *testing.T) {
	h := newTestHost(t, lifecycle.MultiWindow, session.DefaultState())
	h.update(t, HostEventMsg{Events: []lifecycle.Event{lifecycle.Start, lifecycle.Resume}})
	h.engine(t).SeekTo(1, 30*time.Second)

	cmd := h.update(t, tea.KeyMsg{Type: tea.KeyCtrlZ})
	if h.ctrl.Active() {
		t.Fatal("suspend should release")
	}
	if cmd == nil {
		t.Fatal("expected suspend command")
	}
	if _, ok := cmd().(tea.SuspendMsg); !ok {
		t.Error("expected tea.SuspendMsg")
	}

	h.update(t, tea.ResumeMsg{})
	if !h.ctrl.Active() {
		t.Fatal("resume should reacquire")
	}
	e := h.engine(t)
	if e.CurrentWindowIndex() != 1 || e.CurrentPosition() != 30*time.Second {
		t.Errorf("resumed at window %d %v, want 1 30s", e.CurrentWindowIndex(), e.CurrentPosition())
	}
}

func TestUpdate_QuitReleasesAndPersists(t *testing.T) {
	h := newTestHost(t, lifecycle.MultiWindow, session.DefaultState())
	h.update(t, HostEventMsg{Events: []lifecycle.Event{lifecycle.Start, lifecycle.Resume}})
	e := h.engine(t)
	e.SetPosition(7 * time.Second)

	cmd := h.update(t, runes("q"))

	if h.ctrl.Active() {
		t.Error("quit should release the session")
	}
	if !e.Released() {
		t.Error("engine should be released")
	}
	if !h.model.Quitting {
		t.Error("Quitting should be set")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	hist, _ := h.store.History(0)
	if len(hist) != 1 || hist[0].State.Position != 7*time.Second {
		t.Errorf("history = %+v", hist)
	}
	if h.model.View() != "" {
		t.Error("View() should be empty after quit")
	}
}

func TestKeys_PlaybackControls(t *testing.T) {
	h := newTestHost(t, lifecycle.MultiWindow, session.State{Autoplay: true, WindowIndex: 1, Position: 10 * time.Second})
	h.update(t, HostEventMsg{Events: []lifecycle.Event{lifecycle.Start, lifecycle.Resume}})
	e := h.engine(t)

	h.update(t, tea.KeyMsg{Type: tea.KeySpace})
	if e.Autoplay() {
		t.Error("space should pause")
	}

	h.update(t, tea.KeyMsg{Type: tea.KeyRight})
	if got := e.CurrentPosition(); got != 15*time.Second {
		t.Errorf("after right: %v, want 15s", got)
	}
	h.update(t, tea.KeyMsg{Type: tea.KeyLeft})
	h.update(t, tea.KeyMsg{Type: tea.KeyLeft})
	if got := e.CurrentPosition(); got != 5*time.Second {
		t.Errorf("after left left: %v, want 5s", got)
	}

	h.update(t, runes("n"))
	if e.CurrentWindowIndex() != 2 || e.CurrentPosition() != 0 {
		t.Errorf("after n: window %d %v, want 2 0s", e.CurrentWindowIndex(), e.CurrentPosition())
	}
	h.update(t, runes("n"))
	if e.CurrentWindowIndex() != 2 {
		t.Errorf("n past the last window moved to %d", e.CurrentWindowIndex())
	}

	h.update(t, runes("p"))
	if e.CurrentWindowIndex() != 1 {
		t.Errorf("after p: window %d, want 1", e.CurrentWindowIndex())
	}

	e.SetPosition(20 * time.Second)
	h.update(t, runes("p"))
	if e.CurrentWindowIndex() != 1 || e.CurrentPosition() != 0 {
		t.Errorf("p past 3s should restart: window %d %v", e.CurrentWindowIndex(), e.CurrentPosition())
	}

	h.update(t, tea.KeyMsg{Type: tea.KeySpace})
	h.update(t, runes("s"))
	if e.Autoplay() || e.CurrentPosition() != 0 {
		t.Errorf("stop should pause and rewind: autoplay %v pos %v", e.Autoplay(), e.CurrentPosition())
	}
}

func TestKeys_DetachedControlsAreQuiet(t *testing.T) {
	h := newTestHost(t, lifecycle.MultiWindow, session.DefaultState())

	h.update(t, tea.KeyMsg{Type: tea.KeySpace})
	h.update(t, runes("n"))

	if h.model.LastErr != nil {
		t.Errorf("LastErr = %v, want nil for detached controls", h.model.LastErr)
	}
	if len(*h.built) != 0 {
		t.Error("controls must not build an engine")
	}
}

func TestKeys_HelpToggle(t *testing.T) {
	h := newTestHost(t, lifecycle.MultiWindow, session.DefaultState())

	h.update(t, runes("?"))
	if !h.model.ShowHelp {
		t.Fatal("? should show help")
	}
	if !strings.Contains(h.model.View(), "Play/pause") {
		t.Error("help should list playback bindings")
	}
	h.update(t, runes("?"))
	if h.model.ShowHelp {
		t.Error("? should hide help")
	}
}

func TestUpdate_EngineEvents(t *testing.T) {
	h := newTestHost(t, lifecycle.MultiWindow, session.DefaultState())
	h.update(t, HostEventMsg{Events: []lifecycle.Event{lifecycle.Start, lifecycle.Resume}})

	boom := errors.New("source unavailable")
	h.engine(t).Fail(boom)

	ev := <-h.fwd.Events()
	if !errors.Is(ev.Err, boom) {
		t.Fatalf("first forwarded event = %+v, want error", ev)
	}
	cmd := h.update(t, EngineEventMsg(ev))
	if !errors.Is(h.model.LastErr, boom) {
		t.Errorf("LastErr = %v", h.model.LastErr)
	}
	if cmd == nil {
		t.Error("expected the wait command to be reissued")
	}
	if !strings.Contains(h.model.View(), "source unavailable") {
		t.Error("View() should show the error")
	}

	h.update(t, EngineEventMsg(EngineEvent{State: engine.StateReady}))
	if h.model.LastErr != nil {
		t.Error("a Ready state should clear the error")
	}
}

func TestUpdate_TickStopsWhenDetached(t *testing.T) {
	h := newTestHost(t, lifecycle.MultiWindow, session.DefaultState())
	h.model.Ticking = true

	if cmd := h.update(t, TickMsg(time.Now())); cmd != nil {
		t.Error("tick should stop while detached")
	}
	if h.model.Ticking {
		t.Error("Ticking should be cleared")
	}
}

func TestView_Detached(t *testing.T) {
	h := newTestHost(t, lifecycle.MultiWindow, session.DefaultState())
	h.model.Width = 60

	if v := h.model.View(); !strings.Contains(v, "detached") {
		t.Errorf("View() = %q, want detached header", v)
	}
}
