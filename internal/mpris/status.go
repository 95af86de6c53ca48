package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/llehouerou/tideplay/internal/engine"
	"github.com/llehouerou/tideplay/internal/session"
)

// Controller is the slice of session.Controller exposed over MPRIS.
type Controller interface {
	Handle() (session.Handle, bool)
	Snapshot() (session.State, bool)
	EngineState() (engine.State, error)
	TrackInfo() (*engine.TrackInfo, time.Duration)
	SetAutoplay(autoplay bool) error
	TogglePlay() (bool, error)
	SeekTo(window int, position time.Duration) error
	Seek(delta time.Duration) error
}

var _ Controller = (*session.Controller)(nil)

// Status is the MPRIS PlaybackStatus value.
type Status string

const (
	StatusPlaying Status = "Playing"
	StatusPaused  Status = "Paused"
	StatusStopped Status = "Stopped"
)

// statusOf maps the engine state and autoplay flag to a playback status.
// A detached controller is Stopped.
func statusOf(active bool, s engine.State, autoplay bool) Status {
	if !active || s.IsTerminal() {
		return StatusStopped
	}
	switch s {
	case engine.StateBuffering, engine.StateReady:
		if autoplay {
			return StatusPlaying
		}
		return StatusPaused
	}
	return StatusStopped
}

// navigation moves between windows of the held source.
type navigation struct {
	ctrl Controller
}

func (n navigation) windows() (current, count int, ok bool) {
	h, active := n.ctrl.Handle()
	if !active {
		return 0, 0, false
	}
	st, _ := n.ctrl.Snapshot()
	return st.WindowIndex, h.Source.Len(), true
}

func (n navigation) hasNext() bool {
	cur, count, ok := n.windows()
	return ok && cur+1 < count
}

func (n navigation) hasPrevious() bool {
	cur, _, ok := n.windows()
	return ok && cur > 0
}

func (n navigation) next() error {
	cur, count, ok := n.windows()
	if !ok {
		return session.ErrDetached
	}
	if cur+1 >= count {
		return nil
	}
	return n.ctrl.SeekTo(cur+1, 0)
}

// previous restarts the current window when past the first few seconds,
// otherwise steps back one window.
func (n navigation) previous() error {
	st, active := n.ctrl.Snapshot()
	if !active {
		return session.ErrDetached
	}
	if st.Position > 3*time.Second || st.WindowIndex == 0 {
		return n.ctrl.SeekTo(st.WindowIndex, 0)
	}
	return n.ctrl.SeekTo(st.WindowIndex-1, 0)
}

// stop pauses and rewinds the current window.
func (n navigation) stop() error {
	st, active := n.ctrl.Snapshot()
	if !active {
		return session.ErrDetached
	}
	if err := n.ctrl.SetAutoplay(false); err != nil {
		return err
	}
	return n.ctrl.SeekTo(st.WindowIndex, 0)
}

// setPosition seeks only when trackID still names the current window.
func (n navigation) setPosition(trackID string, position time.Duration) error {
	h, active := n.ctrl.Handle()
	if !active {
		return session.ErrDetached
	}
	st, _ := n.ctrl.Snapshot()
	item, ok := h.Source.Item(st.WindowIndex)
	if !ok || formatTrackID(h, st.WindowIndex, item.URI) != trackID {
		return nil
	}
	return n.ctrl.SeekTo(st.WindowIndex, position)
}

func formatTrackID(h session.Handle, window int, uri string) string {
	hash := fnv.New64a()
	hash.Write([]byte(h.ID.String()))
	hash.Write([]byte{byte(window)})
	hash.Write([]byte(uri))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", hash.Sum64())
}
