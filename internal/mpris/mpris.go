//go:build linux

// Package mpris exposes a playback session to desktop media keys over D-Bus.
package mpris

import (
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/rs/zerolog"
)

// Adapter connects a session controller to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
	log    zerolog.Logger
}

// New creates and starts a new MPRIS adapter.
func New(ctrl Controller, log zerolog.Logger) (*Adapter, error) {
	a := &Adapter{log: log}

	a.server = server.NewServer("tideplay", &rootAdapter{}, &playerAdapter{
		ctrl: ctrl,
		nav:  navigation{ctrl: ctrl},
	})

	// Start the server in background
	go func() {
		if err := a.server.Listen(); err != nil {
			a.log.Warn().Err(err).Msg("mpris server stopped")
		}
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // the host owns the lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Tideplay", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file", "http", "https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav", "audio/ogg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	ctrl Controller
	nav  navigation
}

func (p *playerAdapter) Next() error {
	return p.nav.next()
}

func (p *playerAdapter) Previous() error {
	return p.nav.previous()
}

func (p *playerAdapter) Pause() error {
	return p.ctrl.SetAutoplay(false)
}

func (p *playerAdapter) PlayPause() error {
	_, err := p.ctrl.TogglePlay()
	return err
}

func (p *playerAdapter) Stop() error {
	return p.nav.stop()
}

func (p *playerAdapter) Play() error {
	return p.ctrl.SetAutoplay(true)
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	return p.ctrl.Seek(time.Duration(offset) * time.Microsecond)
}

func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	return p.nav.setPosition(trackID, time.Duration(position)*time.Microsecond)
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	_, active := p.ctrl.Handle()
	st, _ := p.ctrl.Snapshot()
	es, _ := p.ctrl.EngineState()

	switch statusOf(active, es, st.Autoplay) {
	case StatusPlaying:
		return types.PlaybackStatusPlaying, nil
	case StatusPaused:
		return types.PlaybackStatusPaused, nil
	case StatusStopped:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	h, active := p.ctrl.Handle()
	if !active {
		return types.Metadata{}, nil
	}
	st, _ := p.ctrl.Snapshot()
	item, ok := h.Source.Item(st.WindowIndex)
	if !ok {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(h, st.WindowIndex, item.URI)),
		Title:   item.Name(),
	}

	info, length := p.ctrl.TrackInfo()
	if info != nil {
		if info.Title != "" {
			meta.Title = info.Title
		}
		meta.Album = info.Album
		meta.TrackNumber = info.Track
		if info.Artist != "" {
			meta.Artist = []string{info.Artist}
		}
	}
	meta.Length = types.Microseconds(length.Microseconds())

	if !item.IsRemote() {
		if art := FindCoverArt(item.Path()); art != "" {
			meta.ArtUrl = "file://" + art
		}
	}

	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	st, _ := p.ctrl.Snapshot()
	return st.Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.nav.hasNext(), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.nav.hasPrevious(), nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	_, active := p.ctrl.Handle()
	return active, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	_, active := p.ctrl.Handle()
	return active, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	_, active := p.ctrl.Handle()
	return active, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}
