package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/rs/zerolog"

	"github.com/llehouerou/tideplay/internal/media"
)

var (
	speakerMu          sync.Mutex
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// initSpeaker opens the audio device on first use. Later items are resampled
// to the first item's rate.
func initSpeaker(sr beep.SampleRate) (beep.SampleRate, error) {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerInitialized {
		return speakerSampleRate, nil
	}
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return 0, fmt.Errorf("init speaker: %w", err)
	}
	speakerSampleRate = sr
	speakerInitialized = true
	return sr, nil
}

// PlayerOptions configures a Player.
type PlayerOptions struct {
	Fetcher *Fetcher
	Logger  zerolog.Logger
}

// Player is the beep-backed engine. Each window of the source is fetched,
// decoded and played in turn; the next window loads when one finishes.
type Player struct {
	mu        sync.Mutex
	fetcher   *Fetcher
	log       zerolog.Logger
	source    media.Source
	autoplay  bool
	window    int
	pending   time.Duration // position applied when the window loads
	state     State
	prepared  bool
	released  bool
	observers observerList

	loaded *loadedItem
	gen    uint64 // bumped on every load and on release; stale loaders compare
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type loadedItem struct {
	fetched  *Fetched
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	info     *TrackInfo
	drained  atomic.Bool // the speaker has dropped ctrl
}

// NewPlayer creates an idle player.
func NewPlayer(opts PlayerOptions) *Player {
	if opts.Fetcher == nil {
		opts.Fetcher = NewFetcher(FetcherOptions{Logger: opts.Logger})
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Player{
		fetcher: opts.Fetcher,
		log:     opts.Logger,
		state:   StateIdle,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// NewFactory returns a Factory building Players that share opts.
func NewFactory(opts PlayerOptions) Factory {
	if opts.Fetcher == nil {
		opts.Fetcher = NewFetcher(FetcherOptions{Logger: opts.Logger})
	}
	return func() (Engine, error) {
		return NewPlayer(opts), nil
	}
}

func (p *Player) SetMediaSource(src media.Source) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.source = src
	p.window = 0
	p.pending = 0
}

func (p *Player) SetAutoplay(autoplay bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.autoplay = autoplay
	if p.loaded != nil {
		speaker.Lock()
		p.loaded.ctrl.Paused = !autoplay
		speaker.Unlock()
	}
}

// SeekTo moves within the loaded window, or loads the target window when the
// player is prepared. A window that already played out is loaded again, since
// the speaker no longer holds it. Before Prepare it only records the target.
func (p *Player) SeekTo(window int, position time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		return
	}
	position = max(position, 0)

	if p.seekableLocked(window) {
		l := p.loaded
		n := min(l.format.SampleRate.N(position), max(l.streamer.Len()-1, 0))
		speaker.Lock()
		err := l.streamer.Seek(n)
		speaker.Unlock()
		if err != nil {
			p.log.Warn().Err(err).Msg("seek failed")
		}
		return
	}

	p.window = window
	p.pending = position
	if p.prepared {
		p.startLoadLocked(window, position)
	}
}

// seekableLocked reports whether window is loaded and still queued on the
// speaker.
func (p *Player) seekableLocked(window int) bool {
	return p.loaded != nil &&
		window == p.window &&
		p.state != StateEnded &&
		!p.loaded.drained.Load()
}

func (p *Player) Prepare() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released || p.prepared {
		return
	}
	p.prepared = true
	p.startLoadLocked(p.window, p.pending)
}

func (p *Player) AddObserver(o Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = p.observers.add(o)
}

func (p *Player) RemoveObserver(o Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = p.observers.remove(o)
}

// Release stops playback, waits for the loader and frees every resource.
// Calling it more than once is harmless.
func (p *Player) Release() {
	p.mu.Lock()
	if p.released {
		p.mu.Unlock()
		return
	}
	p.released = true
	p.observers = nil
	p.gen++
	p.cancel()
	p.mu.Unlock()

	p.wg.Wait()

	p.mu.Lock()
	p.unloadLocked()
	p.state = StateIdle
	p.mu.Unlock()
}

func (p *Player) CurrentPosition() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loaded == nil {
		return p.pending
	}
	speaker.Lock()
	pos := p.loaded.format.SampleRate.D(p.loaded.streamer.Position())
	speaker.Unlock()
	return pos
}

func (p *Player) CurrentWindowIndex() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.window
}

func (p *Player) Autoplay() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.autoplay
}

func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// TrackInfo returns metadata of the loaded window, or nil.
func (p *Player) TrackInfo() *TrackInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loaded == nil {
		return nil
	}
	return p.loaded.info
}

// Duration returns the length of the loaded window.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loaded == nil {
		return 0
	}
	return p.loaded.info.Duration
}

func (p *Player) startLoadLocked(window int, position time.Duration) {
	p.unloadLocked()
	p.gen++
	gen := p.gen
	src := p.source
	item, ok := src.Item(window)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if !ok {
			if src.IsEmpty() {
				p.fail(gen, media.ErrEmptySource)
				return
			}
			p.fail(gen, fmt.Errorf("window %d out of range [0,%d)", window, src.Len()))
			return
		}
		p.load(gen, window, item, position)
	}()
}

func (p *Player) load(gen uint64, window int, item media.Item, position time.Duration) {
	p.emit(gen, StateBuffering)

	fetched, err := p.fetcher.Open(p.ctx, item)
	if err != nil {
		p.fail(gen, fmt.Errorf("open %s: %w", item.URI, err))
		return
	}

	streamer, format, codec, err := decode(fetched.File, item.Ext())
	if err != nil {
		_ = fetched.Close()
		p.fail(gen, err)
		return
	}

	if n := format.SampleRate.N(position); n > 0 && n < streamer.Len() {
		if err := streamer.Seek(n); err != nil {
			p.log.Warn().Err(err).Str("uri", item.URI).Msg("resume seek failed")
		}
	}

	info, err := ReadTrackInfo(fetched.File.Name())
	if err != nil {
		info = &TrackInfo{Title: item.Name()}
	}
	info.Path = item.URI
	info.Duration = format.SampleRate.D(streamer.Len())
	info.SampleRate = int(format.SampleRate)
	info.Format = codec
	if info.Title == filepath.Base(fetched.File.Name()) {
		info.Title = item.Name()
	}

	outRate, err := initSpeaker(format.SampleRate)
	if err != nil {
		_ = streamer.Close()
		_ = fetched.Close()
		p.fail(gen, err)
		return
	}

	p.mu.Lock()
	if gen != p.gen || p.released {
		p.mu.Unlock()
		_ = streamer.Close()
		_ = fetched.Close()
		return
	}
	var out beep.Streamer = streamer
	if format.SampleRate != outRate {
		out = beep.Resample(4, format.SampleRate, outRate, streamer)
	}
	ctrl := &beep.Ctrl{Streamer: out, Paused: !p.autoplay}
	loaded := &loadedItem{
		fetched:  fetched,
		streamer: streamer,
		format:   format,
		ctrl:     ctrl,
		info:     info,
	}
	p.loaded = loaded
	p.window = window
	p.pending = 0
	// The callback runs with the speaker locked; finishing is handled elsewhere.
	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		loaded.drained.Store(true)
		go p.itemFinished(gen)
	})))
	p.mu.Unlock()

	p.log.Debug().Str("uri", item.URI).Int("window", window).Str("format", codec).Msg("item loaded")
	p.emit(gen, StateReady)
}

// itemFinished advances to the next window or ends playback.
func (p *Player) itemFinished(gen uint64) {
	p.mu.Lock()
	if gen != p.gen || p.released {
		p.mu.Unlock()
		return
	}
	next := p.window + 1
	if next < p.source.Len() {
		p.startLoadLocked(next, 0)
		p.mu.Unlock()
		return
	}
	p.wg.Add(1)
	p.mu.Unlock()
	defer p.wg.Done()
	p.emit(gen, StateEnded)
}

// emit moves to s and notifies observers, unless gen is stale.
func (p *Player) emit(gen uint64, s State) {
	p.mu.Lock()
	if gen != p.gen || p.released {
		p.mu.Unlock()
		return
	}
	p.state = s
	obs := p.observers
	p.mu.Unlock()

	for _, o := range obs {
		o.OnStateChanged(s)
	}
}

func (p *Player) fail(gen uint64, err error) {
	p.mu.Lock()
	if gen != p.gen || p.released {
		p.mu.Unlock()
		return
	}
	p.state = StateIdle
	obs := p.observers
	p.mu.Unlock()

	p.log.Debug().Err(err).Msg("engine error")
	for _, o := range obs {
		o.OnPlayerError(err)
	}
	for _, o := range obs {
		o.OnStateChanged(StateIdle)
	}
}

func (p *Player) unloadLocked() {
	if p.loaded == nil {
		return
	}
	speaker.Clear()
	_ = p.loaded.streamer.Close()
	_ = p.loaded.fetched.Close()
	p.loaded = nil
}
