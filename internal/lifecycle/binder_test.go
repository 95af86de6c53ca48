package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tideplay/internal/engine"
	"github.com/llehouerou/tideplay/internal/media"
	"github.com/llehouerou/tideplay/internal/session"
	"github.com/llehouerou/tideplay/internal/surface"
)

// recordingController logs acquire/release calls and echoes state back.
type recordingController struct {
	calls  []string
	active bool
	held   session.State
	err    error
}

func (r *recordingController) Acquire(_ media.Source, st session.State) (session.Handle, error) {
	r.calls = append(r.calls, "acquire")
	if r.err != nil {
		return session.Handle{}, r.err
	}
	r.active = true
	r.held = st
	return session.Handle{}, nil
}

func (r *recordingController) Release() session.State {
	r.calls = append(r.calls, "release")
	r.active = false
	return r.held
}

func (r *recordingController) Active() bool { return r.active }

func testSource(t *testing.T) media.Source {
	t.Helper()
	src, err := media.Parse("/music/a.mp3")
	require.NoError(t, err)
	return src
}

func drive(t *testing.T, b *Binder, events ...Event) {
	t.Helper()
	for _, ev := range events {
		require.NoError(t, b.Handle(ev))
	}
}

func TestBand_Boundaries(t *testing.T) {
	assert.Equal(t, Boundary{Acquire: Start, Release: Stop}, MultiWindow.Boundaries())
	assert.Equal(t, Boundary{Acquire: Resume, Release: Pause}, SingleWindow.Boundaries())
}

func TestBinder_SingleWindow_ResumePauseCycles(t *testing.T) {
	rec := &recordingController{}
	b := NewBinder(SingleWindow, rec, testSource(t), session.DefaultState())

	drive(t, b, Resume, Pause, Resume, Pause)

	assert.Equal(t, []string{"acquire", "release", "acquire", "release"}, rec.calls)
}

func TestBinder_SingleWindow_IgnoresStartStop(t *testing.T) {
	rec := &recordingController{}
	b := NewBinder(SingleWindow, rec, testSource(t), session.DefaultState())

	drive(t, b, Start, Resume, Pause, Stop)

	assert.Equal(t, []string{"acquire", "release"}, rec.calls)
}

func TestBinder_SingleWindow_ResumeGuardedWhenHeld(t *testing.T) {
	rec := &recordingController{}
	b := NewBinder(SingleWindow, rec, testSource(t), session.DefaultState())

	drive(t, b, Resume, Resume)

	assert.Equal(t, []string{"acquire"}, rec.calls)
}

func TestBinder_MultiWindow_StartStop(t *testing.T) {
	rec := &recordingController{}
	b := NewBinder(MultiWindow, rec, testSource(t), session.DefaultState())

	drive(t, b, Start, Stop)

	assert.Equal(t, []string{"acquire", "release"}, rec.calls)
}

func TestBinder_MultiWindow_FocusChangesIgnored(t *testing.T) {
	rec := &recordingController{}
	b := NewBinder(MultiWindow, rec, testSource(t), session.DefaultState())

	drive(t, b, Start, Resume, Pause, Resume, Pause, Stop)

	assert.Equal(t, []string{"acquire", "release"}, rec.calls)
}

func TestBinder_ReleaseWhileDetachedSkipped(t *testing.T) {
	rec := &recordingController{}
	b := NewBinder(MultiWindow, rec, testSource(t), session.DefaultState())

	drive(t, b, Stop, Stop)

	assert.Empty(t, rec.calls)
}

func TestBinder_CarriesStateAcrossCycles(t *testing.T) {
	view := surface.NewView()
	var built []*engine.Mock
	ctrl := session.New(engine.MockFactory(&built), view)

	var saved []session.State
	initial := session.State{Autoplay: false, WindowIndex: 0, Position: 3 * time.Second}
	b := NewBinder(SingleWindow, ctrl, testSource(t), initial,
		OnRelease(func(_ media.Source, st session.State) { saved = append(saved, st) }))

	drive(t, b, Resume)
	built[0].SetPosition(7 * time.Second)
	drive(t, b, Pause, Resume)

	require.Len(t, built, 2)
	assert.Equal(t, 7*time.Second, built[1].CurrentPosition(), "second engine resumes where the first stopped")
	assert.False(t, built[1].Autoplay())
	require.Len(t, saved, 1)
	assert.Equal(t, 7*time.Second, saved[0].Position)

	b.Shutdown()
	assert.False(t, ctrl.Active())
	assert.Len(t, saved, 2)
	assert.Equal(t, 0, view.Attached())
}

func TestBinder_AcquireErrorReturned(t *testing.T) {
	rec := &recordingController{err: errors.New("no device")}
	b := NewBinder(MultiWindow, rec, testSource(t), session.DefaultState())

	err := b.Handle(Start)
	assert.Error(t, err)
	assert.False(t, rec.Active())
}

func TestParseBand(t *testing.T) {
	tests := []struct {
		in      string
		want    Band
		wantErr bool
	}{
		{"", MultiWindow, false},
		{"auto", MultiWindow, false},
		{"multi", MultiWindow, false},
		{"Single", SingleWindow, false},
		{"single-window", SingleWindow, false},
		{"split", MultiWindow, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBand(tt.in, MultiWindow)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvent_String(t *testing.T) {
	assert.Equal(t, "Start", Start.String())
	assert.Equal(t, "Resume", Resume.String())
	assert.Equal(t, "Pause", Pause.String())
	assert.Equal(t, "Stop", Stop.String())
	assert.Equal(t, "Unknown", Event(42).String())
}
