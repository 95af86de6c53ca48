package surface

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/llehouerou/tideplay/internal/engine"
	"github.com/llehouerou/tideplay/internal/icons"
)

var (
	barStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	stateStyle = lipgloss.NewStyle().Bold(true)
)

// View is a terminal status bar that shows the attached engine.
type View struct {
	mu       sync.Mutex
	attached engine.Engine
	spinner  spinner.Model
}

// NewView creates an empty view.
func NewView() *View {
	return &View{
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot)),
	}
}

// Attach implements Surface.
func (v *View) Attach(e engine.Engine) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.attached != nil && v.attached != e {
		return ErrOccupied
	}
	v.attached = e
	return nil
}

// Detach implements Surface.
func (v *View) Detach(e engine.Engine) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.attached == e {
		v.attached = nil
	}
}

// Attached returns the number of attached engines: 0 or 1.
func (v *View) Attached() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.attached == nil {
		return 0
	}
	return 1
}

// Tick returns the command driving the buffering spinner.
func (v *View) Tick() tea.Cmd {
	return v.spinner.Tick
}

// Update advances the spinner.
func (v *View) Update(msg tea.Msg) tea.Cmd {
	v.mu.Lock()
	defer v.mu.Unlock()
	var cmd tea.Cmd
	v.spinner, cmd = v.spinner.Update(msg)
	return cmd
}

// Render draws the bar at the given outer width.
func (v *View) Render(width int) string {
	inner := max(width-2, 0)
	return barStyle.Width(inner).Render(v.Line(inner))
}

// Line returns the bar content without borders, fitted to width cells.
func (v *View) Line(width int) string {
	v.mu.Lock()
	e := v.attached
	spin := v.spinner.View()
	v.mu.Unlock()

	if e == nil {
		return dimStyle.Render(runewidth.Truncate(" no engine attached", width, "…"))
	}

	st := e.State()
	icon := stateIcon(st, e.Autoplay(), spin)

	title := ""
	var dur time.Duration
	if d, ok := e.(engine.Describer); ok {
		if info := d.TrackInfo(); info != nil {
			title = info.Title
			if info.Artist != "" {
				title = info.Artist + " - " + title
			}
		}
		dur = d.Duration()
	}

	left := fmt.Sprintf(" %s %s  #%d", icon, stateStyle.Render(st.String()), e.CurrentWindowIndex()+1)
	right := formatDuration(e.CurrentPosition())
	if dur > 0 {
		right += " / " + formatDuration(dur)
	}
	right += " "

	avail := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if title != "" && avail > 0 {
		left += "  " + runewidth.Truncate(title, avail, "…")
	}
	pad := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", pad) + right
}

func stateIcon(st engine.State, autoplay bool, spin string) string {
	switch st {
	case engine.StateBuffering:
		return spin
	case engine.StateIdle:
		return icons.Idle()
	case engine.StateEnded:
		return icons.Ended()
	case engine.StateReady, engine.StateUnknown:
	}
	if autoplay {
		return icons.Play()
	}
	return icons.Pause()
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

// Verify View implements Surface at compile time.
var _ Surface = (*View)(nil)
