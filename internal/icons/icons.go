// Package icons holds the glyphs used for playback state in the status bar.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Play   string
	Pause  string
	Idle   string
	Ended  string
	Error  string
	Remote string
}

var (
	nerdIcons = Icons{
		Play:   "\uf04b",      // nf-fa-play
		Pause:  "\uf04c",      // nf-fa-pause
		Idle:   "\uf04d",      // nf-fa-stop
		Ended:  "\U000f04ad",  // nf-md-skip_next
		Error:  "\uf071",      // nf-fa-warning
		Remote: "\U000f059f ", // nf-md-web
	}

	unicodeIcons = Icons{
		Play:   "▶",
		Pause:  "⏸",
		Idle:   "■",
		Ended:  "⏭",
		Error:  "⚠",
		Remote: "🌐 ",
	}

	noneIcons = Icons{
		Play:   ">",
		Pause:  "||",
		Idle:   "[]",
		Ended:  ">|",
		Error:  "!",
		Remote: "",
	}

	// current holds the active icon set
	current = unicodeIcons
)

// Init selects the icon style. Empty selects unicode; unknown values select none.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode, "":
		current = unicodeIcons
	case StyleNone:
		current = noneIcons
	default:
		current = noneIcons
	}
}

// Play returns the playing indicator.
func Play() string {
	return current.Play
}

// Pause returns the paused indicator.
func Pause() string {
	return current.Pause
}

// Idle returns the indicator for an engine with nothing loaded.
func Idle() string {
	return current.Idle
}

// Ended returns the indicator shown after the last window finished.
func Ended() string {
	return current.Ended
}

// Error returns the error indicator.
func Error() string {
	return current.Error
}

// FormatRemote prefixes a title that streams from the network.
func FormatRemote(title string) string {
	return current.Remote + title
}
