package engine

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dhowden/tag"
)

// TrackInfo describes the item currently loaded in an engine.
type TrackInfo struct {
	Path       string
	Title      string
	Artist     string
	Album      string
	Year       int
	Track      int
	Duration   time.Duration
	SampleRate int
	Format     string
}

// ReadTrackInfo reads tag metadata from a local file.
func ReadTrackInfo(path string) (*TrackInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, err
	}

	title := m.Title()
	if title == "" {
		title = filepath.Base(path)
	}
	track, _ := m.Track()

	return &TrackInfo{
		Path:   path,
		Title:  title,
		Artist: m.Artist(),
		Album:  m.Album(),
		Year:   m.Year(),
		Track:  track,
	}, nil
}
