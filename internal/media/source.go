// Package media describes what a playback engine is asked to play.
package media

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

var (
	ErrEmptySource       = errors.New("media source has no items")
	ErrUnsupportedScheme = errors.New("unsupported uri scheme")
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
	extOGG  = ".ogg"
)

// Item is one window of a source: a single playable URI.
type Item struct {
	URI string
}

// IsRemote reports whether the item must be fetched over HTTP.
func (i Item) IsRemote() bool {
	u, err := url.Parse(i.URI)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// Path returns the local filesystem path for local items.
// For remote items it returns the URL path component.
func (i Item) Path() string {
	u, err := url.Parse(i.URI)
	if err != nil || len(u.Scheme) <= 1 {
		return i.URI
	}
	return u.Path
}

// Ext returns the lowercased extension of the item, including the dot.
func (i Item) Ext() string {
	return strings.ToLower(filepath.Ext(i.Path()))
}

// Name returns a short display name for the item.
func (i Item) Name() string {
	return filepath.Base(i.Path())
}

// Source is an ordered list of items. Window indexes address Items.
type Source struct {
	Items []Item
}

// Parse builds a Source from a list of URIs or bare paths.
func Parse(uris ...string) (Source, error) {
	var src Source
	for _, raw := range uris {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil {
			return Source{}, fmt.Errorf("parse %q: %w", raw, err)
		}
		switch u.Scheme {
		case "", "file", "http", "https":
		default:
			// Windows drive letters parse as a one-letter scheme.
			if len(u.Scheme) != 1 {
				return Source{}, fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
			}
		}
		src.Items = append(src.Items, Item{URI: raw})
	}
	if len(src.Items) == 0 {
		return Source{}, ErrEmptySource
	}
	return src, nil
}

// Len returns the number of windows in the source.
func (s Source) Len() int { return len(s.Items) }

// IsEmpty returns true if the source has no items.
func (s Source) IsEmpty() bool { return len(s.Items) == 0 }

// Item returns the item at window index i.
func (s Source) Item(i int) (Item, bool) {
	if i < 0 || i >= len(s.Items) {
		return Item{}, false
	}
	return s.Items[i], true
}

// Key identifies the source for persisted resume state. Two sources with the
// same items in the same order share a key.
func (s Source) Key() string {
	uris := make([]string, len(s.Items))
	for i, it := range s.Items {
		uris[i] = it.URI
	}
	return strings.Join(uris, "\n")
}

// IsMediaFile returns true if path has an extension the engine can decode.
func IsMediaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case extMP3, extFLAC, extWAV, extOGG:
		return true
	}
	return false
}
