package media

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		uris    []string
		wantLen int
		wantErr error
	}{
		{"bare path", []string{"/music/a.mp3"}, 1, nil},
		{"file uri", []string{"file:///music/a.flac"}, 1, nil},
		{"http and https", []string{"http://x/a.mp3", "https://x/b.mp3"}, 2, nil},
		{"blank entries skipped", []string{"", "  ", "/a.mp3"}, 1, nil},
		{"empty", nil, 0, ErrEmptySource},
		{"only blanks", []string{" "}, 0, ErrEmptySource},
		{"rtsp rejected", []string{"rtsp://cam/stream"}, 0, ErrUnsupportedScheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Parse(tt.uris...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
			}
			if src.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", src.Len(), tt.wantLen)
			}
		})
	}
}

func TestItem_Accessors(t *testing.T) {
	tests := []struct {
		uri    string
		remote bool
		path   string
		ext    string
	}{
		{"/music/Song.MP3", false, "/music/Song.MP3", ".mp3"},
		{"file:///music/a.flac", false, "/music/a.flac", ".flac"},
		{"https://cdn.example.com/audio/b.ogg?sig=1", true, "/audio/b.ogg", ".ogg"},
		{"http://host/stream", true, "/stream", ""},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			it := Item{URI: tt.uri}
			if got := it.IsRemote(); got != tt.remote {
				t.Errorf("IsRemote() = %v, want %v", got, tt.remote)
			}
			if got := it.Path(); got != tt.path {
				t.Errorf("Path() = %q, want %q", got, tt.path)
			}
			if got := it.Ext(); got != tt.ext {
				t.Errorf("Ext() = %q, want %q", got, tt.ext)
			}
		})
	}
}

func TestSource_Item_Bounds(t *testing.T) {
	src, err := Parse("/a.mp3", "/b.mp3")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := src.Item(-1); ok {
		t.Error("Item(-1) should be out of range")
	}
	if _, ok := src.Item(2); ok {
		t.Error("Item(2) should be out of range")
	}
	if it, ok := src.Item(1); !ok || it.URI != "/b.mp3" {
		t.Errorf("Item(1) = %v, %v", it, ok)
	}
}

func TestSource_Key_OrderSensitive(t *testing.T) {
	a, _ := Parse("/a.mp3", "/b.mp3")
	b, _ := Parse("/b.mp3", "/a.mp3")
	c, _ := Parse("/a.mp3", "/b.mp3")
	if a.Key() == b.Key() {
		t.Error("different order should give different keys")
	}
	if a.Key() != c.Key() {
		t.Error("same items should give same key")
	}
}

func TestIsMediaFile(t *testing.T) {
	for path, want := range map[string]bool{
		"a.mp3":  true,
		"a.FLAC": true,
		"a.wav":  true,
		"a.ogg":  true,
		"a.m4a":  false,
		"a":      false,
	} {
		if got := IsMediaFile(path); got != want {
			t.Errorf("IsMediaFile(%q) = %v, want %v", path, got, want)
		}
	}
}
