package mpris

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("fake"), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFindCoverArt(t *testing.T) {
	dir := t.TempDir()
	coverPath := filepath.Join(dir, "cover.jpg")
	touch(t, coverPath)

	got := FindCoverArt(filepath.Join(dir, "track.mp3"))
	if got != coverPath {
		t.Errorf("FindCoverArt() = %q, want %q", got, coverPath)
	}
}

func TestFindCoverArt_NotFound(t *testing.T) {
	dir := t.TempDir()

	if got := FindCoverArt(filepath.Join(dir, "track.mp3")); got != "" {
		t.Errorf("FindCoverArt() = %q, want empty string", got)
	}
}

func TestFindCoverArt_MissingDir(t *testing.T) {
	if got := FindCoverArt("/does/not/exist/track.mp3"); got != "" {
		t.Errorf("FindCoverArt() = %q, want empty string", got)
	}
}

func TestFindCoverArt_Priority(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "folder.jpg"))
	coverPath := filepath.Join(dir, "cover.png")
	touch(t, coverPath)

	if got := FindCoverArt(filepath.Join(dir, "track.mp3")); got != coverPath {
		t.Errorf("FindCoverArt() = %q, want %q (cover beats folder)", got, coverPath)
	}
}

func TestFindCoverArt_CaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	coverPath := filepath.Join(dir, "Folder.JPG")
	touch(t, coverPath)

	if got := FindCoverArt(filepath.Join(dir, "track.flac")); got != coverPath {
		t.Errorf("FindCoverArt() = %q, want %q", got, coverPath)
	}
}

func TestFindCoverArt_IgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "cover.jpg"), 0o755); err != nil {
		t.Fatal(err)
	}

	if got := FindCoverArt(filepath.Join(dir, "track.mp3")); got != "" {
		t.Errorf("FindCoverArt() = %q, want empty string", got)
	}
}
