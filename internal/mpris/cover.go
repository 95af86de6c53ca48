package mpris

import (
	"os"
	"path/filepath"
	"strings"
)

// coverNames lists cover art filenames in priority order, matched case-insensitively.
var coverNames = []string{
	"cover.jpg", "cover.png", "cover.jpeg", "cover.webp",
	"folder.jpg", "folder.png", "folder.jpeg",
	"front.jpg", "front.png", "front.jpeg",
}

// FindCoverArt looks for cover art next to a local media file.
// Returns the path to the art file, or empty string if not found.
func FindCoverArt(mediaPath string) string {
	dir := filepath.Dir(mediaPath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	present := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			present[strings.ToLower(e.Name())] = e.Name()
		}
	}
	for _, name := range coverNames {
		if actual, ok := present[name]; ok {
			return filepath.Join(dir, actual)
		}
	}
	return ""
}
