package engine

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// ErrUnsupportedFormat is reported when no decoder handles an item's extension.
var ErrUnsupportedFormat = errors.New("unsupported format")

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
	extOGG  = ".ogg"
)

// decode picks a decoder by extension. On success the returned streamer owns rc.
func decode(rc io.ReadSeekCloser, ext string) (beep.StreamSeekCloser, beep.Format, string, error) {
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)
	switch ext {
	case extMP3:
		streamer, format, err = mp3.Decode(rc)
	case extFLAC:
		// Some taggers prepend ID3v2 to FLAC files, which the decoder rejects.
		if err := skipID3v2(rc); err != nil {
			return nil, beep.Format{}, "", err
		}
		streamer, format, err = flac.Decode(rc)
	case extWAV:
		streamer, format, err = wav.Decode(rc)
	case extOGG:
		streamer, format, err = vorbis.Decode(rc)
	default:
		return nil, beep.Format{}, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, beep.Format{}, "", fmt.Errorf("decode %s: %w", ext, err)
	}
	return streamer, format, strings.ToUpper(strings.TrimPrefix(ext, ".")), nil
}

// skipID3v2 skips an ID3v2 tag if present at the beginning of r.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return err
	}
	if n < 10 || string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// Size is a syncsafe integer: 7 bits per byte.
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
