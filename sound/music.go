package sound

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	raudio "github.com/hajimehoshi/ebiten/v2/examples/resources/audio"
)

// ErrUnsupportedFormat is returned for music files other than ogg, wav or mp3.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// defaultMusicName names the embedded fallback track.
const defaultMusicName = "ragtime.ogg"

// musicStream is a decoded track that knows its byte length.
type musicStream interface {
	io.ReadSeeker
	Length() int64
}

// readMusic returns the track's name and bytes, falling back to the embedded
// ragtime loop when path is empty.
func readMusic(path string) (string, []byte, error) {
	if path == "" {
		return defaultMusicName, raudio.Ragtime_ogg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("read music: %w", err)
	}
	return path, data, nil
}

func musicExt(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// decodeMusic decodes data for Ebitengine playback at SampleRate, choosing the
// decoder by the extension of name.
func decodeMusic(name string, data []byte) (musicStream, error) {
	src := bytes.NewReader(data)

	var (
		s   musicStream
		err error
	)
	switch musicExt(name) {
	case ".ogg":
		s, err = vorbis.DecodeWithSampleRate(int(SampleRate), src)
	case ".wav":
		s, err = wav.DecodeWithSampleRate(int(SampleRate), src)
	case ".mp3":
		s, err = mp3.DecodeWithSampleRate(int(SampleRate), src)
	default:
		return nil, fmt.Errorf("decode %s: %w", name, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return s, nil
}
