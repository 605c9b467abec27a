package sound

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
)

// SpeakerJukebox plays through the beep speaker, for hosts that do not run
// Ebitengine.
type SpeakerJukebox struct {
	mixer *beep.Mixer
	music *beep.Ctrl
	track io.Closer
}

// NewSpeakerJukebox initialises the speaker and queues the paused music loop.
func NewSpeakerJukebox(path string) (*SpeakerJukebox, error) {
	name, data, err := readMusic(path)
	if err != nil {
		return nil, err
	}
	track, format, err := decodeSpeakerMusic(name, data)
	if err != nil {
		return nil, err
	}

	var loop beep.Streamer = beep.Loop(-1, track)
	if format.SampleRate != SampleRate {
		loop = beep.Resample(4, format.SampleRate, SampleRate, loop)
	}

	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		track.Close()
		return nil, fmt.Errorf("speaker: %w", err)
	}

	j := &SpeakerJukebox{
		mixer: &beep.Mixer{},
		music: &beep.Ctrl{Streamer: loop, Paused: true},
		track: track,
	}
	j.mixer.Add(j.music)
	speaker.Play(j.mixer)
	return j, nil
}

func decodeSpeakerMusic(name string, data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	var (
		s      beep.StreamSeekCloser
		format beep.Format
		err    error
	)
	switch musicExt(name) {
	case ".ogg":
		s, format, err = vorbis.Decode(io.NopCloser(bytes.NewReader(data)))
	case ".wav":
		s, format, err = wav.Decode(bytes.NewReader(data))
	default:
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", name, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", name, err)
	}
	return s, format, nil
}

func (j *SpeakerJukebox) StartMusic() {
	speaker.Lock()
	j.music.Paused = false
	speaker.Unlock()
}

func (j *SpeakerJukebox) StopMusic() {
	speaker.Lock()
	j.music.Paused = true
	speaker.Unlock()
}

func (j *SpeakerJukebox) Pop() {
	speaker.Lock()
	j.mixer.Add(NewPop(SampleRate))
	speaker.Unlock()
}

// Close stops playback and releases the decoded track.
func (j *SpeakerJukebox) Close() error {
	speaker.Clear()
	speaker.Close()
	return j.track.Close()
}
