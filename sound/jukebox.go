package sound

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	popVoices   = 4
	musicVolume = 0.5
)

// Jukebox plays music and effects through Ebitengine's audio context.
type Jukebox struct {
	music *audio.Player
	pops  []*audio.Player
	next  int
}

// NewJukebox decodes the music at path (or the embedded track when path is
// empty) and prepares the pop voices.
func NewJukebox(path string) (*Jukebox, error) {
	name, data, err := readMusic(path)
	if err != nil {
		return nil, err
	}
	stream, err := decodeMusic(name, data)
	if err != nil {
		return nil, err
	}

	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(int(SampleRate))
	}

	music, err := ctx.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	if err != nil {
		return nil, fmt.Errorf("music player: %w", err)
	}
	music.SetVolume(musicVolume)

	pcm := RenderPCM(NewPop(SampleRate))
	j := &Jukebox{music: music}
	for i := 0; i < popVoices; i++ {
		j.pops = append(j.pops, ctx.NewPlayerFromBytes(pcm))
	}
	return j, nil
}

// StartMusic resumes the background loop.
func (j *Jukebox) StartMusic() {
	j.music.Play()
}

// StopMusic pauses the background loop.
func (j *Jukebox) StopMusic() {
	j.music.Pause()
}

// Pop plays the elimination sound on the next free voice.
func (j *Jukebox) Pop() {
	p := j.pops[j.next]
	j.next = (j.next + 1) % len(j.pops)
	if err := p.Rewind(); err != nil {
		return
	}
	p.Play()
}
