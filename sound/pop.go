package sound

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// SampleRate is shared by every jukebox and synthesised sound.
const SampleRate = beep.SampleRate(48000)

const (
	popFrequency = 587.33
	popDuration  = 90 * time.Millisecond
	popAttack    = 4 * time.Millisecond
	popRelease   = 70 * time.Millisecond
	popVolume    = 0.6
)

// envelope fades a stream in over attack samples and out over the last
// release samples of total.
type envelope struct {
	streamer beep.Streamer
	pos      int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, rate beep.SampleRate, total, attack, release time.Duration) *envelope {
	return &envelope{
		streamer: beep.Take(rate.N(total), s),
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(total),
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; left < e.release {
			vol = math.Min(vol, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// NewPop returns the short tone played when a monster is eliminated.
func NewPop(rate beep.SampleRate) beep.Streamer {
	tone, err := generators.SineTone(rate, popFrequency)
	if err != nil {
		// Only reachable when the frequency exceeds the Nyquist limit.
		return beep.Silence(rate.N(popDuration))
	}
	return &effects.Volume{
		Streamer: newEnvelope(tone, rate, popDuration, popAttack, popRelease),
		Base:     2,
		Volume:   math.Log2(popVolume),
	}
}

// RenderPCM drains s into signed 16-bit little-endian stereo PCM, clipping
// samples to [-1, 1].
func RenderPCM(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(v)))
			}
		}
		if !ok || n == 0 {
			return out
		}
	}
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(math.Round(v * math.MaxInt16))
}
