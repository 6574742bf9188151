package main

import (
	"encoding/binary"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/blockrunner/common"
	"github.com/milk9111/blockrunner/physics"
)

const sampleRate = 44100

// Sounds plays short synthesized cues for controller events.
type Sounds struct {
	ctx   *audio.Context
	cues  map[physics.EventKind][]byte
	muted bool
}

func NewSounds(muted bool) *Sounds {
	return &Sounds{
		ctx: audio.NewContext(sampleRate),
		cues: map[physics.EventKind][]byte{
			physics.EventDied:          tone(110, 0.25),
			physics.EventRespawned:     tone(440, 0.08),
			physics.EventLevelComplete: append(tone(523.25, 0.12), tone(783.99, 0.2)...),
		},
		muted: muted,
	}
}

func (s *Sounds) Play(kind physics.EventKind) {
	if s == nil || s.muted {
		return
	}
	buf, ok := s.cues[kind]
	if !ok {
		return
	}
	p := s.ctx.NewPlayerFromBytes(buf)
	p.SetVolume(0.3)
	p.Play()
}

// tone renders a sine wave as 16-bit little-endian stereo PCM with a
// linear fade out.
func tone(freq, seconds float64) []byte {
	n := int(seconds * sampleRate)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		env := common.Lerp(1, 0, float64(i)/float64(n))
		v := int16(math.Sin(2*math.Pi*freq*float64(i)/sampleRate) * env * math.MaxInt16 * 0.5)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}
