package audio

import (
	"sync"
	"time"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	hitLength  = 40 * time.Millisecond
)

// Player plays short positional hit tones. Volume falls off linearly with distance from
// the listener and the tone is panned by the horizontal offset.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	listener    rl.Vector2
	initialized bool

	MaxDistance float32
	Frequency   float64
}

func New() *Player {
	return &Player{
		mixer:       &beep.Mixer{},
		MaxDistance: 900,
		Frequency:   880,
	}
}

// Init opens the speaker. Without it Hit is a no-op.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

func (p *Player) SetListener(pos rl.Vector2) {
	p.mu.Lock()
	p.listener = pos
	p.mu.Unlock()
}

// Hit plays one tone heard from pos. It reports whether anything was queued.
func (p *Player) Hit(pos rl.Vector2) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return false
	}
	volume, pan := Spatialize(p.listener, pos, p.MaxDistance)
	if volume <= 0 {
		return false
	}

	sine, err := generators.SineTone(sampleRate, p.Frequency)
	if err != nil {
		return false
	}
	tone := &effects.Pan{
		Streamer: &effects.Gain{Streamer: beep.Take(sampleRate.N(hitLength), sine), Gain: float64(volume) - 1},
		Pan:      float64(pan),
	}

	speaker.Lock()
	p.mixer.Add(tone)
	speaker.Unlock()
	return true
}

// Spatialize returns a volume in [0,1] and a pan in [-1,1] (left to right) for a sound
// at source heard from listener.
func Spatialize(listener, source rl.Vector2, maxDistance float32) (volume, pan float32) {
	if maxDistance <= 0 {
		return 1, 0
	}
	distance := rl.Vector2Distance(listener, source)
	if distance >= maxDistance {
		return 0, 0
	}
	volume = 1 - distance/maxDistance
	pan = rl.Clamp((source.X-listener.X)/maxDistance, -1, 1)
	if math32.IsNaN(pan) {
		pan = 0
	}
	return volume, pan
}
