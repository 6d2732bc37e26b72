// Package audio plays short cues for simulation events
// Every operation is a no-op until Initialize succeeds, so the simulation
// runs the same without an audio device
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	hornDuration  = 180 * time.Millisecond
	chimeDuration = 250 * time.Millisecond

	// A queue blocked for many ticks sounds one horn, not one per tick
	hornCooldown = 600 * time.Millisecond
)

// SoundManager mixes the horn and chime cues
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool

	now      func() time.Time
	lastHorn time.Time
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
}

// Initialize sets up the speaker; calling it twice is a no-op
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// PlayHorn sounds a short two-tone horn, at most once per cooldown
func (sm *SoundManager) PlayHorn() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	now := sm.now()
	if !sm.lastHorn.IsZero() && now.Sub(sm.lastHorn) < hornCooldown {
		return
	}
	sm.lastHorn = now

	sm.add(beep.Take(sampleRate.N(hornDuration), NewHornGenerator(sampleRate)))
}

// PlayChime plays a bright decaying chime
func (sm *SoundManager) PlayChime() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.add(beep.Take(sampleRate.N(chimeDuration), NewChimeGenerator(sampleRate)))
}

func (sm *SoundManager) add(s beep.Streamer) {
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// OnGiveWay sounds the horn when any vehicle had to yield this tick
func (sm *SoundManager) OnGiveWay(int) {
	sm.PlayHorn()
}

// OnPassed chimes when vehicles leave the intersection
func (sm *SoundManager) OnPassed(int) {
	sm.PlayChime()
}

// HornGenerator generates a dissonant two-tone car horn
type HornGenerator struct {
	sr  beep.SampleRate
	pos int
}

// NewHornGenerator creates a horn sound generator
func NewHornGenerator(sr beep.SampleRate) *HornGenerator {
	return &HornGenerator{sr: sr}
}

func (g *HornGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Two detuned square-ish tones with a few odd harmonics
		sample := 0.0
		for _, f := range [...]float64{400, 500} {
			sample += 0.2 * math.Sin(2*math.Pi*f*t)
			sample += 0.07 * math.Sin(2*math.Pi*f*3*t)
		}

		// Short fade-in to avoid a click
		envelope := math.Min(t/0.01, 1.0)
		sample *= envelope * 0.3

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *HornGenerator) Err() error {
	return nil
}

// ChimeGenerator generates a bell-like tone with exponential decay
type ChimeGenerator struct {
	sr  beep.SampleRate
	pos int
}

// NewChimeGenerator creates a chime sound generator
func NewChimeGenerator(sr beep.SampleRate) *ChimeGenerator {
	return &ChimeGenerator{sr: sr}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		envelope := math.Exp(-t * 12)
		sample := 0.25 * math.Sin(2*math.Pi*1320*t)
		sample += 0.1 * math.Sin(2*math.Pi*1980*t)
		sample *= envelope

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}
