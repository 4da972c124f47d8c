package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/nbody/parameter"
	"github.com/lixenwraith/nbody/simulation"
	"github.com/lixenwraith/nbody/vmath"
)

const (
	sampleRate = beep.SampleRate(48000)

	bounceDuration  = 40 * time.Millisecond
	respawnDuration = 250 * time.Millisecond
)

// SoundManager plays short cues for simulation events
// All operations are no-ops until Initialize succeeds, so a missing audio device never blocks the run
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	cooldown    time.Duration
	now         func() time.Time

	lastBounce  time.Time
	lastRespawn time.Time
	rng         *vmath.FastRand
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:    &beep.Mixer{},
		cooldown: parameter.SoundCooldown,
		now:      time.Now,
		rng:      vmath.NewFastRand(uint64(time.Now().UnixNano())),
	}
}

// Initialize sets up the speaker
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	// beep has no speaker Close, clearing the mixer silences output
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// OnTick maps a tick report to cues: a click for wall contact, a whoosh for respawns
// Returns which cues were queued
func (sm *SoundManager) OnTick(rep simulation.Report) (bounce, respawn bool) {
	if rep.Reflections > 0 {
		bounce = sm.PlayBounce(rep.Reflections)
	}
	if rep.Respawns > 0 {
		respawn = sm.PlayRespawn()
	}
	return bounce, respawn
}

// PlayBounce queues a click, pitch rising with the number of reflecting bodies
func (sm *SoundManager) PlayBounce(count int) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.ready(&sm.lastBounce) {
		return false
	}

	freq := 600.0 + 40.0*float64(min(count, 10))
	sm.add(beep.Take(sampleRate.N(bounceDuration), NewClickGenerator(sampleRate, freq)))
	return true
}

// PlayRespawn queues a short noise whoosh
func (sm *SoundManager) PlayRespawn() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.ready(&sm.lastRespawn) {
		return false
	}

	// Each cue gets its own generator state, sm.rng stays on the caller's goroutine
	noise := vmath.NewFastRand(sm.rng.Uint64())
	sm.add(beep.Take(sampleRate.N(respawnDuration), NewWhooshGenerator(sampleRate, noise)))
	return true
}

// ready applies the per-cue cooldown, caller holds mu
func (sm *SoundManager) ready(last *time.Time) bool {
	if !sm.initialized {
		return false
	}
	now := sm.now()
	if !last.IsZero() && now.Sub(*last) < sm.cooldown {
		return false
	}
	*last = now
	return true
}

// add queues a streamer, the speaker goroutine reads the mixer concurrently
func (sm *SoundManager) add(s beep.Streamer) {
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}
