// Package audio provides synthesized sound cues for game events.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// Cue frequencies. Hits tick low, completion rings higher, a finished
// restore lands in between.
const (
	hitFreq       = 420
	completedFreq = 880
	restoredFreq  = 620
	fireFreq      = 240
)

// Manager handles audio playback for the game.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	sfxVolLevel  float64
	muted        bool

	// Mixer for concurrent cues
	mixer *beep.Mixer
}

// New creates a new audio manager.
func New() *Manager {
	return &Manager{
		masterVolume: 1.0,
		sfxVolLevel:  1.0,
		mixer:        &beep.Mixer{},
	}
}

// Init initializes the audio system.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	m.sampleRate = DefaultSampleRate
	err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30))
	if err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)

	m.initialized = true
	return nil
}

// Close shuts down the audio system.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	speaker.Clear()
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetSFXVolume sets the effects volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// GetMasterVolume returns the master volume.
func (m *Manager) GetMasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// GetSFXVolume returns the effects volume.
func (m *Manager) GetSFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

// SetMuted silences all cues without touching the volume levels.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// Muted returns whether playback is muted.
func (m *Manager) Muted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// PlayFire plays the shot cue.
func (m *Manager) PlayFire() {
	m.playTone(fireFreq, 60*time.Millisecond)
}

// PlayHit plays the face-hit cue.
func (m *Manager) PlayHit() {
	m.playTone(hitFreq, 80*time.Millisecond)
}

// PlayCompleted plays the face-completed cue.
func (m *Manager) PlayCompleted() {
	m.playTone(completedFreq, 180*time.Millisecond)
}

// PlayRestored plays the restore-finished cue.
func (m *Manager) PlayRestored() {
	m.playTone(restoredFreq, 120*time.Millisecond)
}

// playTone mixes in a fixed-length sine cue at the current volume.
func (m *Manager) playTone(freq int, d time.Duration) {
	m.mu.RLock()
	initialized := m.initialized
	vol := m.masterVolume * m.sfxVolLevel
	muted := m.muted
	m.mu.RUnlock()

	if !initialized || muted || vol <= 0 {
		return
	}

	tone, err := generators.SinTone(m.sampleRate, freq)
	if err != nil {
		return
	}

	cue := &effects.Volume{
		Streamer: beep.Take(m.sampleRate.N(d), tone),
		Base:     2,
		Volume:   volumeToDb(vol),
	}

	speaker.Lock()
	m.mixer.Add(cue)
	speaker.Unlock()
}

// volumeToDb converts a 0-1 volume to the decibel scale effects.Volume
// expects: vol=1 -> 0dB, vol=0.5 -> -6dB.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	return 20 * math.Log10(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
