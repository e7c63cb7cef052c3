// Package audio plays the short sine notes triggered by ring escapes.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/chaos-rings/internal/config"
)

// decayFloor is the fraction of the start gain reached at the end of a note.
const decayFloor = 0.1

// Synth mixes note tones onto the system speaker.
type Synth struct {
	mu          sync.Mutex
	cfg         config.AudioConfig
	rate        beep.SampleRate
	mixer       *beep.Mixer
	initialized bool
}

// NewSynth creates a synth. Nothing is opened until Init.
func NewSynth(cfg config.AudioConfig) *Synth {
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 44100
	}
	return &Synth{
		cfg:   cfg,
		rate:  beep.SampleRate(rate),
		mixer: &beep.Mixer{},
	}
}

// Init opens the speaker. A disabled synth succeeds without touching it.
func (s *Synth) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized || !s.cfg.Enabled {
		return nil
	}

	if err := speaker.Init(s.rate, s.rate.N(time.Second/10)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Enabled reports whether notes reach the speaker.
func (s *Synth) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// PlayNote starts a tone at freq Hz. No-op until Init succeeds.
func (s *Synth) PlayNote(freq float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	tone := s.Tone(freq)
	speaker.Lock()
	s.mixer.Add(tone)
	speaker.Unlock()
}

// Tone builds the streamer for one note: a sine that decays exponentially
// from the configured gain to a tenth of it over the note duration.
func (s *Synth) Tone(freq float64) beep.Streamer {
	d := time.Duration(s.cfg.DurationMs) * time.Millisecond
	return newTone(freq, s.cfg.Gain, d, s.rate)
}

// Close silences every playing note.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}

// tone is a decaying sine oscillator.
type tone struct {
	freq     float64
	gain     float64
	decay    float64 // Per-sample multiplier
	phase    float64
	position int
	total    int
	rate     beep.SampleRate
}

func newTone(freq, gain float64, d time.Duration, rate beep.SampleRate) *tone {
	total := rate.N(d)
	decay := 1.0
	if total > 1 {
		decay = math.Pow(decayFloor, 1/float64(total-1))
	}
	return &tone{
		freq:  freq,
		gain:  gain,
		decay: decay,
		total: total,
		rate:  rate,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.total {
			return i, i > 0
		}

		val := t.gain * math.Sin(2*math.Pi*t.phase)
		samples[i][0] = val
		samples[i][1] = val

		t.gain *= t.decay
		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }
