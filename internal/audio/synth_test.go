package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/chaos-rings/internal/config"
)

func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

// TestToneLength verifies a tone lasts exactly its duration
func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	samples := drain(newTone(440, 0.1, 300*time.Millisecond, rate))

	if want := rate.N(300 * time.Millisecond); len(samples) != want {
		t.Errorf("Expected %d samples, got %d", want, len(samples))
	}
}

// TestToneAmplitude verifies samples stay under the gain and decay to a tenth
func TestToneAmplitude(t *testing.T) {
	rate := beep.SampleRate(8000)
	gain := 0.1
	tn := newTone(1000, gain, 100*time.Millisecond, rate)
	samples := drain(tn)

	for i, s := range samples {
		if math.Abs(s[0]) > gain+1e-12 {
			t.Fatalf("Sample %d exceeds gain: %f", i, s[0])
		}
		if s[0] != s[1] {
			t.Fatalf("Sample %d is not mono: %f vs %f", i, s[0], s[1])
		}
	}

	// Envelope after the last sample is one decay step below the floor
	if end := tn.gain / tn.decay; math.Abs(end-gain*decayFloor) > 1e-9 {
		t.Errorf("Expected final gain %f, got %f", gain*decayFloor, end)
	}
}

// TestToneDrained verifies a finished tone reports not ok
func TestToneDrained(t *testing.T) {
	tn := newTone(440, 0.1, time.Millisecond, beep.SampleRate(8000))
	drain(tn)

	n, ok := tn.Stream(make([][2]float64, 16))
	if n != 0 || ok {
		t.Errorf("Drained tone returned n=%d ok=%v", n, ok)
	}
	if tn.Err() != nil {
		t.Errorf("Expected no error, got: %v", tn.Err())
	}
}

// TestSynthDisabled verifies a disabled synth never opens the speaker
func TestSynthDisabled(t *testing.T) {
	cfg := config.DefaultRingsConfig().Audio
	cfg.Enabled = false

	s := NewSynth(cfg)
	if err := s.Init(); err != nil {
		t.Fatalf("Init() of a disabled synth failed: %v", err)
	}
	if s.Enabled() {
		t.Error("Disabled synth reports enabled")
	}

	// Must not panic
	s.PlayNote(440)
	s.Close()
}

// TestSynthTone verifies Tone uses the configured duration
func TestSynthTone(t *testing.T) {
	cfg := config.AudioConfig{Enabled: false, DurationMs: 50, Gain: 0.2, SampleRate: 10000}
	s := NewSynth(cfg)

	samples := drain(s.Tone(220))
	if len(samples) != 500 {
		t.Errorf("Expected 500 samples, got %d", len(samples))
	}
	if math.Abs(samples[0][0]) != 0 {
		t.Errorf("Tone should start at phase zero, got %f", samples[0][0])
	}
}
